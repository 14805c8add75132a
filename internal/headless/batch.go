// Package headless runs seeded simulations without any client attached.
package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cosmicgardener/gardener-server-go/internal/game"
	"github.com/cosmicgardener/gardener-server-go/internal/game/catalog"
	"github.com/cosmicgardener/gardener-server-go/internal/game/rules"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoRuns is returned when a batch asks for zero simulations.
var ErrNoRuns = errors.New("batch needs at least one run")

// Options configures a batch.
type Options struct {
	Settings game.Settings
	Catalog  *catalog.Catalog
	Cards    []int
	Runs     int
	// Seed of the first run; run i uses Seed+i.
	Seed    uint64
	Workers int
}

// Result is the outcome of one seeded run.
type Result struct {
	Run            int           `json:"run"`
	Seed           uint64        `json:"seed"`
	CivilizationID int           `json:"civilization_id"`
	Outcome        rules.Outcome `json:"outcome"`
	Stage          rules.Stage   `json:"stage"`
	Ticks          int           `json:"ticks"`
	Age            string        `json:"age_million_years"`
	Checksum       string        `json:"checksum"`
}

// Summary aggregates a batch.
type Summary struct {
	Cards     []int               `json:"cards"`
	Spent     int                 `json:"entropy_spent"`
	Results   []Result            `json:"results"`
	Successes int                 `json:"successes"`
	Stages    map[rules.Stage]int `json:"stages"`
}

// SuccessRate is the share of runs that ended with the civilization stalled.
func (s Summary) SuccessRate() float64 {
	if len(s.Results) == 0 {
		return 0
	}
	return float64(s.Successes) / float64(len(s.Results))
}

// ParseCards reads a comma separated list of card IDs.
func ParseCards(list string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("card id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Run plays opts.Runs simulations of the same selection, each with its own
// seed, ticking as fast as possible.
func Run(ctx context.Context, opts Options, logger *zap.Logger) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Runs <= 0 {
		return Summary{}, ErrNoRuns
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	results := make([]Result, opts.Runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := 0; i < opts.Runs; i++ {
		i := i
		g.Go(func() error {
			res, err := runOne(ctx, opts, i, logger)
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", i, opts.Seed+uint64(i), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Cards:   append([]int(nil), opts.Cards...),
		Results: results,
		Stages:  make(map[rules.Stage]int),
	}
	if cards, err := opts.Catalog.Lookup(opts.Cards...); err == nil {
		for _, c := range cards {
			summary.Spent += c.Cost
		}
	}
	for _, r := range results {
		if r.Outcome == rules.OutcomeSuccess {
			summary.Successes++
		}
		summary.Stages[r.Stage]++
	}

	logger.Info("batch finished",
		zap.Int("runs", opts.Runs),
		zap.Int("successes", summary.Successes),
		zap.Float64("success_rate", summary.SuccessRate()),
	)
	return summary, nil
}

func runOne(ctx context.Context, opts Options, i int, logger *zap.Logger) (Result, error) {
	seed := opts.Seed + uint64(i)
	g := game.NewGame(uuid.NewString(), opts.Catalog, opts.Settings, rules.NewRandomizer(seed), logger)
	if err := g.Begin(); err != nil {
		return Result{}, err
	}
	for _, id := range opts.Cards {
		if err := g.Select(id); err != nil {
			return Result{}, err
		}
	}
	if err := g.Deploy(); err != nil {
		return Result{}, err
	}

	if _, err := game.NewRunner(g, 0, 0, logger).Run(ctx); err != nil {
		return Result{}, err
	}

	v := g.View()
	res := Result{
		Run:            i,
		Seed:           seed,
		CivilizationID: v.Civilization.ID,
		Outcome:        v.Outcome,
		Stage:          v.Civilization.Stage,
		Ticks:          v.Tick,
		Age:            v.Civilization.AgeMillions(),
	}
	if sum, err := g.Replay().Checksum(); err == nil {
		res.Checksum = sum.Hash
	}
	return res, nil
}

// WriteTable prints one row per run followed by the summary.
func WriteTable(w io.Writer, s Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSEED\tCIV\tOUTCOME\tSTAGE\tTICKS\tAGE (MY)\tCHECKSUM")
	for _, r := range s.Results {
		sum := r.Checksum
		if len(sum) > 12 {
			sum = sum[:12]
		}
		fmt.Fprintf(tw, "%d\t%d\t#%d\t%s\t%s\t%d\t%s\t%s\n",
			r.Run, r.Seed, r.CivilizationID, r.Outcome, r.Stage, r.Ticks, r.Age, sum)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nfilters: %v (entropy %d)\n", s.Cards, s.Spent)
	fmt.Fprintf(w, "success rate: %d/%d (%.1f%%)\n", s.Successes, len(s.Results), s.SuccessRate()*100)

	stages := make([]rules.Stage, 0, len(s.Stages))
	for st := range s.Stages {
		stages = append(stages, st)
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i] < stages[j] })
	fmt.Fprintln(w, "stage reached:")
	for _, st := range stages {
		_, err := fmt.Fprintf(w, "  %-10s %d\n", st, s.Stages[st])
		if err != nil {
			return err
		}
	}
	return nil
}
