package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cosmicgardener/gardener-server-go/internal/game/report"
	"go.uber.org/zap"
)

// ErrRunnerStopped is returned by Run when Stop ends the loop early.
var ErrRunnerStopped = errors.New("runner stopped")

// Runner drives a deployed game on a fixed interval until it reaches an
// outcome, then publishes the report after a delay.
type Runner struct {
	game        *Game
	interval    time.Duration
	reportDelay time.Duration
	logger      *zap.Logger

	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewRunner creates a runner. A zero interval ticks as fast as possible.
func NewRunner(g *Game, interval, reportDelay time.Duration, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		game:        g,
		interval:    interval,
		reportDelay: reportDelay,
		logger:      logger.With(zap.String("game_id", g.ID())),
		stopChan:    make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Run blocks until the report is ready, the context is cancelled or Stop is
// called. Call it in a goroutine for live play.
func (r *Runner) Run(ctx context.Context) (report.Report, error) {
	defer close(r.done)

	if err := r.loop(ctx); err != nil {
		r.logger.Debug("runner ended early", zap.Error(err))
		return report.Report{}, err
	}

	if r.reportDelay > 0 {
		timer := time.NewTimer(r.reportDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return report.Report{}, ctx.Err()
		case <-r.stopChan:
			return report.Report{}, ErrRunnerStopped
		case <-timer.C:
		}
	}
	return r.game.Conclude()
}

func (r *Runner) loop(ctx context.Context) error {
	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-r.stopChan:
				return ErrRunnerStopped
			case <-tick:
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-r.stopChan:
				return ErrRunnerStopped
			default:
			}
		}

		res, err := r.game.Tick()
		if err != nil {
			return err
		}
		if res.Done() {
			return nil
		}
	}
}

// Stop ends the loop. It is safe to call more than once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stopChan) })
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}
