package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cosmicgardener/gardener-server-go/internal/config"
	"github.com/cosmicgardener/gardener-server-go/internal/game"
	"github.com/cosmicgardener/gardener-server-go/internal/game/catalog"
	"github.com/cosmicgardener/gardener-server-go/internal/headless"
	"github.com/cosmicgardener/gardener-server-go/internal/logging"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	cardList   = flag.String("cards", "", "comma separated card IDs to deploy")
	runs       = flag.Int("runs", 100, "number of simulations")
	seed       = flag.Uint64("seed", 1, "seed of the first run")
	workers    = flag.Int("workers", 4, "simulations run in parallel")
	budget     = flag.Int("budget", 0, "override the entropy budget")
	asJSON     = flag.Bool("json", false, "print the summary as JSON")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cards, err := headless.ParseCards(*cardList)
	if err != nil || len(cards) == 0 {
		fmt.Fprintln(os.Stderr, "usage: headless -cards 31,6,11 [-runs N] [-seed S] [-budget B]")
		os.Exit(2)
	}

	settings := game.ManagerConfigFrom(cfg).Settings
	if *budget > 0 {
		settings.Budget = *budget
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := headless.Run(ctx, headless.Options{
		Settings: settings,
		Catalog:  catalog.Default(),
		Cards:    cards,
		Runs:     *runs,
		Seed:     *seed,
		Workers:  *workers,
	}, logger)
	if err != nil {
		logger.Fatal("batch failed", zap.Error(err))
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(summary)
	} else {
		err = headless.WriteTable(os.Stdout, summary)
	}
	if err != nil {
		logger.Fatal("failed to write summary", zap.Error(err))
	}
}
