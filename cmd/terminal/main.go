package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cosmicgardener/gardener-server-go/internal/config"
	"github.com/cosmicgardener/gardener-server-go/internal/game"
	"github.com/cosmicgardener/gardener-server-go/internal/game/catalog"
	"github.com/cosmicgardener/gardener-server-go/internal/game/rules"
	"github.com/cosmicgardener/gardener-server-go/internal/logging"
	"github.com/cosmicgardener/gardener-server-go/internal/tui"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	seed       = flag.Uint64("seed", 0, "fix the run's randomness (0 picks one)")
	logFile    = flag.String("log", "", "write logs to this file instead of discarding them")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs only go to a file.
	logger := zap.NewNop()
	if *logFile != "" {
		logger, err = logging.New(cfg.Logging, *logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	mc := game.ManagerConfigFrom(cfg)
	g := game.NewGame(uuid.NewString(), catalog.Default(), mc.Settings, rules.NewRandomizer(s), logger)
	logger.Info("terminal game started", zap.String("game_id", g.ID()), zap.Uint64("seed", s))

	if err := tui.Run(g, tui.Options{
		TickInterval: mc.TickInterval,
		ReportDelay:  mc.ReportDelay,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "terminal error: %v\n", err)
		os.Exit(1)
	}
}
