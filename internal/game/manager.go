package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cosmicgardener/gardener-server-go/internal/config"
	"github.com/cosmicgardener/gardener-server-go/internal/game/catalog"
	"github.com/cosmicgardener/gardener-server-go/internal/game/rules"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	// ErrGameNotFound is returned for unknown game IDs.
	ErrGameNotFound = errors.New("game not found")
	// ErrTooManyGames is returned when the manager is at capacity.
	ErrTooManyGames = errors.New("too many games")
)

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	Settings     Settings
	TickInterval time.Duration
	ReportDelay  time.Duration
	IdleTimeout  time.Duration
	// MaxGames of zero means unbounded.
	MaxGames int
}

type managedGame struct {
	game *Game
	seed uint64
	// ops serializes deploy and reset so a runner is never attached to a
	// game that was reset underneath it.
	ops    sync.Mutex
	runner *Runner
}

// Manager owns the live games. Games never share state; the manager only
// tracks them and their runners.
type Manager struct {
	cfg     ManagerConfig
	catalog *catalog.Catalog
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.RWMutex
	games map[string]*managedGame
	seeds *rand.Rand
}

// NewManager creates a game manager.
func NewManager(cfg ManagerConfig, cat *catalog.Catalog, logger *zap.Logger) *Manager {
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		cfg:     cfg,
		catalog: cat,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		games:   make(map[string]*managedGame),
		seeds:   rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

// Catalog returns the deck shared by all games.
func (m *Manager) Catalog() *catalog.Catalog {
	return m.catalog
}

// CreateGame starts a new game with a random seed.
func (m *Manager) CreateGame() (*Game, error) {
	m.mu.Lock()
	seed := m.seeds.Uint64()
	m.mu.Unlock()
	return m.CreateGameWithSeed(seed)
}

// CreateGameWithSeed starts a new game whose randomness is fixed by seed.
func (m *Manager) CreateGameWithSeed(seed uint64) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg.MaxGames > 0 && len(m.games) >= m.cfg.MaxGames {
		return nil, fmt.Errorf("%w: limit %d", ErrTooManyGames, m.cfg.MaxGames)
	}

	id := uuid.New().String()
	g := NewGame(id, m.catalog, m.cfg.Settings, rules.NewRandomizer(seed), m.logger)
	m.games[id] = &managedGame{game: g, seed: seed}

	m.logger.Info("game created",
		zap.String("game_id", id),
		zap.Uint64("seed", seed),
	)
	return g, nil
}

// GetGame retrieves a game by ID.
func (m *Manager) GetGame(gameID string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mg, ok := m.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return mg.game, nil
}

// Seed returns the seed a game was created with.
func (m *Manager) Seed(gameID string) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mg, ok := m.games[gameID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return mg.seed, nil
}

// Deploy starts the simulation of a game and drives it in the background.
func (m *Manager) Deploy(gameID string) error {
	m.mu.RLock()
	mg, ok := m.games[gameID]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	mg.ops.Lock()
	defer mg.ops.Unlock()
	if err := mg.game.Deploy(); err != nil {
		return err
	}

	runner := NewRunner(mg.game, m.cfg.TickInterval, m.cfg.ReportDelay, m.logger)
	m.mu.Lock()
	mg.runner = runner
	m.mu.Unlock()

	go func() {
		if _, err := runner.Run(m.ctx); err != nil && !errors.Is(err, ErrRunnerStopped) && !errors.Is(err, context.Canceled) {
			m.logger.Warn("simulation runner failed",
				zap.String("game_id", gameID),
				zap.Error(err),
			)
		}
	}()
	return nil
}

// Reset stops any running simulation and resets the game.
func (m *Manager) Reset(gameID string, skipIntro bool) error {
	m.mu.RLock()
	mg, ok := m.games[gameID]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	mg.ops.Lock()
	defer mg.ops.Unlock()
	m.mu.Lock()
	runner := mg.runner
	mg.runner = nil
	m.mu.Unlock()

	if runner != nil {
		runner.Stop()
		<-runner.Done()
	}
	mg.game.Reset(skipIntro)
	return nil
}

// RemoveGame stops and forgets a game.
func (m *Manager) RemoveGame(gameID string) {
	m.mu.Lock()
	mg, ok := m.games[gameID]
	var runner *Runner
	if ok {
		runner = mg.runner
	}
	delete(m.games, gameID)
	m.mu.Unlock()

	if !ok {
		return
	}
	if runner != nil {
		runner.Stop()
	}
	m.logger.Info("game removed", zap.String("game_id", gameID))
}

// Count returns the number of live games.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// EvictIdle removes games untouched for longer than the idle timeout and
// returns how many were removed.
func (m *Manager) EvictIdle(now time.Time) int {
	if m.cfg.IdleTimeout <= 0 {
		return 0
	}

	m.mu.RLock()
	var stale []string
	for id, mg := range m.games {
		if now.Sub(mg.game.LastActive()) > m.cfg.IdleTimeout {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range stale {
		m.RemoveGame(id)
	}
	if len(stale) > 0 {
		m.logger.Info("evicted idle games", zap.Int("count", len(stale)))
	}
	return len(stale)
}

// RunJanitor evicts idle games until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context) {
	if m.cfg.IdleTimeout <= 0 {
		return
	}
	ticker := time.NewTicker(m.cfg.IdleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.ctx.Done():
			return
		case now := <-ticker.C:
			m.EvictIdle(now)
		}
	}
}

// Shutdown stops every running simulation.
func (m *Manager) Shutdown() {
	m.cancel()

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mg := range m.games {
		if mg.runner != nil {
			mg.runner.Stop()
		}
	}
	m.logger.Info("game manager stopped", zap.Int("games", len(m.games)))
}

// ManagerConfigFrom maps server configuration onto a ManagerConfig.
func ManagerConfigFrom(cfg *config.Config) ManagerConfig {
	return ManagerConfig{
		Settings: Settings{
			Budget:             cfg.Game.EntropyBudget,
			Threshold:          cfg.Game.ConditionThreshold,
			StartingResilience: cfg.Game.StartingResilience,
			ResilienceGain:     cfg.Game.ResilienceGain,
			YearsPerTick:       cfg.Game.YearsPerTick,
			ProgressPerTick:    cfg.Game.ProgressPerTick,
			EventEveryTicks:    cfg.Game.EventEveryTicks,
		},
		TickInterval: cfg.Game.TickInterval,
		ReportDelay:  cfg.Game.ReportDelay,
		IdleTimeout:  cfg.Game.IdleTimeout,
		MaxGames:     cfg.Server.MaxGames,
	}
}
