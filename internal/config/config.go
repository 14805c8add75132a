// Package config loads server configuration from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GARDENER_GAME_ENTROPY_BUDGET.
const EnvPrefix = "GARDENER"

// Config is the root configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Game    GameConfig    `mapstructure:"game"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig configures the network surfaces.
type ServerConfig struct {
	HTTP           HTTPConfig `mapstructure:"http"`
	GRPC           GRPCConfig `mapstructure:"grpc"`
	MaxGames       int        `mapstructure:"max_games"`
	AllowedOrigins []string   `mapstructure:"allowed_origins"`
}

// HTTPConfig configures the REST and WebSocket listener.
type HTTPConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// GRPCConfig configures the gRPC listener.
type GRPCConfig struct {
	Address              string `mapstructure:"address"`
	MaxConcurrentStreams int    `mapstructure:"max_concurrent_streams"`
}

// GameConfig holds the rules and pacing of every game.
type GameConfig struct {
	EntropyBudget      int           `mapstructure:"entropy_budget"`
	ConditionThreshold int           `mapstructure:"condition_threshold"`
	StartingResilience int           `mapstructure:"starting_resilience"`
	ResilienceGain     int           `mapstructure:"resilience_gain"`
	TickInterval       time.Duration `mapstructure:"tick_interval"`
	YearsPerTick       int           `mapstructure:"years_per_tick"`
	ProgressPerTick    int           `mapstructure:"progress_per_tick"`
	EventEveryTicks    int           `mapstructure:"event_every_ticks"`
	ReportDelay        time.Duration `mapstructure:"report_delay"`
	IdleTimeout        time.Duration `mapstructure:"idle_timeout"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http.address", ":8080")
	v.SetDefault("server.http.read_timeout", 10*time.Second)
	v.SetDefault("server.http.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.grpc.address", ":9090")
	v.SetDefault("server.grpc.max_concurrent_streams", 100)
	v.SetDefault("server.max_games", 1000)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("game.entropy_budget", 60)
	v.SetDefault("game.condition_threshold", 15)
	v.SetDefault("game.starting_resilience", 50)
	v.SetDefault("game.resilience_gain", 15)
	v.SetDefault("game.tick_interval", 900*time.Millisecond)
	v.SetDefault("game.years_per_tick", 100000)
	v.SetDefault("game.progress_per_tick", 5)
	v.SetDefault("game.event_every_ticks", 4)
	v.SetDefault("game.report_delay", 2*time.Second)
	v.SetDefault("game.idle_timeout", 30*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Default returns the configuration used when no file or environment is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads configuration from path, if it exists, then applies environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c *Config) Validate() error {
	var errs []error
	for _, f := range []struct {
		key   string
		value int
	}{
		{"game.entropy_budget", c.Game.EntropyBudget},
		{"game.condition_threshold", c.Game.ConditionThreshold},
		{"game.years_per_tick", c.Game.YearsPerTick},
		{"game.progress_per_tick", c.Game.ProgressPerTick},
		{"game.event_every_ticks", c.Game.EventEveryTicks},
	} {
		if f.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", f.key, f.value))
		}
	}
	if c.Game.StartingResilience < 0 {
		errs = append(errs, errors.New("game.starting_resilience must not be negative"))
	}
	if c.Game.ResilienceGain < 0 {
		errs = append(errs, errors.New("game.resilience_gain must not be negative"))
	}
	if c.Game.TickInterval < 0 || c.Game.ReportDelay < 0 || c.Game.IdleTimeout < 0 {
		errs = append(errs, errors.New("game durations must not be negative"))
	}
	if c.Server.MaxGames < 0 {
		errs = append(errs, errors.New("server.max_games must not be negative"))
	}
	if c.Server.GRPC.MaxConcurrentStreams <= 0 {
		errs = append(errs, errors.New("server.grpc.max_concurrent_streams must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
