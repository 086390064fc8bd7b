// Package config defines the game configuration, loaded through viper from
// a YAML file, environment variables, and flags.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete configuration for one game process.
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Players PlayersConfig `mapstructure:"players"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GameConfig holds the board geometry and timing rules.
type GameConfig struct {
	// DeckSize is the number of distinct cards in the deck.
	DeckSize int `mapstructure:"deck_size"`
	// TableSize is the number of slots on the table.
	TableSize int `mapstructure:"table_size"`
	// FeatureSize is the number of cards in a legal combination, and the
	// per-player token cap and action queue capacity.
	FeatureSize int `mapstructure:"feature_size"`
	// TurnTimeoutMs selects the timer mode by sign: positive runs a
	// per-round countdown, zero counts elapsed time up, negative disables
	// the timer display entirely.
	TurnTimeoutMs int64 `mapstructure:"turn_timeout_ms"`
	// TurnTimeoutWarningMs is the remaining time below which the countdown
	// switches to the warning style.
	TurnTimeoutWarningMs int64 `mapstructure:"turn_timeout_warning_ms"`
	// PointFreezeMs is how long a player is frozen after a successful claim.
	PointFreezeMs int64 `mapstructure:"point_freeze_ms"`
	// PenaltyFreezeMs is how long a player is frozen after an illegal claim.
	PenaltyFreezeMs int64 `mapstructure:"penalty_freeze_ms"`
}

// PlayersConfig sets how many participants join and of what kind.
// Human players take keyboard input; computer players run a synthetic
// input goroutine. Humans get the lowest ids.
type PlayersConfig struct {
	Human    int `mapstructure:"human"`
	Computer int `mapstructure:"computer"`
}

// TUIConfig controls the terminal front end.
type TUIConfig struct {
	// Enabled runs the bubbletea interface; when false the game runs
	// headless with a log-backed display.
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig controls debug logging.
type LoggingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"`
	// File is the log file path; empty logs to stderr.
	File string `mapstructure:"file"`
}

// TurnTimeout returns the signed turn timeout.
func (g *GameConfig) TurnTimeout() time.Duration {
	return time.Duration(g.TurnTimeoutMs) * time.Millisecond
}

// TurnTimeoutWarning returns the countdown warning threshold.
func (g *GameConfig) TurnTimeoutWarning() time.Duration {
	return time.Duration(g.TurnTimeoutWarningMs) * time.Millisecond
}

// PointFreeze returns the award freeze duration.
func (g *GameConfig) PointFreeze() time.Duration {
	return time.Duration(g.PointFreezeMs) * time.Millisecond
}

// PenaltyFreeze returns the penalty freeze duration.
func (g *GameConfig) PenaltyFreeze() time.Duration {
	return time.Duration(g.PenaltyFreezeMs) * time.Millisecond
}

// Total returns the number of participants.
func (p *PlayersConfig) Total() int { return p.Human + p.Computer }

// Default returns a Config with the classic game values.
func Default() *Config {
	return &Config{
		Game: GameConfig{
			DeckSize:             81,
			TableSize:            12,
			FeatureSize:          3,
			TurnTimeoutMs:        60000,
			TurnTimeoutWarningMs: 5000,
			PointFreezeMs:        1000,
			PenaltyFreezeMs:      3000,
		},
		Players: PlayersConfig{
			Human:    1,
			Computer: 1,
		},
		TUI: TUIConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			File:    "",
		},
	}
}

// SetDefaults registers default values with viper.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("game.deck_size", defaults.Game.DeckSize)
	viper.SetDefault("game.table_size", defaults.Game.TableSize)
	viper.SetDefault("game.feature_size", defaults.Game.FeatureSize)
	viper.SetDefault("game.turn_timeout_ms", defaults.Game.TurnTimeoutMs)
	viper.SetDefault("game.turn_timeout_warning_ms", defaults.Game.TurnTimeoutWarningMs)
	viper.SetDefault("game.point_freeze_ms", defaults.Game.PointFreezeMs)
	viper.SetDefault("game.penalty_freeze_ms", defaults.Game.PenaltyFreezeMs)

	viper.SetDefault("players.human", defaults.Players.Human)
	viper.SetDefault("players.computer", defaults.Players.Computer)

	viper.SetDefault("tui.enabled", defaults.TUI.Enabled)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// Load reads the configuration from viper and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// ConfigDir returns the user's config directory for the game.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "trio")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".trio"
	}
	return filepath.Join(home, ".config", "trio")
}
