package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string // the config field path (e.g. "game.feature_size")
	Value   any    // the invalid value
	Message string // human-readable description
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels.
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config and returns all validation errors found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, c.validateGame()...)
	errs = append(errs, c.validatePlayers()...)
	errs = append(errs, c.validateLogging()...)
	return errs
}

func (c *Config) validateGame() []ValidationError {
	var errs []ValidationError
	g := c.Game

	if g.FeatureSize < 2 {
		errs = append(errs, ValidationError{
			Field: "game.feature_size", Value: g.FeatureSize,
			Message: "must be at least 2",
		})
	}
	if g.TableSize < g.FeatureSize {
		errs = append(errs, ValidationError{
			Field: "game.table_size", Value: g.TableSize,
			Message: fmt.Sprintf("must be at least feature_size (%d)", g.FeatureSize),
		})
	}
	if g.DeckSize < g.TableSize {
		errs = append(errs, ValidationError{
			Field: "game.deck_size", Value: g.DeckSize,
			Message: fmt.Sprintf("must be at least table_size (%d)", g.TableSize),
		})
	}
	if g.TurnTimeoutMs > 0 && g.TurnTimeoutWarningMs >= g.TurnTimeoutMs {
		errs = append(errs, ValidationError{
			Field: "game.turn_timeout_warning_ms", Value: g.TurnTimeoutWarningMs,
			Message: "must be below turn_timeout_ms",
		})
	}
	if g.TurnTimeoutWarningMs < 0 {
		errs = append(errs, ValidationError{
			Field: "game.turn_timeout_warning_ms", Value: g.TurnTimeoutWarningMs,
			Message: "must not be negative",
		})
	}
	if g.PointFreezeMs < 0 {
		errs = append(errs, ValidationError{
			Field: "game.point_freeze_ms", Value: g.PointFreezeMs,
			Message: "must not be negative",
		})
	}
	if g.PenaltyFreezeMs < 0 {
		errs = append(errs, ValidationError{
			Field: "game.penalty_freeze_ms", Value: g.PenaltyFreezeMs,
			Message: "must not be negative",
		})
	}
	return errs
}

func (c *Config) validatePlayers() []ValidationError {
	var errs []ValidationError
	if c.Players.Human < 0 {
		errs = append(errs, ValidationError{
			Field: "players.human", Value: c.Players.Human,
			Message: "must not be negative",
		})
	}
	if c.Players.Computer < 0 {
		errs = append(errs, ValidationError{
			Field: "players.computer", Value: c.Players.Computer,
			Message: "must not be negative",
		})
	}
	if c.Players.Total() < 1 {
		errs = append(errs, ValidationError{
			Field: "players", Value: c.Players.Total(),
			Message: "at least one player is required",
		})
	}
	return errs
}

func (c *Config) validateLogging() []ValidationError {
	var errs []ValidationError
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field: "logging.level", Value: c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	return errs
}
