// Package display defines the capability the engine renders through.
// Implementations must tolerate concurrent calls from the dealer and every
// player goroutine.
package display

import (
	"time"

	"github.com/kestrelworks/trio/internal/logging"
)

// Display receives all user-visible game state updates.
type Display interface {
	// SetCountdown shows the remaining round time. warning switches the
	// readout to the warning style.
	SetCountdown(remaining time.Duration, warning bool)
	// SetElapsed shows time elapsed since the round baseline.
	SetElapsed(elapsed time.Duration)
	// SetFreeze shows a player's remaining freeze time; zero clears it.
	SetFreeze(player int, remaining time.Duration)
	// SetScore shows a player's score.
	SetScore(player, score int)
	// AnnounceWinners shows the final winner set, ascending by player id.
	AnnounceWinners(players []int)
}

// Nop is a Display that drops every update. Useful in tests.
type Nop struct{}

func (Nop) SetCountdown(time.Duration, bool) {}
func (Nop) SetElapsed(time.Duration) {}
func (Nop) SetFreeze(int, time.Duration) {}
func (Nop) SetScore(int, int) {}
func (Nop) AnnounceWinners([]int) {}

// Logger is a Display for headless runs: timer updates go to the debug
// level, everything else to info.
type Logger struct {
	log *logging.Logger
}

// NewLogger creates a log-backed Display.
func NewLogger(log *logging.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) SetCountdown(remaining time.Duration, warning bool) {
	l.log.Debug("countdown", "remaining_ms", remaining.Milliseconds(), "warning", warning)
}

func (l *Logger) SetElapsed(elapsed time.Duration) {
	l.log.Debug("elapsed", "elapsed_ms", elapsed.Milliseconds())
}

func (l *Logger) SetFreeze(player int, remaining time.Duration) {
	l.log.Info("freeze", "player", player, "remaining_ms", remaining.Milliseconds())
}

func (l *Logger) SetScore(player, score int) {
	l.log.Info("score", "player", player, "score", score)
}

func (l *Logger) AnnounceWinners(players []int) {
	l.log.Info("winners", "players", players)
}
