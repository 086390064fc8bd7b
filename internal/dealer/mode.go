package dealer

import "time"

// Mode is the timer behavior for the whole game, selected once at startup
// by the sign of the configured turn timeout.
type Mode int

const (
	// ModeCountdown runs every round against a fixed deadline.
	ModeCountdown Mode = iota
	// ModeCountup shows elapsed time and ends the round when no legal
	// combination remains on the table.
	ModeCountup
	// ModeDisabled shows no timer; the round ends when no legal
	// combination remains on the table.
	ModeDisabled
)

// ModeFor maps a signed turn timeout to its Mode.
func ModeFor(timeout time.Duration) Mode {
	switch {
	case timeout > 0:
		return ModeCountdown
	case timeout == 0:
		return ModeCountup
	default:
		return ModeDisabled
	}
}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeCountdown:
		return "countdown"
	case ModeCountup:
		return "countup"
	default:
		return "disabled"
	}
}
