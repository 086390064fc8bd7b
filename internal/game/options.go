package game

import (
	"github.com/kestrelworks/trio/internal/display"
	"github.com/kestrelworks/trio/internal/event"
	"github.com/kestrelworks/trio/internal/logging"
)

// gameConfig holds optional configuration for a Game.
type gameConfig struct {
	bus     *event.Bus
	display display.Display
	log     *logging.Logger
	seed    uint64
	seedSet bool
}

// Option configures a Game.
type Option func(*gameConfig)

// WithBus sets the event bus. If nil, a fresh bus is created.
func WithBus(b *event.Bus) Option {
	return func(c *gameConfig) { c.bus = b }
}

// WithDisplay sets the display sink. Defaults to display.Nop.
func WithDisplay(d display.Display) Option {
	return func(c *gameConfig) { c.display = d }
}

// WithLogger sets the logger. Defaults to the no-op logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *gameConfig) { c.log = l }
}

// WithSeed fixes the random seed for the shuffle and the synthetic input
// generators, making the game replayable. Without it the seed is taken
// from the clock.
func WithSeed(seed uint64) Option {
	return func(c *gameConfig) {
		c.seed = seed
		c.seedSet = true
	}
}
