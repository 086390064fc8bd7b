package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kestrelworks/trio/internal/arbiter"
	"github.com/kestrelworks/trio/internal/board"
	"github.com/kestrelworks/trio/internal/config"
	"github.com/kestrelworks/trio/internal/dealer"
	"github.com/kestrelworks/trio/internal/display"
	"github.com/kestrelworks/trio/internal/event"
	"github.com/kestrelworks/trio/internal/logging"
	"github.com/kestrelworks/trio/internal/player"
	"github.com/kestrelworks/trio/internal/rules"
)

// Game wires all engine components together for a single match.
// It owns the lifecycle of the dealer and player goroutines.
type Game struct {
	mu      sync.RWMutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
	winners []int

	id   string
	cfg  *config.Config
	bus  *event.Bus
	log  *logging.Logger
	disp *switchDisplay

	table   *board.Table
	rules   *rules.Rules
	arb     *arbiter.Arbiter
	players []*player.Player
	dealer  *dealer.Dealer
}

// New builds a Game from a validated configuration. Human players take the
// lowest ids, computer players the rest.
func New(cfg *config.Config, opts ...Option) (*Game, error) {
	if cfg == nil {
		return nil, errors.New("game: config is required")
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("game: %w", config.ValidationErrors(errs))
	}

	gc := &gameConfig{}
	for _, opt := range opts {
		opt(gc)
	}
	if gc.bus == nil {
		gc.bus = event.NewBus()
	}
	if gc.log == nil {
		gc.log = logging.NopLogger()
	}
	if gc.display == nil {
		gc.display = display.Nop{}
	}
	if !gc.seedSet {
		gc.seed = uint64(time.Now().UnixNano())
	}

	r, err := rules.New(cfg.Game.DeckSize, cfg.Game.FeatureSize)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		id:    uuid.NewString(),
		cfg:   cfg,
		bus:   gc.bus,
		rules: r,
		disp:  &switchDisplay{d: gc.display},
	}
	g.log = gc.log.WithGame(g.id)
	g.observeEvents()

	total := cfg.Players.Total()
	g.table = board.New(cfg.Game.TableSize, cfg.Game.DeckSize, total, cfg.Game.FeatureSize, r)
	g.arb = arbiter.New(g.table, r, cfg.Game.FeatureSize, g.bus, g.log)

	for id := 0; id < total; id++ {
		g.players = append(g.players, player.New(player.Config{
			ID:            id,
			Human:         id < cfg.Players.Human,
			FeatureSize:   cfg.Game.FeatureSize,
			TableSize:     cfg.Game.TableSize,
			PointFreeze:   cfg.Game.PointFreeze(),
			PenaltyFreeze: cfg.Game.PenaltyFreeze(),
			Seed:          gc.seed,
		}, g.table, g.arb, g.disp, g.bus, g.log))
	}

	g.dealer = dealer.New(dealer.Config{
		DeckSize:           cfg.Game.DeckSize,
		TableSize:          cfg.Game.TableSize,
		TurnTimeout:        cfg.Game.TurnTimeout(),
		TurnTimeoutWarning: cfg.Game.TurnTimeoutWarning(),
		Seed:               gc.seed,
	}, g.table, r, g.arb, g.players, g.disp, g.bus, g.log)

	return g, nil
}

// observeEvents mirrors the bus stream into the log, giving headless runs
// a full trace of the match.
func (g *Game) observeEvents() {
	g.bus.SubscribeAll(func(e event.Event) {
		switch ev := e.(type) {
		case event.ClaimAwardedEvent:
			g.log.Info("claim awarded", "player", ev.Player, "slots", ev.Slots)
		case event.ClaimPenalizedEvent:
			g.log.Info("claim penalized", "player", ev.Player)
		case event.ScoreChangedEvent:
			g.log.Info("score changed", "player", ev.Player, "score", ev.Score)
		case event.GameFinishedEvent:
			g.log.Info("game finished", "winners", ev.Winners)
		default:
			g.log.Debug("event", "type", e.EventType())
		}
	})
}

// ID returns the unique id of this match.
func (g *Game) ID() string { return g.id }

// Table returns the shared table, for read-only snapshots.
func (g *Game) Table() *board.Table { return g.table }

// Bus returns the event bus components publish on.
func (g *Game) Bus() *event.Bus { return g.bus }

// Config returns the configuration the game was built from.
func (g *Game) Config() *config.Config { return g.cfg }

// Mode returns the dealer's timer mode.
func (g *Game) Mode() dealer.Mode { return g.dealer.Mode() }

// PlayerCount returns the number of participants.
func (g *Game) PlayerCount() int { return len(g.players) }

// Score returns a player's current score, or 0 for an unknown id.
func (g *Game) Score(id int) int {
	if id < 0 || id >= len(g.players) {
		return 0
	}
	return g.players[id].Score()
}

// SetDisplay swaps the display sink. It may be called at any time; front
// ends that are constructed after the game use it to attach themselves.
func (g *Game) SetDisplay(d display.Display) { g.disp.set(d) }

// KeyPressed forwards one keyboard toggle to a human player. Input for
// unknown or computer players is dropped.
func (g *Game) KeyPressed(playerID, slot int) {
	if playerID < 0 || playerID >= g.cfg.Players.Human {
		return
	}
	g.players[playerID].KeyPressed(slot)
}

// Start launches the player goroutines and the dealer. It returns an error
// if the game is already running.
func (g *Game) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started {
		return errors.New("game: already started")
	}

	ctx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	g.started = true
	g.done = make(chan struct{})

	g.log.Info("game starting",
		"players", len(g.players),
		"human", g.cfg.Players.Human,
		"mode", g.dealer.Mode().String())
	g.bus.Publish(event.NewGameStartedEvent(g.id, len(g.players)))

	for _, p := range g.players {
		p.Start(ctx)
	}

	go func() {
		defer close(g.done)
		winners := g.dealer.Run(ctx)

		// The match is decided; release the players and wait for their
		// goroutines before reporting.
		cancel()
		for _, p := range g.players {
			p.Wait()
		}

		g.mu.Lock()
		g.winners = winners
		g.mu.Unlock()
	}()

	return nil
}

// Wait blocks until the game is over and returns the winner set in
// ascending player-id order. It returns nil if the game never started.
func (g *Game) Wait() []int {
	g.mu.RLock()
	done := g.done
	g.mu.RUnlock()
	if done == nil {
		return nil
	}
	<-done

	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]int(nil), g.winners...)
}

// Stop cancels the game and waits for every goroutine to exit. It is
// idempotent and safe to call on a game that already finished.
func (g *Game) Stop() {
	g.mu.Lock()
	if !g.started {
		g.mu.Unlock()
		return
	}
	cancel := g.cancel
	g.mu.Unlock()

	cancel()
	g.Wait()
}

// Running reports whether Start has been called and the game has not yet
// finished.
func (g *Game) Running() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.started || g.done == nil {
		return false
	}
	select {
	case <-g.done:
		return false
	default:
		return true
	}
}

// switchDisplay is a display that can be swapped while the game runs, so a
// front end built after the engine can attach itself.
type switchDisplay struct {
	mu sync.RWMutex
	d  display.Display
}

func (s *switchDisplay) set(d display.Display) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d == nil {
		d = display.Nop{}
	}
	s.d = d
}

func (s *switchDisplay) get() display.Display {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.d
}

func (s *switchDisplay) SetCountdown(remaining time.Duration, warning bool) {
	s.get().SetCountdown(remaining, warning)
}

func (s *switchDisplay) SetElapsed(elapsed time.Duration) {
	s.get().SetElapsed(elapsed)
}

func (s *switchDisplay) SetFreeze(player int, remaining time.Duration) {
	s.get().SetFreeze(player, remaining)
}

func (s *switchDisplay) SetScore(player, score int) {
	s.get().SetScore(player, score)
}

func (s *switchDisplay) AnnounceWinners(players []int) {
	s.get().AnnounceWinners(players)
}
