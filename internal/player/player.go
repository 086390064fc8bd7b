// Package player runs one participant: a goroutine consuming the player's
// action queue and, for computer players, a second goroutine generating
// random slot presses.
package player

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/kestrelworks/trio/internal/actionqueue"
	"github.com/kestrelworks/trio/internal/arbiter"
	"github.com/kestrelworks/trio/internal/board"
	"github.com/kestrelworks/trio/internal/display"
	"github.com/kestrelworks/trio/internal/event"
	"github.com/kestrelworks/trio/internal/logging"
)

// retryBackoff is how long the synthetic input goroutine waits after its
// action is refused because the player is frozen.
const retryBackoff = 50 * time.Millisecond

// Config holds the per-player construction parameters.
type Config struct {
	ID          int
	Human       bool
	FeatureSize int
	TableSize   int
	// PointFreeze and PenaltyFreeze are the post-claim suspensions.
	PointFreeze   time.Duration
	PenaltyFreeze time.Duration
	// FreezeTick is the freeze countdown display granularity; zero means
	// one second.
	FreezeTick time.Duration
	// Seed feeds the synthetic input generator so games can be replayed.
	Seed uint64
}

// Player owns one participant's state and goroutines. Scores are read by
// the dealer only after the player goroutines have been joined.
type Player struct {
	cfg     Config
	queue   *actionqueue.Queue
	table   *board.Table
	arb     *arbiter.Arbiter
	display display.Display
	bus     *event.Bus
	log     *logging.Logger

	frozen  atomic.Bool
	score   atomic.Int64
	rng     *rand.Rand
	done    chan struct{}
	genDone chan struct{}
}

// New creates a Player. Its queue capacity equals FeatureSize: there is
// never a point buffering more input than one full claim's worth.
func New(cfg Config, table *board.Table, arb *arbiter.Arbiter, d display.Display, bus *event.Bus, log *logging.Logger) *Player {
	if cfg.FreezeTick <= 0 {
		cfg.FreezeTick = time.Second
	}
	return &Player{
		cfg:     cfg,
		queue:   actionqueue.New(cfg.FeatureSize),
		table:   table,
		arb:     arb,
		display: d,
		bus:     bus,
		log:     log.WithPlayer(cfg.ID),
		rng:     rand.New(rand.NewPCG(cfg.Seed, uint64(cfg.ID))),
	}
}

// ID returns the player's id.
func (p *Player) ID() int { return p.cfg.ID }

// Human reports whether the player takes keyboard input.
func (p *Player) Human() bool { return p.cfg.Human }

// Score returns the player's current score.
func (p *Player) Score() int { return int(p.score.Load()) }

// Frozen reports whether the player is serving a freeze.
func (p *Player) Frozen() bool { return p.frozen.Load() }

// QueueLen returns the number of buffered actions.
func (p *Player) QueueLen() int { return p.queue.Len() }

// Start launches the consuming goroutine and, for computer players, the
// synthetic input goroutine. Both exit when ctx is cancelled.
func (p *Player) Start(ctx context.Context) {
	p.done = make(chan struct{})
	go func() {
		defer close(p.done)
		p.run(ctx)
	}()
	if !p.cfg.Human {
		p.genDone = make(chan struct{})
		go func() {
			defer close(p.genDone)
			p.generate(ctx)
		}()
	}
}

// Wait blocks until the player's goroutines have exited.
func (p *Player) Wait() {
	<-p.done
	if p.genDone != nil {
		<-p.genDone
	}
}

// KeyPressed submits an interactive action. Input is dropped while the
// player is frozen or its queue is full; a lost redundant keypress is fine.
func (p *Player) KeyPressed(slot int) {
	if p.frozen.Load() {
		return
	}
	p.queue.TryEnqueue(slot)
}

// run is the player's main loop: dequeue one action, apply it, repeat. A
// cancelled dequeue means the game is ending.
func (p *Player) run(ctx context.Context) {
	p.log.Info("player starting", "human", p.cfg.Human)
	defer p.log.Info("player terminated")
	for {
		slot, ok := p.queue.Dequeue(ctx)
		if !ok {
			return
		}
		p.act(ctx, slot)
	}
}

// act applies the toggle-token semantics for one dequeued slot.
func (p *Player) act(ctx context.Context, slot int) {
	if p.table.RemoveToken(p.cfg.ID, slot) {
		return
	}
	if !p.table.PlaceToken(p.cfg.ID, slot) {
		return
	}
	if p.table.TokenCount(p.cfg.ID) != p.cfg.FeatureSize {
		return
	}

	outcome, err := p.arb.SubmitClaim(ctx, p.cfg.ID)
	if err != nil {
		return
	}
	switch outcome {
	case arbiter.OutcomeAward:
		p.point(ctx)
	case arbiter.OutcomePenalty:
		p.penalty(ctx)
	}
}

// point credits the award and serves the point freeze.
func (p *Player) point(ctx context.Context) {
	score := int(p.score.Add(1))
	p.display.SetScore(p.cfg.ID, score)
	p.bus.Publish(event.NewScoreChangedEvent(p.cfg.ID, score))
	p.freeze(ctx, p.cfg.PointFreeze)
}

// penalty serves the penalty freeze.
func (p *Player) penalty(ctx context.Context) {
	p.freeze(ctx, p.cfg.PenaltyFreeze)
}

// freeze suspends the player's intake for d, showing a countdown that
// steps in whole ticks after one leading partial tick absorbs the
// remainder. Cancellation aborts the freeze immediately.
func (p *Player) freeze(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	p.frozen.Store(true)
	defer p.frozen.Store(false)
	p.bus.Publish(event.NewPlayerFrozenEvent(p.cfg.ID, d))

	remaining := d
	if rem := remaining % p.cfg.FreezeTick; rem != 0 {
		p.display.SetFreeze(p.cfg.ID, remaining)
		if !p.sleep(ctx, rem) {
			return
		}
		remaining -= rem
	}
	for remaining > 0 {
		p.display.SetFreeze(p.cfg.ID, remaining)
		if !p.sleep(ctx, p.cfg.FreezeTick) {
			return
		}
		remaining -= p.cfg.FreezeTick
	}
	p.display.SetFreeze(p.cfg.ID, 0)
}

func (p *Player) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// generate is the synthetic input loop: pick a uniformly random slot and
// enqueue it, blocking while the queue is full. While the player is frozen
// the action is refused and the generator backs off one interval instead
// of spinning.
func (p *Player) generate(ctx context.Context) {
	p.log.Info("input generator starting")
	defer p.log.Info("input generator terminated")
	for ctx.Err() == nil {
		slot := p.rng.IntN(p.cfg.TableSize)
		if p.frozen.Load() {
			if !p.sleep(ctx, retryBackoff) {
				return
			}
			continue
		}
		if !p.queue.Enqueue(ctx, slot) {
			return
		}
	}
}
