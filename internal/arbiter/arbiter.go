package arbiter

import (
	"context"
	"sync"

	"github.com/kestrelworks/trio/internal/board"
	"github.com/kestrelworks/trio/internal/event"
	"github.com/kestrelworks/trio/internal/logging"
	"github.com/kestrelworks/trio/internal/rules"
)

// Outcome is the result of a claim evaluation.
type Outcome int

const (
	// OutcomeNone means the claim was stale: the token count no longer
	// equalled featureSize by the time the gate was acquired.
	OutcomeNone Outcome = iota
	// OutcomeAward means the tokens formed a legal combination.
	OutcomeAward
	// OutcomePenalty means the tokens formed an illegal combination.
	OutcomePenalty
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeAward:
		return "award"
	case OutcomePenalty:
		return "penalty"
	default:
		return "none"
	}
}

// Arbiter evaluates claims under a single-flight gate and collects the
// slots of awarded claims for the dealer to remove.
type Arbiter struct {
	table *board.Table
	rules *rules.Rules
	bus   *event.Bus
	log   *logging.Logger

	featureSize int

	// permit holds one token while no claim is being processed. Taking it
	// acquires the gate; sending it back releases.
	permit chan struct{}
	// wake pokes the dealer out of its current sleep after an award.
	wake chan struct{}

	mu      sync.Mutex
	pending []int // slots awaiting removal by the dealer
}

// New creates an Arbiter with the gate open.
func New(table *board.Table, r *rules.Rules, featureSize int, bus *event.Bus, log *logging.Logger) *Arbiter {
	a := &Arbiter{
		table:       table,
		rules:       r,
		bus:         bus,
		log:         log,
		featureSize: featureSize,
		permit:      make(chan struct{}, 1),
		wake:        make(chan struct{}, 1),
	}
	a.permit <- struct{}{}
	return a
}

// SubmitClaim judges the player's current tokens. It blocks until the gate
// is free, then decides exactly one of the three outcomes. The returned
// error is non-nil only for cooperative cancellation (ctx.Err()); the
// caller should exit rather than retry.
//
// Side effects (score, freeze) are the caller's responsibility, applied
// outside the gate.
func (a *Arbiter) SubmitClaim(ctx context.Context, player int) (Outcome, error) {
	select {
	case <-a.permit:
	case <-ctx.Done():
		return OutcomeNone, ctx.Err()
	}

	// The token count can legitimately have changed between the player
	// completing its selection and the gate opening: an earlier award may
	// have removed one of its slots.
	if a.table.TokenCount(player) != a.featureSize {
		a.Release()
		return OutcomeNone, nil
	}

	tokens := a.table.TokensOf(player)
	cards := make([]int, len(tokens))
	for i, tok := range tokens {
		cards[i] = tok.Card
	}

	if !a.rules.Valid(cards) {
		a.Release()
		a.log.Debug("claim rejected", "player", player, "cards", cards)
		a.bus.Publish(event.NewClaimPenalizedEvent(player))
		return OutcomePenalty, nil
	}

	slots := make([]int, len(tokens))
	for i, tok := range tokens {
		slots[i] = tok.Slot
	}
	a.mu.Lock()
	a.pending = append(a.pending, slots...)
	a.mu.Unlock()

	// The permit stays held: it is returned by the dealer once the awarded
	// slots have actually left the table.
	a.signalWake()
	a.log.Debug("claim awarded", "player", player, "slots", slots)
	a.bus.Publish(event.NewClaimAwardedEvent(player, slots))
	return OutcomeAward, nil
}

// TakePending removes and returns the slots awaiting removal, or nil when
// there are none. When it returns a non-empty list the gate is closed and
// the caller must call Release after the slots have left the table.
func (a *Arbiter) TakePending() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.pending) == 0 {
		return nil
	}
	slots := a.pending
	a.pending = nil
	return slots
}

// PendingEmpty reports whether any awarded slots await removal.
func (a *Arbiter) PendingEmpty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending) == 0
}

// Acquire takes the gate permit, blocking until it is free. It returns
// false when ctx is cancelled first. The dealer brackets whole-table sweeps
// with Acquire/Release so a claim can never be judged against a
// half-cleared board.
func (a *Arbiter) Acquire(ctx context.Context) bool {
	select {
	case <-a.permit:
		return true
	case <-ctx.Done():
		return false
	}
}

// TryAcquire takes the gate permit without blocking. It returns false when
// the gate is held, whether by a claim in flight or by an undrained award.
func (a *Arbiter) TryAcquire() bool {
	select {
	case <-a.permit:
		return true
	default:
		return false
	}
}

// Release returns the gate permit, waking one blocked claimant. Releasing
// an open gate is a no-op.
func (a *Arbiter) Release() {
	select {
	case a.permit <- struct{}{}:
	default:
	}
}

// Wake returns the channel the dealer selects on to be interrupted early
// when a claim is awarded.
func (a *Arbiter) Wake() <-chan struct{} {
	return a.wake
}

func (a *Arbiter) signalWake() {
	select {
	case a.wake <- struct{}{}:
	default:
	}
}
