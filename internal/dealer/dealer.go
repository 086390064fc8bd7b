package dealer

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/kestrelworks/trio/internal/arbiter"
	"github.com/kestrelworks/trio/internal/board"
	"github.com/kestrelworks/trio/internal/display"
	"github.com/kestrelworks/trio/internal/event"
	"github.com/kestrelworks/trio/internal/logging"
	"github.com/kestrelworks/trio/internal/player"
	"github.com/kestrelworks/trio/internal/rules"
)

const (
	// coarseTick paces the countdown while the warning phase is still far
	// off; just under a second keeps the seconds readout moving.
	coarseTick = 999 * time.Millisecond
	// fineTick paces the countdown inside the warning margin so the
	// warning-phase display stays smooth.
	fineTick = 10 * time.Millisecond
	// warningMargin is how far above the warning threshold fine ticking
	// begins.
	warningMargin = time.Second
)

// Config holds the dealer's construction parameters.
type Config struct {
	DeckSize  int
	TableSize int
	// TurnTimeout is signed; its sign fixes the Mode (see ModeFor).
	TurnTimeout time.Duration
	// TurnTimeoutWarning is the countdown's warning threshold.
	TurnTimeoutWarning time.Duration
	// Seed feeds the shuffle so games can be replayed.
	Seed uint64
}

// Dealer owns the deck and the round lifecycle. Run is its goroutine body;
// every other exported method is safe to call concurrently.
type Dealer struct {
	cfg     Config
	mode    Mode
	table   *board.Table
	rules   *rules.Rules
	arb     *arbiter.Arbiter
	players []*player.Player
	display display.Display
	bus     *event.Bus
	log     *logging.Logger

	rng           *rand.Rand
	deck          []int
	slotsToInsert []int
	reshuffleAt   time.Time
	elapsed       time.Duration
	comboOnTable  bool
	round         int
}

// New creates a Dealer holding the full deck.
func New(cfg Config, table *board.Table, r *rules.Rules, arb *arbiter.Arbiter, players []*player.Player, d display.Display, bus *event.Bus, log *logging.Logger) *Dealer {
	return &Dealer{
		cfg:     cfg,
		mode:    ModeFor(cfg.TurnTimeout),
		table:   table,
		rules:   r,
		arb:     arb,
		players: players,
		display: d,
		bus:     bus,
		log:     log,
		rng:     rand.New(rand.NewPCG(cfg.Seed, 0)),
		deck:    rules.NewDeck(cfg.DeckSize),
	}
}

// Mode returns the timer mode fixed at construction.
func (d *Dealer) Mode() Mode { return d.mode }

// Round returns the 1-based index of the current round.
func (d *Dealer) Round() int { return d.round }

// Run executes the game loop until the deck can no longer yield a legal
// combination or ctx is cancelled, then computes and announces the winner
// set. It returns the winners in ascending player-id order.
func (d *Dealer) Run(ctx context.Context) []int {
	d.log.Info("dealer starting", "mode", d.mode.String(), "deck_size", len(d.deck))
	defer d.log.Info("dealer terminated")

	d.resetInserts()
	for ctx.Err() == nil && d.deckHasCombination() {
		d.shuffle()
		d.round++
		d.dealCards()
		d.bus.Publish(event.NewRoundStartedEvent(d.round, d.table.CountCards()))
		d.log.Debug("round started", "round", d.round)

		switch d.mode {
		case ModeCountdown:
			d.countdownLoop(ctx)
		case ModeCountup:
			d.countupLoop(ctx)
		case ModeDisabled:
			d.quietLoop(ctx)
		}

		d.resetTimerDisplay()
		d.clearTable(ctx)
		d.bus.Publish(event.NewRoundEndedEvent(d.round))
		d.resetInserts()
	}

	return d.announceWinners()
}

// countdownLoop runs one round against the reshuffle deadline.
func (d *Dealer) countdownLoop(ctx context.Context) {
	for ctx.Err() == nil && time.Now().Before(d.reshuffleAt) {
		d.sleepCountdown(ctx)
		d.refreshCountdown()
		d.removePending()
		d.dealCards()
	}
}

// countupLoop runs one round for as long as the table can yield a legal
// combination, showing elapsed time.
func (d *Dealer) countupLoop(ctx context.Context) {
	for ctx.Err() == nil && d.comboOnTable {
		d.sleep(ctx, coarseTick)
		d.elapsed += time.Second
		d.display.SetElapsed(d.elapsed)
		d.removePending()
		d.dealCards()
	}
}

// quietLoop runs one round with no timer display. With nothing queued for
// removal there is nothing to poll, so the dealer sleeps until an award or
// cancellation wakes it.
func (d *Dealer) quietLoop(ctx context.Context) {
	for ctx.Err() == nil && d.comboOnTable {
		if d.arb.PendingEmpty() {
			select {
			case <-d.arb.Wake():
			case <-ctx.Done():
			}
		}
		d.removePending()
		d.dealCards()
	}
}

// sleepCountdown sleeps one countdown tick: coarse while the warning phase
// is comfortably far away, fine once inside the margin.
func (d *Dealer) sleepCountdown(ctx context.Context) {
	tick := fineTick
	if time.Until(d.reshuffleAt) > d.cfg.TurnTimeoutWarning+warningMargin {
		tick = coarseTick
	}
	d.sleep(ctx, tick)
}

// sleep pauses for at most tick, waking early on an awarded claim or on
// cancellation.
func (d *Dealer) sleep(ctx context.Context, tick time.Duration) {
	timer := time.NewTimer(tick)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-d.arb.Wake():
	case <-ctx.Done():
	}
}

// refreshCountdown updates the countdown readout, clamping at zero and
// switching to the warning style below the threshold.
func (d *Dealer) refreshCountdown() {
	remaining := time.Until(d.reshuffleAt)
	if remaining < 0 {
		remaining = 0
	}
	d.display.SetCountdown(remaining, remaining < d.cfg.TurnTimeoutWarning)
}

// removePending is the maintenance pass for awarded claims: it takes the
// pending-removal worklist, lifts those cards off the table, marks the
// slots for refill, and only then reopens the claim gate.
func (d *Dealer) removePending() {
	slots := d.arb.TakePending()
	if len(slots) == 0 {
		return
	}
	for _, slot := range slots {
		d.table.RemoveCard(slot)
		d.slotsToInsert = append(d.slotsToInsert, slot)
	}
	d.arb.Release()
	d.log.Debug("removed awarded cards", "slots", slots)
}

// dealCards fills the marked empty slots from the deck, then resets the
// round deadline and timer baseline. Modes that watch the table re-check
// whether a legal combination remains.
func (d *Dealer) dealCards() {
	if len(d.slotsToInsert) == 0 {
		return
	}
	for _, slot := range d.slotsToInsert {
		if len(d.deck) == 0 {
			break
		}
		card := d.deck[0]
		d.deck = d.deck[1:]
		d.table.PlaceCard(card, slot)
	}
	d.slotsToInsert = d.slotsToInsert[:0]
	d.reshuffleAt = time.Now().Add(d.cfg.TurnTimeout)
	d.resetTimerDisplay()
	if d.mode != ModeCountdown {
		d.comboOnTable = d.table.HasLegalCombination()
	}
}

// clearTable returns every card on the table to the deck. The claim gate is
// held for the sweep so no claim is judged against a half-cleared board.
//
// Taking the gate must cooperate with awards still landing: an award keeps
// the permit until this goroutine drains the pending slots, so a blocking
// acquire behind a fresh award would wait on a drain only this loop can
// perform. Settle and retry until the permit is held with nothing pending.
func (d *Dealer) clearTable(ctx context.Context) {
	acquired := false
	for ctx.Err() == nil {
		d.removePending()
		if d.arb.TryAcquire() {
			acquired = true
			break
		}
		d.sleep(ctx, fineTick)
	}
	// On cancellation, settle once more so an award holding the gate is not
	// left undrained while the claimants shut down.
	d.removePending()
	d.deck = append(d.deck, d.table.RemoveAllCards()...)
	if acquired {
		d.arb.Release()
	}
}

// resetTimerDisplay restores the mode's baseline readout.
func (d *Dealer) resetTimerDisplay() {
	switch d.mode {
	case ModeCountdown:
		d.display.SetCountdown(d.cfg.TurnTimeout, false)
	case ModeCountup:
		d.elapsed = 0
		d.display.SetElapsed(0)
	}
}

func (d *Dealer) resetInserts() {
	d.slotsToInsert = d.slotsToInsert[:0]
	for slot := 0; slot < d.cfg.TableSize; slot++ {
		d.slotsToInsert = append(d.slotsToInsert, slot)
	}
}

func (d *Dealer) shuffle() {
	d.rng.Shuffle(len(d.deck), func(i, j int) {
		d.deck[i], d.deck[j] = d.deck[j], d.deck[i]
	})
}

// deckHasCombination reports whether the remaining deck can still yield a
// legal combination. Between rounds every undealt card is in the deck, so
// this is the game-end test.
func (d *Dealer) deckHasCombination() bool {
	return d.rules.CountCombinations(d.deck, 1) > 0
}

// announceWinners computes the winner set: every player whose score equals
// the maximum, in ascending id order.
func (d *Dealer) announceWinners() []int {
	maxScore := 0
	for _, p := range d.players {
		if p.Score() > maxScore {
			maxScore = p.Score()
		}
	}
	var winners []int
	for _, p := range d.players {
		if p.Score() == maxScore {
			winners = append(winners, p.ID())
		}
	}
	d.display.AnnounceWinners(winners)
	d.bus.Publish(event.NewGameFinishedEvent(winners))
	d.log.Info("game finished", "winners", winners, "max_score", maxScore)
	return winners
}
