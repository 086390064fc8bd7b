package player

import (
	"context"
	"testing"
	"time"

	"github.com/kestrelworks/trio/internal/arbiter"
	"github.com/kestrelworks/trio/internal/board"
	"github.com/kestrelworks/trio/internal/display"
	"github.com/kestrelworks/trio/internal/event"
	"github.com/kestrelworks/trio/internal/logging"
	"github.com/kestrelworks/trio/internal/rules"
)

type fixture struct {
	table *board.Table
	arb   *arbiter.Arbiter
	bus   *event.Bus
}

func newFixture(t *testing.T, players int) *fixture {
	t.Helper()
	r, err := rules.New(81, 3)
	if err != nil {
		t.Fatalf("rules.New: %v", err)
	}
	tb := board.New(12, 81, players, 3, r)
	bus := event.NewBus()
	return &fixture{
		table: tb,
		arb:   arbiter.New(tb, r, 3, bus, logging.NopLogger()),
		bus:   bus,
	}
}

func (f *fixture) newPlayer(t *testing.T, cfg Config) *Player {
	t.Helper()
	if cfg.FeatureSize == 0 {
		cfg.FeatureSize = 3
	}
	if cfg.TableSize == 0 {
		cfg.TableSize = 12
	}
	return New(cfg, f.table, f.arb, display.Nop{}, f.bus, logging.NopLogger())
}

// settle waits until cond holds or the deadline passes.
func settle(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestToggleIdempotence(t *testing.T) {
	f := newFixture(t, 1)
	f.table.PlaceCard(10, 4)

	p := f.newPlayer(t, Config{ID: 0, Human: true})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	// Same slot twice with no intervening claim: zero net tokens.
	p.KeyPressed(4)
	p.KeyPressed(4)

	settle(t, func() bool { return p.QueueLen() == 0 && f.table.TokenCount(0) == 0 },
		"expected zero net tokens after double toggle")
	cancel()
	p.Wait()
}

func TestAwardFlow(t *testing.T) {
	f := newFixture(t, 1)
	// 0, 1, 2 form a legal combination.
	for slot, card := range []int{0, 1, 2} {
		f.table.PlaceCard(card, slot)
	}

	frozen := make(chan event.Event, 1)
	f.bus.Subscribe(event.TypePlayerFrozen, func(e event.Event) { frozen <- e })

	p := f.newPlayer(t, Config{
		ID: 0, Human: true,
		PointFreeze: 30 * time.Millisecond,
		FreezeTick:  10 * time.Millisecond,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	for slot := 0; slot < 3; slot++ {
		p.KeyPressed(slot)
	}

	settle(t, func() bool { return p.Score() == 1 }, "expected score 1 after award")
	select {
	case e := <-frozen:
		fe := e.(event.PlayerFrozenEvent)
		if fe.Duration != 30*time.Millisecond {
			t.Errorf("freeze duration = %v, want 30ms", fe.Duration)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no freeze event after award")
	}

	// Awarded slots go to the pending worklist, not straight off the table.
	if f.arb.PendingEmpty() {
		t.Error("award should queue slots for removal")
	}
	cancel()
	p.Wait()
}

func TestPenaltyFlow(t *testing.T) {
	f := newFixture(t, 1)
	// 0, 1, 3 is illegal.
	for slot, card := range []int{0, 1, 3} {
		f.table.PlaceCard(card, slot)
	}

	p := f.newPlayer(t, Config{
		ID: 0, Human: true,
		PenaltyFreeze: 30 * time.Millisecond,
		FreezeTick:    10 * time.Millisecond,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	for slot := 0; slot < 3; slot++ {
		p.KeyPressed(slot)
	}

	settle(t, p.Frozen, "player should freeze after an illegal claim")
	if p.Score() != 0 {
		t.Errorf("score = %d, want 0 after penalty", p.Score())
	}
	if !f.arb.PendingEmpty() {
		t.Error("penalty must not queue removals")
	}
	settle(t, func() bool { return !p.Frozen() }, "freeze should expire")
	cancel()
	p.Wait()
}

func TestFrozenRejectsInput(t *testing.T) {
	f := newFixture(t, 1)
	for slot, card := range []int{0, 1, 3} {
		f.table.PlaceCard(card, slot)
	}

	p := f.newPlayer(t, Config{
		ID: 0, Human: true,
		PenaltyFreeze: 500 * time.Millisecond,
		FreezeTick:    100 * time.Millisecond,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	for slot := 0; slot < 3; slot++ {
		p.KeyPressed(slot)
	}
	settle(t, p.Frozen, "player should freeze after penalty")

	p.KeyPressed(5)
	if p.QueueLen() != 0 {
		t.Error("input during freeze should be dropped")
	}
	cancel()
	p.Wait()
}

func TestTerminationAbortsFreeze(t *testing.T) {
	f := newFixture(t, 1)
	for slot, card := range []int{0, 1, 3} {
		f.table.PlaceCard(card, slot)
	}

	p := f.newPlayer(t, Config{
		ID: 0, Human: true,
		PenaltyFreeze: time.Hour, // far longer than the test will run
	})
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	for slot := 0; slot < 3; slot++ {
		p.KeyPressed(slot)
	}
	settle(t, p.Frozen, "player should freeze after penalty")

	cancel()
	done := make(chan struct{})
	go func() {
		p.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("player did not exit during freeze after cancellation")
	}
}

func TestSyntheticInputProducesActions(t *testing.T) {
	f := newFixture(t, 1)
	// Empty table: every toggle fails but actions still flow through the
	// queue, exercising generator, queue and consumer together.
	p := f.newPlayer(t, Config{ID: 0, Human: false, Seed: 7})
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	time.Sleep(50 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		p.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("computer player did not shut down")
	}
}
