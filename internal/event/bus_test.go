package event

import (
	"testing"
	"time"
)

func TestSubscribeAndPublish(t *testing.T) {
	bus := NewBus()

	var got []Event
	bus.Subscribe(TypeScoreChanged, func(e Event) { got = append(got, e) })

	bus.Publish(NewScoreChangedEvent(1, 3))
	bus.Publish(NewRoundStartedEvent(1, 12)) // different type, not delivered

	if len(got) != 1 {
		t.Fatalf("handler called %d times, want 1", len(got))
	}
	sc, ok := got[0].(ScoreChangedEvent)
	if !ok {
		t.Fatalf("event type = %T, want ScoreChangedEvent", got[0])
	}
	if sc.Player != 1 || sc.Score != 3 {
		t.Errorf("event = %+v, want player 1 score 3", sc)
	}
	if sc.Timestamp().IsZero() {
		t.Error("event timestamp should be set")
	}
}

func TestSubscribeAll(t *testing.T) {
	bus := NewBus()

	count := 0
	bus.SubscribeAll(func(Event) { count++ })

	bus.Publish(NewGameStartedEvent("g1", 2))
	bus.Publish(NewClaimPenalizedEvent(0))
	bus.Publish(NewGameFinishedEvent([]int{0, 1}))

	if count != 3 {
		t.Errorf("wildcard handler called %d times, want 3", count)
	}
}

func TestDispatchOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.SubscribeAll(func(Event) { order = append(order, "wildcard") })
	bus.Subscribe(TypeClaimAwarded, func(Event) { order = append(order, "specific-1") })
	bus.Subscribe(TypeClaimAwarded, func(Event) { order = append(order, "specific-2") })

	bus.Publish(NewClaimAwardedEvent(0, []int{1, 2, 3}))

	want := []string{"specific-1", "specific-2", "wildcard"}
	if len(order) != len(want) {
		t.Fatalf("dispatch order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("dispatch order = %v, want %v", order, want)
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()

	count := 0
	id := bus.Subscribe(TypeRoundEnded, func(Event) { count++ })

	bus.Publish(NewRoundEndedEvent(1))
	if !bus.Unsubscribe(id) {
		t.Fatal("Unsubscribe should report true for a live subscription")
	}
	bus.Publish(NewRoundEndedEvent(2))

	if count != 1 {
		t.Errorf("handler called %d times, want 1", count)
	}
	if bus.Unsubscribe(id) {
		t.Error("Unsubscribe should report false the second time")
	}
	if bus.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount = %d, want 0", bus.SubscriptionCount())
	}
}

func TestPanickingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewBus()

	called := false
	bus.Subscribe(TypePlayerFrozen, func(Event) { panic("boom") })
	bus.Subscribe(TypePlayerFrozen, func(Event) { called = true })

	bus.Publish(NewPlayerFrozenEvent(2, time.Second))

	if !called {
		t.Error("second handler should run despite the first panicking")
	}
}
