package actionqueue

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestFIFO(t *testing.T) {
	q := New(3)
	ctx := context.Background()
	for _, slot := range []int{4, 1, 9} {
		if !q.Enqueue(ctx, slot) {
			t.Fatalf("Enqueue(%d) = false", slot)
		}
	}
	for _, want := range []int{4, 1, 9} {
		got, ok := q.Dequeue(ctx)
		if !ok || got != want {
			t.Fatalf("Dequeue = (%d, %v), want (%d, true)", got, ok, want)
		}
	}
}

func TestCapacityBound(t *testing.T) {
	q := New(3)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		q.Enqueue(ctx, i)
	}
	if q.Len() != 3 {
		t.Fatalf("Len = %d, want 3", q.Len())
	}
	if q.TryEnqueue(99) {
		t.Error("TryEnqueue on full queue should report false")
	}
	if q.Len() != 3 {
		t.Errorf("Len after rejected TryEnqueue = %d, want 3", q.Len())
	}
}

func TestTryEnqueue(t *testing.T) {
	q := New(1)
	if !q.TryEnqueue(5) {
		t.Fatal("TryEnqueue on empty queue should succeed")
	}
	if q.TryEnqueue(6) {
		t.Fatal("TryEnqueue on full queue should fail")
	}
	got, ok := q.Dequeue(context.Background())
	if !ok || got != 5 {
		t.Fatalf("Dequeue = (%d, %v), want (5, true)", got, ok)
	}
}

func TestDequeueCancellation(t *testing.T) {
	q := New(1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, ok := q.Dequeue(ctx); ok {
			t.Error("Dequeue should report !ok after cancellation")
		}
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Dequeue did not return after cancellation")
	}
}

func TestEnqueueCancellation(t *testing.T) {
	q := New(1)
	q.TryEnqueue(0) // fill

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if q.Enqueue(ctx, 1) {
			t.Error("Enqueue should report false after cancellation")
		}
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue did not return after cancellation")
	}
}

func TestEnqueueUnblocksOnDequeue(t *testing.T) {
	q := New(1)
	ctx := context.Background()
	q.Enqueue(ctx, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		q.Enqueue(ctx, 2)
	}()

	if got, _ := q.Dequeue(ctx); got != 1 {
		t.Fatalf("Dequeue = %d, want 1", got)
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("blocked Enqueue was not woken by Dequeue")
	}
	if got, _ := q.Dequeue(ctx); got != 2 {
		t.Fatalf("Dequeue = %d, want 2", got)
	}
}

func TestConcurrentProducersConsumers(t *testing.T) {
	q := New(3)
	ctx := context.Background()
	const total = 300

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			q.Enqueue(ctx, i)
		}
	}()

	seen := make([]bool, total)
	for i := 0; i < total; i++ {
		slot, ok := q.Dequeue(ctx)
		if !ok {
			t.Fatal("unexpected cancellation")
		}
		if seen[slot] {
			t.Fatalf("slot %d delivered twice", slot)
		}
		seen[slot] = true
		if got := q.Len(); got < 0 || got > 3 {
			t.Fatalf("Len = %d outside [0,3]", got)
		}
	}
	wg.Wait()
}
