// Package actionqueue provides the bounded blocking FIFO that carries slot
// actions from input producers to a player's consuming goroutine.
package actionqueue

import "context"

// Queue is a fixed-capacity FIFO of slot indices. The zero value is not
// usable; create queues with New.
//
// A buffered channel carries the elements: it preserves FIFO order, enforces
// the capacity bound, blocks producers when full and the consumer when empty,
// and wakes exactly one waiter per transfer. Every blocking operation also
// selects on the caller's context so shutdown never waits out a full or
// empty queue.
type Queue struct {
	ch chan int
}

// New creates a queue holding at most capacity actions. Capacity equals the
// number of selections needed to form a claim, so a player can never have
// more useful input buffered than one full claim.
func New(capacity int) *Queue {
	return &Queue{ch: make(chan int, capacity)}
}

// Enqueue appends slot to the tail, blocking while the queue is full. It
// returns false only when ctx is cancelled before space becomes available;
// the action is then dropped, which is fine because the game is ending.
func (q *Queue) Enqueue(ctx context.Context, slot int) bool {
	select {
	case q.ch <- slot:
		return true
	case <-ctx.Done():
		return false
	}
}

// TryEnqueue appends slot if there is space and reports whether it did.
// A full queue silently discards the action; interactive input tolerates a
// lost redundant keypress.
func (q *Queue) TryEnqueue(slot int) bool {
	select {
	case q.ch <- slot:
		return true
	default:
		return false
	}
}

// Dequeue removes and returns the head, blocking while the queue is empty.
// It returns ok=false only when ctx is cancelled while waiting; that is
// cooperative cancellation, not an error, and the caller is expected to
// re-check its termination condition.
func (q *Queue) Dequeue(ctx context.Context) (slot int, ok bool) {
	select {
	case slot = <-q.ch:
		return slot, true
	case <-ctx.Done():
		return 0, false
	}
}

// Len returns the number of buffered actions.
func (q *Queue) Len() int { return len(q.ch) }

// Cap returns the queue capacity.
func (q *Queue) Cap() int { return cap(q.ch) }
