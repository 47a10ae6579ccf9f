// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import (
	"code.hybscloud.com/spsc/internal/park"
)

// Queue is a bounded lock-free single-producer single-consumer queue.
//
// Based on Lamport's ring buffer with cached index optimization.
// The producer caches the consumer's pop cursor and vice versa, so the
// common case touches no cache line written by the other side.
//
// Three interchangeable entry point pairs operate on the same state and
// may be mixed freely, even across sides (a spinning producer with a
// parking consumer is fine):
//
//   - Enqueue / Dequeue: non-blocking, return ErrWouldBlock at the boundary
//   - EnqueueSpin / DequeueSpin: busy-spin until room or data appears
//   - EnqueueWait / DequeueWait: park until the other side publishes
//
// Memory: O(capacity) plus two cache-line-isolated cursor lanes.
type Queue[T any] struct {
	push     *lane // producer-owned
	pop      *lane // consumer-owned
	ring     ring[T]
	notEmpty park.Parker // consumer parks on push.pos
	notFull  park.Parker // producer parks on pop.pos
	padded   bool
	guard    guard
}

// NewQueue creates a padded Queue with the default allocator and the
// platform's preferred wake backend.
//
// Panics if capacity is not a positive power of 2.
func NewQueue[T any](capacity int) *Queue[T] {
	return newQueue[T](Options{capacity: capacity}, nil)
}

func newQueue[T any](opts Options, alloc Allocator[T]) *Queue[T] {
	r := newRing(opts.capacity, alloc)
	push, pop := newLanes(!opts.unpadded)
	return &Queue[T]{
		push:     push,
		pop:      pop,
		ring:     r,
		notEmpty: opts.parker(),
		notFull:  opts.parker(),
		padded:   !opts.unpadded,
	}
}

// Enqueue adds an element to the queue (producer only).
// Returns ErrWouldBlock if the queue is full.
func (q *Queue[T]) Enqueue(elem *T) error {
	if debugChecks {
		defer q.guard.enterProducer()()
	}
	p := q.push
	tail := p.pos.LoadRelaxed()
	if tail-p.cached > q.ring.mask {
		p.cached = q.pop.pos.LoadAcquire()
		if tail-p.cached > q.ring.mask {
			return ErrWouldBlock
		}
	}

	q.ring.constructAt(tail, elem)
	q.publishPush(tail + 1)
	return nil
}

// Dequeue removes and returns an element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Queue[T]) Dequeue() (T, error) {
	if debugChecks {
		defer q.guard.enterConsumer()()
	}
	c := q.pop
	head := c.pos.LoadRelaxed()
	if head >= c.cached {
		c.cached = q.push.pos.LoadAcquire()
		if head >= c.cached {
			var zero T
			return zero, ErrWouldBlock
		}
	}

	elem := q.ring.moveOut(head)
	q.publishPop(head + 1)
	return elem, nil
}

// publishPush makes the slot at next-1 visible to the consumer, then wakes
// it if it is parked.
//
// The release store orders constructAt before the new cursor. The
// acquire-release add on parked then orders the store before the parked
// check: paired with the same add in sleep, either the consumer's re-check
// sees next or this add sees the consumer registered and wakes it.
func (q *Queue[T]) publishPush(next uint64) {
	q.push.pos.StoreRelease(next)
	if q.push.parked.AddAcqRel(0) != 0 {
		q.notEmpty.Wake(&q.push.pos)
	}
}

// publishPop frees the slot at next-1 for the producer, then wakes it if
// it is parked. Same handshake as publishPush.
func (q *Queue[T]) publishPop(next uint64) {
	q.pop.pos.StoreRelease(next)
	if q.pop.parked.AddAcqRel(0) != 0 {
		q.notFull.Wake(&q.pop.pos)
	}
}

// Cap returns the queue capacity.
func (q *Queue[T]) Cap() int {
	return q.ring.capacity()
}

// Len returns the number of queued elements.
//
// The result is a snapshot: either side may move before the caller acts
// on it. It is always within [0, Cap()].
func (q *Queue[T]) Len() int {
	// pop first: the acquire keeps the push load after it, and push only
	// grows, so tail >= head for this pair.
	head := q.pop.pos.LoadAcquire()
	tail := q.push.pos.LoadAcquire()
	n := tail - head
	if n > q.ring.mask+1 {
		n = q.ring.mask + 1
	}
	return int(n)
}

// Empty reports whether the queue held no elements at the time of the call.
func (q *Queue[T]) Empty() bool {
	return q.Len() == 0
}

// Full reports whether the queue was at capacity at the time of the call.
func (q *Queue[T]) Full() bool {
	return q.Len() == q.Cap()
}

// Padded reports whether the cursor lanes sit on separate cache lines.
func (q *Queue[T]) Padded() bool {
	return q.padded
}

// Close destroys every element still queued, in FIFO order, and returns
// the storage to the allocator.
//
// Close must only be called after both the producer and the consumer have
// stopped using the queue. The queue must not be used afterwards.
// Calling Close more than once is a no-op.
func (q *Queue[T]) Close() {
	head := q.pop.pos.LoadAcquire()
	tail := q.push.pos.LoadAcquire()
	q.ring.release(head, tail)
	q.pop.pos.StoreRelease(tail)
	q.push.cached = tail
	q.pop.cached = tail
}

var (
	_ FIFO[int]    = (*Queue[int])(nil)
	_ Spinner[int] = (*Queue[int])(nil)
)
