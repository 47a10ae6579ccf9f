// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import "sync"

// Locked is a mutex-protected bounded FIFO with the same surface as
// [Queue] minus the spin entry points.
//
// It exists as a reference: tests run the same scenarios against both,
// and the benchmark harness reports how far the lock-free design is ahead.
// Every operation, including Len, takes the lock.
type Locked[T any] struct {
	mu       sync.Mutex
	notEmpty sync.Cond
	notFull  sync.Cond
	ring     ring[T]
	head     uint64
	tail     uint64
}

// NewLocked creates a Locked queue with the default allocator.
//
// Panics if capacity is not a positive power of 2.
func NewLocked[T any](capacity int) *Locked[T] {
	return newLocked[T](capacity, nil)
}

func newLocked[T any](capacity int, alloc Allocator[T]) *Locked[T] {
	q := &Locked[T]{ring: newRing(capacity, alloc)}
	q.notEmpty.L = &q.mu
	q.notFull.L = &q.mu
	return q
}

// Enqueue adds an element to the queue (producer only).
// Returns ErrWouldBlock if the queue is full.
func (q *Locked[T]) Enqueue(elem *T) error {
	q.mu.Lock()
	if q.tail-q.head > q.ring.mask {
		q.mu.Unlock()
		return ErrWouldBlock
	}
	q.put(elem)
	q.mu.Unlock()
	q.notEmpty.Signal()
	return nil
}

// Dequeue removes and returns an element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Locked[T]) Dequeue() (T, error) {
	q.mu.Lock()
	if q.head == q.tail {
		q.mu.Unlock()
		var zero T
		return zero, ErrWouldBlock
	}
	elem := q.take()
	q.mu.Unlock()
	q.notFull.Signal()
	return elem, nil
}

// EnqueueWait adds an element, waiting on a condition variable while the
// queue is full (producer only).
func (q *Locked[T]) EnqueueWait(elem *T) {
	q.mu.Lock()
	for q.tail-q.head > q.ring.mask {
		q.notFull.Wait()
	}
	q.put(elem)
	q.mu.Unlock()
	q.notEmpty.Signal()
}

// DequeueWait removes and returns an element, waiting on a condition
// variable while the queue is empty (consumer only).
func (q *Locked[T]) DequeueWait() T {
	q.mu.Lock()
	for q.head == q.tail {
		q.notEmpty.Wait()
	}
	elem := q.take()
	q.mu.Unlock()
	q.notFull.Signal()
	return elem
}

// put and take require q.mu.
func (q *Locked[T]) put(elem *T) {
	q.ring.constructAt(q.tail, elem)
	q.tail++
}

func (q *Locked[T]) take() T {
	elem := q.ring.moveOut(q.head)
	q.head++
	return elem
}

// Cap returns the queue capacity.
func (q *Locked[T]) Cap() int {
	return q.ring.capacity()
}

// Len returns the number of queued elements.
func (q *Locked[T]) Len() int {
	q.mu.Lock()
	n := q.tail - q.head
	q.mu.Unlock()
	return int(n)
}

// Empty reports whether the queue held no elements at the time of the call.
func (q *Locked[T]) Empty() bool {
	return q.Len() == 0
}

// Full reports whether the queue was at capacity at the time of the call.
func (q *Locked[T]) Full() bool {
	return q.Len() == q.Cap()
}

// Close destroys every element still queued and returns the storage to
// the allocator. Calling Close more than once is a no-op.
func (q *Locked[T]) Close() {
	q.mu.Lock()
	q.ring.release(q.head, q.tail)
	q.head = q.tail
	q.mu.Unlock()
}

var _ FIFO[int] = (*Locked[int])(nil)
