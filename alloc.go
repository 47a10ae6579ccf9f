// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import "sync"

// Allocator mediates the queue's backing storage and the lifetime of each
// element stored in it.
//
// The queue calls Allocate once at construction and Deallocate once from
// Close. Construct runs on the producer goroutine when an element enters a
// slot; Destroy runs on the consumer goroutine when it leaves (or from
// Close for elements still queued). The queue guarantees Construct and
// Destroy are only called on slots inside the live range, so
// implementations need no bounds or state checks of their own.
//
// Any implementation can be substituted without touching queue logic, for
// example one that recycles arrays, counts live elements, or releases
// resources held by T.
type Allocator[T any] interface {
	// Allocate returns storage for at least n elements.
	Allocate(n int) []T

	// Deallocate releases storage obtained from Allocate.
	Deallocate(buf []T)

	// Construct stores *elem into the empty slot.
	Construct(slot *T, elem *T)

	// Destroy ends the lifetime of the element in slot without
	// releasing the slot itself.
	Destroy(slot *T)
}

// HeapAllocator is the default [Allocator]: storage comes from make and
// Destroy clears the slot so referenced objects become collectable.
type HeapAllocator[T any] struct{}

// Allocate returns a fresh slice of n elements.
func (HeapAllocator[T]) Allocate(n int) []T {
	return make([]T, n)
}

// Deallocate drops buf; the garbage collector reclaims it.
func (HeapAllocator[T]) Deallocate([]T) {}

// Construct copies *elem into slot.
func (HeapAllocator[T]) Construct(slot *T, elem *T) {
	*slot = *elem
}

// Destroy zeroes slot.
func (HeapAllocator[T]) Destroy(slot *T) {
	var zero T
	*slot = zero
}

// PoolAllocator recycles backing arrays through a [sync.Pool].
//
// Useful when queues of the same capacity are created and closed
// repeatedly (per-connection pipelines, per-request fan-in). Arrays
// returned by Deallocate are cleared before they are pooled.
//
// A PoolAllocator must not be copied after first use.
type PoolAllocator[T any] struct {
	pool sync.Pool
}

// NewPoolAllocator returns an empty PoolAllocator.
func NewPoolAllocator[T any]() *PoolAllocator[T] {
	return &PoolAllocator[T]{}
}

// Allocate reuses a pooled array of at least n elements when one is
// available and makes a new one otherwise.
func (a *PoolAllocator[T]) Allocate(n int) []T {
	if p, ok := a.pool.Get().(*[]T); ok && cap(*p) >= n {
		return (*p)[:n]
	}
	return make([]T, n)
}

// Deallocate clears buf and returns it to the pool.
func (a *PoolAllocator[T]) Deallocate(buf []T) {
	if cap(buf) == 0 {
		return
	}
	clear(buf)
	a.pool.Put(&buf)
}

// Construct copies *elem into slot.
func (a *PoolAllocator[T]) Construct(slot *T, elem *T) {
	*slot = *elem
}

// Destroy zeroes slot.
func (a *PoolAllocator[T]) Destroy(slot *T) {
	var zero T
	*slot = zero
}
