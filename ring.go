// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import "unsafe"

// ring owns the slot array of a queue. Which slots are live is not
// recorded here: it is always [pop, push) of the cursor pair, and callers
// only pass positions inside that range.
type ring[T any] struct {
	buf   []T
	mask  uint64
	size  uintptr // unsafe.Sizeof(T)
	alloc Allocator[T]
}

func newRing[T any](capacity int, alloc Allocator[T]) ring[T] {
	mustPow2(capacity)
	if alloc == nil {
		alloc = HeapAllocator[T]{}
	}
	buf := alloc.Allocate(capacity)
	if len(buf) < capacity {
		panic("spsc: allocator returned fewer slots than requested")
	}
	var zero T
	return ring[T]{
		buf:   buf[:capacity],
		mask:  uint64(capacity - 1),
		size:  unsafe.Sizeof(zero),
		alloc: alloc,
	}
}

// slot returns the slot for cursor position pos.
// Pointer arithmetic avoids the bounds check: pos&mask < len(buf).
func (r *ring[T]) slot(pos uint64) *T {
	return (*T)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(r.buf)), uintptr(pos&r.mask)*r.size))
}

func (r *ring[T]) constructAt(pos uint64, elem *T) {
	r.alloc.Construct(r.slot(pos), elem)
}

func (r *ring[T]) destroyAt(pos uint64) {
	r.alloc.Destroy(r.slot(pos))
}

// moveOut copies the element at pos out and destroys the slot.
func (r *ring[T]) moveOut(pos uint64) T {
	s := r.slot(pos)
	elem := *s
	r.alloc.Destroy(s)
	return elem
}

// release destroys the live range [from, to) and hands the array back to
// the allocator. Releasing twice is a no-op.
func (r *ring[T]) release(from, to uint64) {
	if r.buf == nil {
		return
	}
	for pos := from; pos != to; pos++ {
		r.destroyAt(pos)
	}
	r.alloc.Deallocate(r.buf)
	r.buf = nil
}

func (r *ring[T]) capacity() int {
	return int(r.mask + 1)
}

// mustPow2 panics unless n is a positive power of two.
func mustPow2(n int) {
	if n <= 0 || n&(n-1) != 0 {
		panic("spsc: capacity must be a positive power of 2")
	}
}
