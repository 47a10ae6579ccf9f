// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import "code.hybscloud.com/spsc/internal/park"

// Options configures queue creation.
type Options struct {
	// Capacity (must be a power of 2, never rounded)
	capacity int

	// Layout: pack both cursor lanes on one cache line
	unpadded bool

	// Wake backend: force the sync.Cond fallback
	condWake bool
}

// parker returns a fresh wake channel for one cursor lane.
func (o Options) parker() park.Parker {
	if o.condWake {
		return park.NewCond()
	}
	return park.New()
}

// Builder creates queues with fluent configuration.
//
// Example:
//
//	// Default: padded lanes, futex wake on Linux
//	q := spsc.Build[Event](spsc.New(1024))
//
//	// Both cursors on one cache line (for comparison runs)
//	q := spsc.Build[Event](spsc.New(1024).Unpadded())
//
//	// Custom allocator
//	q := spsc.BuildWith[Event](spsc.New(1024), spsc.NewPoolAllocator[Event]())
//
//	// Mutex baseline with the same surface
//	l := spsc.BuildLocked[Event](spsc.New(1024))
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
//
// Capacity is used as given. Panics if capacity is not a positive
// power of 2: a queue silently larger than requested hides sizing bugs.
func New(capacity int) *Builder {
	mustPow2(capacity)
	return &Builder{opts: Options{capacity: capacity}}
}

// Unpadded places the push and pop cursors on the same cache line.
//
// The queue behaves identically; throughput under contention drops
// because every publish invalidates the other core's copy of the line.
// Intended for measurements, not production.
func (b *Builder) Unpadded() *Builder {
	b.opts.unpadded = true
	return b
}

// CondWake selects the mutex and condition variable wake backend even
// where futex(2) is available.
func (b *Builder) CondWake() *Builder {
	b.opts.condWake = true
	return b
}

// Build creates a Queue[T] using the default [HeapAllocator].
func Build[T any](b *Builder) *Queue[T] {
	return newQueue[T](b.opts, nil)
}

// BuildWith creates a Queue[T] whose storage and element lifetimes are
// managed by alloc. A nil alloc selects [HeapAllocator].
func BuildWith[T any](b *Builder, alloc Allocator[T]) *Queue[T] {
	return newQueue(b.opts, alloc)
}

// BuildLocked creates the mutex-protected baseline queue.
// Unpadded and CondWake do not apply to it.
func BuildLocked[T any](b *Builder) *Locked[T] {
	return newLocked[T](b.opts.capacity, nil)
}

// BuildLockedWith is BuildLocked with a custom allocator.
func BuildLockedWith[T any](b *Builder, alloc Allocator[T]) *Locked[T] {
	return newLocked(b.opts.capacity, alloc)
}
