// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package spsc provides a bounded lock-free single-producer
// single-consumer FIFO queue.
//
// One goroutine enqueues, one goroutine dequeues, and the two synchronize
// through a pair of monotonically increasing cursors instead of a mutex.
// Each cursor sits on its own cache line next to its owner's cached copy
// of the other cursor, so in steady state neither side reads a line the
// other side writes.
//
// # Quick Start
//
//	q := spsc.NewQueue[Event](1024)
//	defer q.Close()
//
//	go func() { // producer
//	    for ev := range events {
//	        q.EnqueueWait(&ev)
//	    }
//	}()
//
//	for { // consumer
//	    ev := q.DequeueWait()
//	    handle(ev)
//	}
//
// # Access Modes
//
// Every queue exposes three pairs of entry points over the same state:
//
//	Enqueue / Dequeue         - non-blocking, ErrWouldBlock when full/empty
//	EnqueueSpin / DequeueSpin - busy-spin until the boundary clears
//	EnqueueWait / DequeueWait - park until the other side publishes
//
// The modes can be mixed on one queue, including different modes on the
// two sides. Every publish checks whether the other side is parked and
// wakes it, so a producer using Enqueue still wakes a consumer sleeping in
// DequeueWait.
//
// Spin is for goroutines locked to dedicated cores where wakeup latency
// matters more than CPU time. Wait costs nothing extra while there is room
// or data; only an actual full/empty boundary parks the goroutine, using
// futex(2) on Linux and a condition variable elsewhere.
//
// Blocking calls have no timeout or cancellation. For bounded waiting,
// poll the non-blocking call with a deadline:
//
//	backoff := iox.Backoff{}
//	for {
//	    v, err := q.Dequeue()
//	    if err == nil {
//	        return v, nil
//	    }
//	    if time.Now().After(deadline) {
//	        return v, err
//	    }
//	    backoff.Wait()
//	}
//
// # Capacity and Length
//
// Capacity must be a power of 2 and is never rounded:
//
//	spsc.NewQueue[int](512)  // capacity 512
//	spsc.NewQueue[int](1)    // capacity 1
//	spsc.NewQueue[int](1000) // panics
//	spsc.NewQueue[int](0)    // panics
//
// Len, Empty and Full are snapshots. Called from the producer, Len may
// only overstate the true count; called from the consumer, it may only
// understate it. The result is always within [0, Cap()].
//
// # Storage and Allocators
//
// Slot storage and element lifetimes are managed by an [Allocator]. The
// queue calls Construct when an element is enqueued and Destroy when it is
// dequeued, and Close destroys whatever is still queued before returning
// the storage through Deallocate:
//
//	q := spsc.BuildWith[Frame](spsc.New(1024), spsc.NewPoolAllocator[Frame]())
//
// [HeapAllocator] is the default. Destroy clears the slot so the garbage
// collector can reclaim anything the element referenced.
//
// # Cache Line Padding
//
// Padding is a construction-time choice:
//
//	q := spsc.Build[int](spsc.New(512))            // padded (default)
//	q := spsc.Build[int](spsc.New(512).Unpadded()) // cursors share a line
//
// Both layouts run the same algorithm and pass the same tests; the
// unpadded layout exists to measure what false sharing costs.
//
// # Error Handling
//
// Non-blocking calls return [ErrWouldBlock] at the boundary, sourced from
// [code.hybscloud.com/iox]. A failed call has no side effect.
//
//	spsc.IsWouldBlock(err)  // true if queue full/empty
//	spsc.IsSemantic(err)    // true if control flow signal
//	spsc.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// Invalid capacities panic at construction.
//
// # Thread Safety
//
// Exactly one goroutine may call the producer methods (Enqueue,
// EnqueueSpin, EnqueueWait) and exactly one goroutine may call the
// consumer methods (Dequeue, DequeueSpin, DequeueWait). Using either side
// from two goroutines at once is undefined behavior. Building with
// -tags spscdebug adds guards that panic on such misuse; without the tag
// the checks are compiled out.
//
// [Locked] offers the same surface behind a mutex and serves as a
// correctness and performance baseline.
//
// # Race Detection
//
// The race detector cannot observe the happens-before edge established by
// the cursor store/load pair, so it may flag the plain slot accesses.
// Long concurrent tests are skipped when [RaceEnabled] is set.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, [code.hybscloud.com/spin] for CPU pause instructions,
// and [golang.org/x/sys] for futex(2) and cache line geometry.
package spsc
