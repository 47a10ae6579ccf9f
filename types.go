// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

// FIFO is the full surface shared by [Queue] and [Locked].
//
// Exactly one goroutine may use the producer half and exactly one goroutine
// may use the consumer half. Cap, Len, Empty and Full may be called from
// either side; Close only after both sides have stopped.
//
// Example:
//
//	var q spsc.FIFO[int] = spsc.NewQueue[int](1024)
//
//	// Producer goroutine
//	v := 42
//	q.EnqueueWait(&v)
//
//	// Consumer goroutine
//	fmt.Println(q.DequeueWait())
type FIFO[T any] interface {
	BlockingProducer[T]
	BlockingConsumer[T]

	// Cap returns the fixed capacity.
	Cap() int

	// Len returns a best-effort element count in [0, Cap()].
	// The other side may change it before the caller looks at the result.
	Len() int

	// Empty reports whether Len() == 0 at the moment of the call.
	Empty() bool

	// Full reports whether Len() == Cap() at the moment of the call.
	Full() bool

	// Close destroys every element still in the queue and releases the
	// backing storage. It must not race with any other method.
	Close()
}

// Producer is the non-blocking producer half.
//
// The element is passed by pointer to avoid copying large structs. The
// queue stores a copy of the pointed-to value, so the original can be
// modified after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element to the queue (non-blocking).
	// Returns nil on success, ErrWouldBlock if the queue is full.
	// A failed Enqueue leaves the queue untouched.
	Enqueue(elem *T) error
}

// Consumer is the non-blocking consumer half.
//
// The element is returned by value and its slot is destroyed through the
// queue's [Allocator], which by default clears it so the garbage
// collector can reclaim anything it referenced.
type Consumer[T any] interface {
	// Dequeue removes and returns the oldest element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	Dequeue() (T, error)
}

// BlockingProducer adds an entry point that suspends the producer until
// there is room. It never fails.
type BlockingProducer[T any] interface {
	Producer[T]

	// EnqueueWait parks the calling goroutine until a slot frees up,
	// then enqueues elem.
	EnqueueWait(elem *T)
}

// BlockingConsumer adds an entry point that suspends the consumer until
// an element is available. It never fails.
type BlockingConsumer[T any] interface {
	Consumer[T]

	// DequeueWait parks the calling goroutine until an element arrives,
	// then dequeues it.
	DequeueWait() T
}

// Spinner is implemented by queues that offer busy-spin blocking calls.
// Only [Queue] does; spinning on a mutex-protected queue defeats the point.
type Spinner[T any] interface {
	EnqueueSpin(elem *T)
	DequeueSpin() T
}
