// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import (
	"code.hybscloud.com/spin"
	"code.hybscloud.com/spsc/internal/park"
)

// EnqueueSpin adds an element, busy-spinning while the queue is full
// (producer only).
//
// Suited to producers pinned to a dedicated core where latency matters
// more than CPU time. There is no timeout; for bounded waiting, poll
// Enqueue with a deadline instead.
func (q *Queue[T]) EnqueueSpin(elem *T) {
	if debugChecks {
		defer q.guard.enterProducer()()
	}
	p := q.push
	tail := p.pos.LoadRelaxed()
	if tail-p.cached > q.ring.mask {
		sw := spin.Wait{}
		for {
			p.cached = q.pop.pos.LoadAcquire()
			if tail-p.cached <= q.ring.mask {
				break
			}
			sw.Once()
		}
	}

	q.ring.constructAt(tail, elem)
	q.publishPush(tail + 1)
}

// DequeueSpin removes and returns an element, busy-spinning while the
// queue is empty (consumer only).
func (q *Queue[T]) DequeueSpin() T {
	if debugChecks {
		defer q.guard.enterConsumer()()
	}
	c := q.pop
	head := c.pos.LoadRelaxed()
	if head >= c.cached {
		sw := spin.Wait{}
		for {
			c.cached = q.push.pos.LoadAcquire()
			if head < c.cached {
				break
			}
			sw.Once()
		}
	}

	elem := q.ring.moveOut(head)
	q.publishPop(head + 1)
	return elem
}

// EnqueueWait adds an element, parking the goroutine while the queue is
// full (producer only).
//
// When there is room EnqueueWait costs the same as Enqueue: no lock, no
// allocation, no system call. Only a full queue parks, and the consumer's
// next Dequeue (from any entry point) wakes the producer.
func (q *Queue[T]) EnqueueWait(elem *T) {
	if debugChecks {
		defer q.guard.enterProducer()()
	}
	p := q.push
	tail := p.pos.LoadRelaxed()
	for tail-p.cached > q.ring.mask {
		head := q.pop.pos.LoadAcquire()
		p.cached = head
		if tail-head <= q.ring.mask {
			break
		}
		sleep(q.pop, q.notFull, head)
	}

	q.ring.constructAt(tail, elem)
	q.publishPush(tail + 1)
}

// DequeueWait removes and returns an element, parking the goroutine while
// the queue is empty (consumer only).
func (q *Queue[T]) DequeueWait() T {
	if debugChecks {
		defer q.guard.enterConsumer()()
	}
	c := q.pop
	head := c.pos.LoadRelaxed()
	for head >= c.cached {
		tail := q.push.pos.LoadAcquire()
		c.cached = tail
		if head < tail {
			break
		}
		sleep(q.push, q.notEmpty, tail)
	}

	elem := q.ring.moveOut(head)
	q.publishPop(head + 1)
	return elem
}

// sleep parks until l.pos moves away from seen.
//
// Registering in parked with an acquire-release add before the final
// acquire re-check pairs with the add in publishPush/publishPop: either
// this load sees the owner's new pos, or the owner's add sees the
// registration and calls Wake.
func sleep(l *lane, p park.Parker, seen uint64) {
	l.parked.AddAcqRel(1)
	if l.pos.LoadAcquire() == seen {
		p.Wait(&l.pos, seen)
	}
	l.parked.AddAcqRel(-1)
}
