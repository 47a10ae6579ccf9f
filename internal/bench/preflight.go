// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"errors"
	"fmt"

	"code.hybscloud.com/spsc"
)

// ErrPreflight is wrapped by every Preflight failure.
var ErrPreflight = errors.New("bench: preflight failed")

// Preflight runs single-goroutine sanity checks against an empty queue:
// one round trip, then a fill to capacity, a rejected extra element, and a
// drain in order. q is left empty.
func Preflight(q spsc.FIFO[uint64]) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrPreflight}, args...)...)
	}

	ten := uint64(10)
	if err := q.Enqueue(&ten); err != nil {
		return fail("Enqueue on empty: %v", err)
	}
	if n := q.Len(); n != 1 {
		return fail("Len after one Enqueue: got %d, want 1", n)
	}
	if v, err := q.Dequeue(); err != nil || v != 10 {
		return fail("Dequeue: got (%d, %v), want (10, nil)", v, err)
	}
	if n := q.Len(); n != 0 {
		return fail("Len after round trip: got %d, want 0", n)
	}

	c := uint64(q.Cap())
	for i := range c {
		if err := q.Enqueue(&i); err != nil {
			return fail("Enqueue(%d) of %d: %v", i, c, err)
		}
	}
	if !q.Full() {
		return fail("not Full after %d Enqueues", c)
	}
	if err := q.Enqueue(&ten); !spsc.IsWouldBlock(err) {
		return fail("Enqueue on full: got %v, want ErrWouldBlock", err)
	}
	for i := range c {
		if v, err := q.Dequeue(); err != nil || v != i {
			return fail("Dequeue %d: got (%d, %v)", i, v, err)
		}
	}
	if n := q.Len(); n != 0 {
		return fail("Len after drain: got %d, want 0", n)
	}
	if !q.Empty() {
		return fail("not Empty after drain")
	}
	return nil
}
