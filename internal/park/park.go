// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package park provides the wait/notify primitive behind the queue's
// wake-on-write entry points.
//
// A Parker suspends a goroutine while a 64-bit cursor still holds the value
// the goroutine last observed, and wakes one such goroutine after the
// cursor's owner publishes a new value. Wait may return spuriously; callers
// always re-read the cursor and loop.
//
// The writer must store the new cursor value before calling Wake. Given
// that ordering, no backend loses a wakeup: a waiter either observes the
// new value before sleeping or is asleep when Wake runs.
package park

import "code.hybscloud.com/atomix"

// Parker is a wait/notify channel keyed on a cursor word.
type Parker interface {
	// Wait blocks while word holds seen. It may return early.
	Wait(word *atomix.Uint64, seen uint64)

	// Wake unblocks at most one goroutine waiting on word.
	Wake(word *atomix.Uint64)
}
