// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package park

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// Cond is the portable [Parker] built on a mutex and condition variable.
//
// One Cond serves one cursor word. The lock is only taken on the slow path:
// by a waiter about to sleep and by a writer that knows someone sleeps.
type Cond struct {
	mu   sync.Mutex
	cond sync.Cond
}

// NewCond returns a ready-to-use Cond.
func NewCond() *Cond {
	c := &Cond{}
	c.cond.L = &c.mu
	return c
}

// Wait blocks while word holds seen.
func (c *Cond) Wait(word *atomix.Uint64, seen uint64) {
	c.mu.Lock()
	for word.LoadAcquire() == seen {
		c.cond.Wait()
	}
	c.mu.Unlock()
}

// Wake signals one waiter. Acquiring the lock first orders the caller's
// earlier cursor store against a waiter that is between its check and
// its sleep.
func (c *Cond) Wake(*atomix.Uint64) {
	c.mu.Lock()
	c.mu.Unlock()
	c.cond.Signal()
}
