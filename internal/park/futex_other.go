// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package park

// New returns the platform's preferred Parker.
// Without futex(2) this is the condition variable fallback.
func New() Parker {
	return NewCond()
}
