// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package affinity pins the calling OS thread to one logical CPU.
//
// Callers lock the goroutine to its thread first with runtime.LockOSThread;
// pinning an unlocked goroutine pins whatever thread it happens to run on.
package affinity

import "errors"

// ErrUnsupported is returned by Pin where thread affinity is unavailable.
var ErrUnsupported = errors.New("affinity: not supported on this platform")

// Auto asks the caller to leave the thread unpinned.
const Auto = -1
