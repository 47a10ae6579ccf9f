// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import "code.hybscloud.com/iox"

// ErrWouldBlock is what Enqueue returns on a full queue and Dequeue on an
// empty one. The call left the queue and the caller's element as they were.
//
// It is the same value as [iox.ErrWouldBlock], so code that already
// classifies iox errors handles it unchanged. To wait instead of polling,
// use the Spin or Wait entry points.
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err, or anything it wraps, is ErrWouldBlock.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a boundary signal rather than a fault.
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err is nil or a boundary signal.
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
