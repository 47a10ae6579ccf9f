// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import (
	"unsafe"

	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// lane is one half of the cursor pair.
//
// pos is advanced only by the lane's owner (push: producer, pop: consumer)
// and read by the other side. cached is the owner's private snapshot of the
// opposite lane's pos; it lives next to pos so that refreshing it touches
// a line the owner already holds. parked counts goroutines of the other
// side sleeping until pos moves. Both the owner and the sleepers access it
// only through acquire-release read-modify-writes.
type lane struct {
	pos    atomix.Uint64
	cached uint64
	parked atomix.Int64
}

const cacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})

// padLane fills the rest of a lane's cache line.
type padLane [cacheLineSize - unsafe.Sizeof(lane{})%cacheLineSize]byte

// paddedLanes gives each lane a cache line of its own once its base is
// line-aligned.
type paddedLanes struct {
	push lane
	_    padLane
	pop  lane
	_    padLane
}

// packedLanes puts both lanes on one line once its base is line-aligned.
// Correct, but producer and consumer stores invalidate each other's line.
type packedLanes struct {
	push lane
	pop  lane
}

// newLanes allocates the cursor pair in the requested layout, starting on
// a cache line boundary.
func newLanes(padded bool) (push, pop *lane) {
	if padded {
		l := alignedNew[paddedLanes]()
		return &l.push, &l.pop
	}
	l := alignedNew[packedLanes]()
	return &l.push, &l.pop
}

// alignedNew returns a zeroed L whose address is a multiple of
// cacheLineSize. Size classes do not guarantee this, so the object is
// carved out of a byte buffer one line larger than L. L must not contain
// pointers; the interior pointer keeps the buffer alive.
func alignedNew[L any]() *L {
	var zero L
	buf := make([]byte, unsafe.Sizeof(zero)+cacheLineSize)
	base := unsafe.Pointer(unsafe.SliceData(buf))
	off := (cacheLineSize - uintptr(base)%cacheLineSize) % cacheLineSize
	return (*L)(unsafe.Add(base, off))
}
