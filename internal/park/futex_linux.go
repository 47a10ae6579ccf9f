// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package park

import (
	"unsafe"

	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
	"golang.org/x/sys/unix"
)

const (
	futexWait    = 0
	futexWake    = 1
	futexPrivate = 128
)

// Futex is the Linux [Parker]. It waits on the low 32 bits of the cursor
// with futex(2), so the kernel performs the "still equal" check and the
// sleep atomically.
//
// Comparing only the low half is sound for queue cursors: while one side
// sleeps the other can advance its cursor by at most the queue capacity,
// far below 2^32.
type Futex struct{}

// New returns the platform's preferred Parker.
func New() Parker {
	return Futex{}
}

// Wait blocks while the low word of word equals the low word of seen.
func (Futex) Wait(word *atomix.Uint64, seen uint64) {
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX, uintptr(lowWord(word)), futexWait|futexPrivate, uintptr(uint32(seen)), 0, 0, 0)
}

// Wake wakes at most one goroutine waiting on word.
func (Futex) Wake(word *atomix.Uint64) {
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX, uintptr(lowWord(word)), futexWake|futexPrivate, 1, 0, 0, 0)
}

// lowWord returns the address of the least significant 32 bits of word.
// atomix.Uint64 is a bare 8-byte value, so its address is the value's.
func lowWord(word *atomix.Uint64) unsafe.Pointer {
	p := unsafe.Pointer(word)
	if cpu.IsBigEndian {
		p = unsafe.Add(p, 4)
	}
	return p
}
