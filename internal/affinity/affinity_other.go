// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package affinity

// Pin reports ErrUnsupported for any cpu other than Auto.
func Pin(cpu int) error {
	if cpu == Auto {
		return nil
	}
	return ErrUnsupported
}

// Current reports ErrUnsupported.
func Current() ([]int, error) {
	return nil, ErrUnsupported
}
