// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package spsc

// RaceEnabled is true when the race detector is active.
// Used by tests to shorten or skip long concurrent runs: element slots are
// handed over through cursor publication, which the detector does not model
// for generic [T] payloads.
const RaceEnabled = true
