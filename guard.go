// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import "code.hybscloud.com/atomix"

// guard detects two goroutines inside the same side of a queue at once.
// It is only consulted when debugChecks is set; otherwise the calls are
// compiled out and the fields stay zero.
type guard struct {
	producers atomix.Int32
	consumers atomix.Int32
}

func (g *guard) enterProducer() (exit func()) {
	if g.producers.Add(1) != 1 {
		g.producers.Add(-1)
		panic("spsc: concurrent producers on a single-producer queue")
	}
	return func() { g.producers.Add(-1) }
}

func (g *guard) enterConsumer() (exit func()) {
	if g.consumers.Add(1) != 1 {
		g.consumers.Add(-1)
		panic("spsc: concurrent consumers on a single-consumer queue")
	}
	return func() { g.consumers.Add(-1) }
}
