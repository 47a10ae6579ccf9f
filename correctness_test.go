// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc_test

import (
	"fmt"
	"runtime"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"code.hybscloud.com/spsc"
)

// mode selects which entry point pair a test goroutine uses.
type mode int

const (
	modeTry mode = iota
	modeSpin
	modeWait
)

func (m mode) String() string {
	switch m {
	case modeTry:
		return "Try"
	case modeSpin:
		return "Spin"
	default:
		return "Wait"
	}
}

// produce sends 1..n.
func produce(q *spsc.Queue[uint64], m mode, n uint64) {
	sw := spin.Wait{}
	for i := uint64(1); i <= n; i++ {
		v := i
		switch m {
		case modeTry:
			for q.Enqueue(&v) != nil {
				sw.Once()
			}
			sw.Reset()
		case modeSpin:
			q.EnqueueSpin(&v)
		case modeWait:
			q.EnqueueWait(&v)
		}
	}
}

// consume receives n values and returns the first out-of-sequence value
// and its expected value, or (0, 0) if the sequence was exactly 1..n.
// Every observed Len is checked against [0, Cap()].
func consume(q *spsc.Queue[uint64], m mode, n uint64, badLen *atomix.Int64) (got, want uint64) {
	sw := spin.Wait{}
	for i := uint64(1); i <= n; i++ {
		var v uint64
		switch m {
		case modeTry:
			for {
				var err error
				if v, err = q.Dequeue(); err == nil {
					break
				}
				sw.Once()
			}
			sw.Reset()
		case modeSpin:
			v = q.DequeueSpin()
		case modeWait:
			v = q.DequeueWait()
		}
		if v != i {
			return v, i
		}
		if i&1023 == 0 {
			if l := q.Len(); l < 0 || l > q.Cap() {
				badLen.Store(int64(l))
			}
		}
	}
	return 0, 0
}

// runSequence pushes 1..n through q from one goroutine while another pops
// and verifies the exact sequence, then checks quiescence.
func runSequence(t *testing.T, q *spsc.Queue[uint64], prod, cons mode, n uint64) {
	t.Helper()
	var badLen atomix.Int64
	type mismatch struct{ got, want uint64 }
	res := make(chan mismatch, 1)

	go produce(q, prod, n)
	go func() {
		got, want := consume(q, cons, n, &badLen)
		res <- mismatch{got, want}
	}()

	select {
	case r := <-res:
		if r.want != 0 {
			t.Fatalf("sequence broken: got %d, want %d", r.got, r.want)
		}
	case <-time.After(2 * time.Minute):
		t.Fatalf("timeout: Len=%d", q.Len())
	}

	if l := badLen.Load(); l != 0 {
		t.Fatalf("Len out of bounds: %d", l)
	}
	// The producer finished before the consumer saw n.
	if !q.Empty() || q.Len() != 0 {
		t.Fatalf("after %d matched pairs: Len=%d Empty=%v", n, q.Len(), q.Empty())
	}
	if _, err := q.Dequeue(); !spsc.IsWouldBlock(err) {
		t.Fatalf("Dequeue after quiescence: got %v, want ErrWouldBlock", err)
	}
}

// =============================================================================
// Concurrent Sequence Tests
// =============================================================================

// TestStressSequence is the main no-loss/no-duplication/no-reordering check:
// ten million integers through a 512-slot queue.
func TestStressSequence(t *testing.T) {
	if spsc.RaceEnabled {
		t.Skip("skip: slot handoff through cursor publication is invisible to the race detector")
	}
	n := uint64(10_000_000)
	if testing.Short() {
		n = 200_000
	}

	for _, m := range []mode{modeTry, modeSpin} {
		t.Run(m.String(), func(t *testing.T) {
			q := spsc.NewQueue[uint64](512)
			defer q.Close()
			runSequence(t, q, m, m, n)
		})
	}
}

// TestMixedModes combines every producer mode with every consumer mode
// and every layout and wake backend.
func TestMixedModes(t *testing.T) {
	if spsc.RaceEnabled {
		t.Skip("skip: slot handoff through cursor publication is invisible to the race detector")
	}
	n := uint64(1_000_000)
	if testing.Short() {
		n = 50_000
	}

	builders := []struct {
		name string
		b    func() *spsc.Builder
	}{
		{"Padded", func() *spsc.Builder { return spsc.New(512) }},
		{"Unpadded", func() *spsc.Builder { return spsc.New(512).Unpadded() }},
		{"CondWake", func() *spsc.Builder { return spsc.New(512).CondWake() }},
		{"Small", func() *spsc.Builder { return spsc.New(2) }},
	}
	modes := []mode{modeTry, modeSpin, modeWait}

	for _, bd := range builders {
		for _, prod := range modes {
			for _, cons := range modes {
				name := fmt.Sprintf("%s/%v-%v", bd.name, prod, cons)
				t.Run(name, func(t *testing.T) {
					q := spsc.Build[uint64](bd.b())
					defer q.Close()
					runSequence(t, q, prod, cons, n)
				})
			}
		}
	}
}

// TestWaitSingleProc runs wake-on-write with one P, so every boundary
// forces a real park and wake instead of the other side racing ahead.
func TestWaitSingleProc(t *testing.T) {
	if spsc.RaceEnabled {
		t.Skip("skip: slot handoff through cursor publication is invisible to the race detector")
	}
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(1))

	n := uint64(200_000)
	if testing.Short() {
		n = 20_000
	}
	for _, b := range []*spsc.Builder{spsc.New(4), spsc.New(4).CondWake()} {
		q := spsc.Build[uint64](b)
		runSequence(t, q, modeWait, modeWait, n)
		q.Close()
	}
}

// TestWaitParksAndWakes checks both directions of wake-on-write explicitly:
// a consumer parked on an empty queue and a producer parked on a full one.
func TestWaitParksAndWakes(t *testing.T) {
	for _, b := range []*spsc.Builder{spsc.New(2), spsc.New(2).CondWake()} {
		q := spsc.Build[int](b)

		// Consumer parks on empty, a plain Enqueue wakes it.
		got := make(chan int, 1)
		go func() { got <- q.DequeueWait() }()
		time.Sleep(20 * time.Millisecond)
		v := 42
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
		select {
		case x := <-got:
			if x != 42 {
				t.Fatalf("DequeueWait: got %d, want 42", x)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("consumer was not woken")
		}

		// Producer parks on full, a plain Dequeue wakes it.
		for i := range 2 {
			_ = q.Enqueue(&i)
		}
		done := make(chan struct{})
		go func() {
			v := 7
			q.EnqueueWait(&v)
			close(done)
		}()
		time.Sleep(20 * time.Millisecond)
		select {
		case <-done:
			t.Fatal("EnqueueWait returned on a full queue")
		default:
		}
		if x, err := q.Dequeue(); err != nil || x != 0 {
			t.Fatalf("Dequeue: got (%d, %v), want (0, nil)", x, err)
		}
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("producer was not woken")
		}
		for _, want := range []int{1, 7} {
			if x := q.DequeueWait(); x != want {
				t.Fatalf("DequeueWait: got %d, want %d", x, want)
			}
		}
		q.Close()
	}
}

// TestLockedSequence runs the sequence check against the mutex baseline.
// Locked is race-detector clean, so this also runs under -race.
func TestLockedSequence(t *testing.T) {
	n := 1_000_000
	if testing.Short() || spsc.RaceEnabled {
		n = 20_000
	}
	q := spsc.NewLocked[int](512)
	defer q.Close()

	go func() {
		for i := 1; i <= n; i++ {
			q.EnqueueWait(&i)
		}
	}()
	done := make(chan error, 1)
	go func() {
		for i := 1; i <= n; i++ {
			if v := q.DequeueWait(); v != i {
				done <- fmt.Errorf("got %d, want %d", v, i)
				return
			}
		}
		done <- nil
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Minute):
		t.Fatal("timeout")
	}
	if !q.Empty() {
		t.Fatalf("Len after run: %d", q.Len())
	}
}

// TestTryBoundsUnderContention checks Len against the non-blocking calls
// while the other side is active: room seen by the producer or data seen
// by the consumer must still be there when it calls Enqueue or Dequeue.
func TestTryBoundsUnderContention(t *testing.T) {
	if spsc.RaceEnabled {
		t.Skip("skip: slot handoff through cursor publication is invisible to the race detector")
	}
	const capacity = 8
	n := 500_000
	if testing.Short() {
		n = 20_000
	}
	q := spsc.NewQueue[int](capacity)
	defer q.Close()

	var violations atomix.Int64
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; {
			// From the producer, Len can only overstate; if it reports
			// not full, the slot is really there.
			if q.Len() < capacity {
				if err := q.Enqueue(&i); err != nil {
					violations.Add(1)
					return
				}
				i++
				continue
			}
			runtime.Gosched()
		}
	}()
	for i := 0; i < n; {
		// From the consumer, Len can only understate; if it reports
		// non-empty, the element is really there.
		if q.Len() > 0 {
			v, err := q.Dequeue()
			if err != nil || v != i {
				t.Fatalf("Dequeue(%d): got (%d, %v)", i, v, err)
			}
			i++
			continue
		}
		runtime.Gosched()
	}
	<-done
	if violations.Load() != 0 {
		t.Fatal("Enqueue failed although Len reported room")
	}
}

// TestWaitCapacityOne forces a park on nearly every element: with one slot
// each side waits for the other after every operation, so a lost wakeup
// deadlocks the run.
func TestWaitCapacityOne(t *testing.T) {
	if spsc.RaceEnabled {
		t.Skip("skip: slot handoff through cursor publication is invisible to the race detector")
	}
	n := uint64(500_000)
	if testing.Short() {
		n = 20_000
	}
	for name, b := range map[string]*spsc.Builder{
		"Default":  spsc.New(1),
		"CondWake": spsc.New(1).CondWake(),
		"Unpadded": spsc.New(1).Unpadded(),
	} {
		t.Run(name, func(t *testing.T) {
			q := spsc.Build[uint64](b)
			defer q.Close()
			runSequence(t, q, modeWait, modeWait, n)
		})
	}
}

// payload spans a full cache line; every word is derived from seq so a
// slot read before the producer's writes landed is detected.
type payload struct {
	seq   uint64
	words [7]uint64
}

func makePayload(seq uint64) payload {
	p := payload{seq: seq}
	for i := range p.words {
		p.words[i] = seq*uint64(i+3) ^ 0x9e3779b97f4a7c15
	}
	return p
}

func (p payload) intact() bool {
	return p == makePayload(p.seq)
}

// TestStressPayloadIntegrity checks that the element seen by the consumer
// is the one fully written by the producer, in every mode.
func TestStressPayloadIntegrity(t *testing.T) {
	if spsc.RaceEnabled {
		t.Skip("skip: slot handoff through cursor publication is invisible to the race detector")
	}
	n := uint64(2_000_000)
	if testing.Short() {
		n = 50_000
	}
	for _, m := range []mode{modeTry, modeSpin, modeWait} {
		t.Run(m.String(), func(t *testing.T) {
			q := spsc.NewQueue[payload](64)
			defer q.Close()

			go func() {
				sw := spin.Wait{}
				for i := uint64(1); i <= n; i++ {
					p := makePayload(i)
					switch m {
					case modeTry:
						for q.Enqueue(&p) != nil {
							sw.Once()
						}
					case modeSpin:
						q.EnqueueSpin(&p)
					default:
						q.EnqueueWait(&p)
					}
				}
			}()

			res := make(chan error, 1)
			go func() {
				sw := spin.Wait{}
				var bad error
				for i := uint64(1); i <= n; i++ {
					var p payload
					switch m {
					case modeTry:
						for {
							var err error
							if p, err = q.Dequeue(); err == nil {
								break
							}
							sw.Once()
						}
					case modeSpin:
						p = q.DequeueSpin()
					default:
						p = q.DequeueWait()
					}
					if bad == nil && (p.seq != i || !p.intact()) {
						bad = fmt.Errorf("element %d: got seq %d, intact %v", i, p.seq, p.intact())
					}
				}
				res <- bad
			}()

			select {
			case err := <-res:
				if err != nil {
					t.Fatal(err)
				}
			case <-time.After(2 * time.Minute):
				t.Fatalf("timeout: Len=%d", q.Len())
			}
		})
	}
}
