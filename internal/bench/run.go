// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spsc"
	"code.hybscloud.com/spsc/internal/affinity"
	ring "github.com/randomizedcoder/go-lock-free-ring"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrSequence is returned when the consumer observes a value out of order,
// duplicated or missing.
var ErrSequence = errors.New("bench: sequence mismatch")

// ErrNotDrained is returned when the queue still holds elements after both
// sides finished.
var ErrNotDrained = errors.New("bench: queue not empty after run")

// cancelCheck is how many boundary retries pass between context checks.
const cancelCheck = 1024

// pair is one queue with its producer and consumer loops.
type pair interface {
	produce(ctx context.Context, n uint64) error
	consume(ctx context.Context, n uint64) error
	drained() bool
	verified() bool
	close()
}

// Run pushes 1..cfg.Count through a fresh queue of cfg.Kind and reports
// the throughput. The clock starts once both goroutines are pinned and
// stops when both have finished.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	logger = logger.With(
		zap.String("kind", string(cfg.Kind)),
		zap.String("mode", string(cfg.Mode)),
		zap.Int("capacity", cfg.Capacity),
	)

	p, err := newPair(cfg)
	if err != nil {
		return Result{}, err
	}
	defer p.close()

	g, gctx := errgroup.WithContext(ctx)
	start := make(chan struct{})
	var ready sync.WaitGroup
	ready.Add(2)

	side := func(name string, cpu int, loop func(context.Context, uint64) error) func() error {
		return func() error {
			// Exiting while locked retires the pinned thread with the goroutine.
			runtime.LockOSThread()
			if err := affinity.Pin(cpu); err != nil {
				logger.Warn("running unpinned", zap.String("side", name), zap.Int("cpu", cpu), zap.Error(err))
			}
			ready.Done()
			<-start
			return loop(gctx, cfg.Count)
		}
	}
	g.Go(side("producer", cfg.ProducerCPU, p.produce))
	g.Go(side("consumer", cfg.ConsumerCPU, p.consume))

	ready.Wait()
	began := time.Now()
	close(start)
	err = g.Wait()
	elapsed := time.Since(began)
	if err != nil {
		return Result{}, err
	}
	if !p.drained() {
		return Result{}, ErrNotDrained
	}

	res := Result{
		Kind:        cfg.Kind,
		Mode:        cfg.Mode,
		Capacity:    cfg.Capacity,
		Count:       cfg.Count,
		ProducerCPU: cfg.ProducerCPU,
		ConsumerCPU: cfg.ConsumerCPU,
		Started:     began,
		Elapsed:     elapsed,
		OpsPerSec:   float64(cfg.Count) / elapsed.Seconds(),
		Verified:    p.verified(),
	}
	logger.Debug("run finished", zap.Duration("elapsed", elapsed), zap.Float64("ops_per_sec", res.OpsPerSec))
	return res, nil
}

func newPair(cfg Config) (pair, error) {
	if cfg.Kind == KindSharded {
		return newShardedPair(cfg.Capacity)
	}
	b := spsc.New(cfg.Capacity)
	if cfg.CondWake {
		b.CondWake()
	}
	var q spsc.FIFO[uint64]
	switch cfg.Kind {
	case KindUnpadded:
		q = spsc.Build[uint64](b.Unpadded())
	case KindLocked:
		q = spsc.BuildLocked[uint64](b)
	default:
		q = spsc.Build[uint64](b)
	}
	if cfg.Mode == ModeSpin {
		if _, ok := q.(spsc.Spinner[uint64]); !ok {
			q.Close()
			return nil, fmt.Errorf("%w: kind %q has no spin entry points", ErrInvalidConfig, cfg.Kind)
		}
	}
	return &fifoPair{q: q, mode: cfg.Mode}, nil
}

// fifoPair drives any spsc.FIFO in one of the three modes.
type fifoPair struct {
	q    spsc.FIFO[uint64]
	mode Mode
}

func (p *fifoPair) produce(ctx context.Context, n uint64) error {
	switch p.mode {
	case ModeSpin:
		s := p.q.(spsc.Spinner[uint64])
		for i := uint64(1); i <= n; i++ {
			s.EnqueueSpin(&i)
		}
	case ModeWait:
		for i := uint64(1); i <= n; i++ {
			p.q.EnqueueWait(&i)
		}
	default:
		backoff := iox.Backoff{}
		retries := 0
		for i := uint64(1); i <= n; {
			if p.q.Enqueue(&i) == nil {
				i++
				backoff.Reset()
				continue
			}
			if retries++; retries%cancelCheck == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			backoff.Wait()
		}
	}
	return nil
}

// consume always takes all n elements so that a parked producer is never
// stranded; the first mismatch is reported afterwards.
func (p *fifoPair) consume(ctx context.Context, n uint64) error {
	var bad error
	check := func(i, v uint64) {
		if v != i && bad == nil {
			bad = fmt.Errorf("%w: got %d, want %d", ErrSequence, v, i)
		}
	}
	switch p.mode {
	case ModeSpin:
		s := p.q.(spsc.Spinner[uint64])
		for i := uint64(1); i <= n; i++ {
			check(i, s.DequeueSpin())
		}
	case ModeWait:
		for i := uint64(1); i <= n; i++ {
			check(i, p.q.DequeueWait())
		}
	default:
		backoff := iox.Backoff{}
		retries := 0
		for i := uint64(1); i <= n; {
			v, err := p.q.Dequeue()
			if err == nil {
				check(i, v)
				i++
				backoff.Reset()
				continue
			}
			if retries++; retries%cancelCheck == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			backoff.Wait()
		}
	}
	return bad
}

func (p *fifoPair) drained() bool  { return p.q.Empty() }
func (p *fifoPair) verified() bool { return true }
func (p *fifoPair) close()         { p.q.Close() }

// shardedPair drives a single-shard go-lock-free-ring. With one shard the
// ring is FIFO, so its reads are checked against 1..n like any other kind.
type shardedPair struct {
	write func(v uint64) bool
	read  func() (uint64, bool)
}

func newShardedPair(capacity int) (*shardedPair, error) {
	r, err := ring.NewShardedRing(uint64(capacity), 1)
	if err != nil {
		return nil, fmt.Errorf("bench: sharded ring: %w", err)
	}
	return &shardedPair{
		write: func(v uint64) bool { return r.Write(0, v) },
		read: func() (uint64, bool) {
			v, ok := r.TryRead()
			if !ok {
				return 0, false
			}
			u, ok := v.(uint64)
			return u, ok
		},
	}, nil
}

func (p *shardedPair) produce(ctx context.Context, n uint64) error {
	backoff := iox.Backoff{}
	retries := 0
	for i := uint64(1); i <= n; {
		if p.write(i) {
			i++
			backoff.Reset()
			continue
		}
		if retries++; retries%cancelCheck == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		backoff.Wait()
	}
	return nil
}

func (p *shardedPair) consume(ctx context.Context, n uint64) error {
	var bad error
	backoff := iox.Backoff{}
	retries := 0
	for i := uint64(1); i <= n; {
		v, ok := p.read()
		if ok {
			if v != i && bad == nil {
				bad = fmt.Errorf("%w: got %d, want %d", ErrSequence, v, i)
			}
			i++
			backoff.Reset()
			continue
		}
		if retries++; retries%cancelCheck == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		backoff.Wait()
	}
	return bad
}

func (p *shardedPair) drained() bool {
	_, ok := p.read()
	return !ok
}

func (p *shardedPair) verified() bool { return true }
func (p *shardedPair) close()         {}
