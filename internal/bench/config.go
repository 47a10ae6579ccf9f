// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bench measures producer-to-consumer throughput of the queues.
//
// A run pushes the integers 1..N from one goroutine to another through a
// fresh queue and, for every queue that hands values back, checks that
// they arrive exactly once and in order. Each side locks its goroutine to
// an OS thread and may pin that thread to a CPU, so that runs can compare
// same-core, same-cache and cross-socket placement.
package bench

import (
	"errors"
	"fmt"

	"code.hybscloud.com/spsc/internal/affinity"
)

// Kind names the queue implementation under test.
type Kind string

const (
	// KindLockFree is spsc.Queue with padded cursor lanes.
	KindLockFree Kind = "lockfree"
	// KindUnpadded is spsc.Queue with both lanes on one cache line.
	KindUnpadded Kind = "unpadded"
	// KindLocked is the mutex and condition variable baseline.
	KindLocked Kind = "locked"
	// KindSharded is go-lock-free-ring's ShardedRing with one shard.
	// It has no blocking entry points, so only the try mode applies.
	KindSharded Kind = "sharded"
)

// Kinds lists every supported Kind.
var Kinds = []Kind{KindLockFree, KindUnpadded, KindLocked, KindSharded}

// Mode selects the entry point pair both sides use.
type Mode string

const (
	// ModeTry retries the non-blocking calls with iox.Backoff.
	ModeTry Mode = "try"
	// ModeSpin uses EnqueueSpin and DequeueSpin.
	ModeSpin Mode = "spin"
	// ModeWait uses EnqueueWait and DequeueWait.
	ModeWait Mode = "wait"
)

// Modes lists every supported Mode.
var Modes = []Mode{ModeTry, ModeSpin, ModeWait}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("bench: invalid config")

// Config describes one run.
//
// Only ModeTry observes context cancellation while a side is blocked at a
// boundary. Spin and wait runs, once started, complete.
type Config struct {
	Kind        Kind   `mapstructure:"kind"`
	Mode        Mode   `mapstructure:"mode"`
	Capacity    int    `mapstructure:"capacity"`
	Count       uint64 `mapstructure:"count"`
	Repeat      int    `mapstructure:"repeat"`
	ProducerCPU int    `mapstructure:"producer_cpu"`
	ConsumerCPU int    `mapstructure:"consumer_cpu"`
	CondWake    bool   `mapstructure:"cond_wake"`
}

// DefaultConfig returns the reference workload: 100M integers through a
// 512-slot queue, twice, threads unpinned.
func DefaultConfig() Config {
	return Config{
		Kind:        KindLockFree,
		Mode:        ModeWait,
		Capacity:    512,
		Count:       100_000_000,
		Repeat:      2,
		ProducerCPU: affinity.Auto,
		ConsumerCPU: affinity.Auto,
	}
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	switch c.Kind {
	case KindLockFree, KindUnpadded, KindLocked, KindSharded:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidConfig, c.Kind)
	}
	switch c.Mode {
	case ModeTry, ModeSpin, ModeWait:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	if c.Kind == KindLocked && c.Mode == ModeSpin {
		return fmt.Errorf("%w: kind %q has no spin entry points", ErrInvalidConfig, c.Kind)
	}
	if c.Kind == KindSharded && c.Mode != ModeTry {
		return fmt.Errorf("%w: kind %q supports only mode %q", ErrInvalidConfig, c.Kind, ModeTry)
	}
	if c.Capacity < 1 || c.Capacity&(c.Capacity-1) != 0 {
		return fmt.Errorf("%w: capacity %d is not a positive power of 2", ErrInvalidConfig, c.Capacity)
	}
	if c.Count == 0 {
		return fmt.Errorf("%w: count must be positive", ErrInvalidConfig)
	}
	if c.Repeat < 1 {
		return fmt.Errorf("%w: repeat must be positive", ErrInvalidConfig)
	}
	if c.ProducerCPU < affinity.Auto || c.ConsumerCPU < affinity.Auto {
		return fmt.Errorf("%w: cpu must be %d (unpinned) or a CPU index", ErrInvalidConfig, affinity.Auto)
	}
	return nil
}
