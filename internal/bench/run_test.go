// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench_test

import (
	"context"
	"errors"
	"testing"

	"code.hybscloud.com/spsc"
	"code.hybscloud.com/spsc/internal/affinity"
	"code.hybscloud.com/spsc/internal/bench"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func smallConfig(kind bench.Kind, mode bench.Mode) bench.Config {
	c := bench.DefaultConfig()
	c.Kind, c.Mode = kind, mode
	c.Capacity = 64
	c.Count = 50_000
	c.Repeat = 1
	return c
}

func TestRunAllCombinations(t *testing.T) {
	for _, kind := range bench.Kinds {
		for _, mode := range bench.Modes {
			cfg := smallConfig(kind, mode)
			if cfg.Validate() != nil {
				continue
			}
			if spsc.RaceEnabled && kind != bench.KindLocked {
				continue
			}
			t.Run(string(kind)+"/"+string(mode), func(t *testing.T) {
				res, err := bench.Run(context.Background(), cfg, zap.NewNop())
				if err != nil {
					t.Fatalf("Run: %v", err)
				}
				if res.Count != cfg.Count || res.Kind != kind || res.Mode != mode {
					t.Fatalf("Result: got %+v", res)
				}
				if res.Elapsed <= 0 || res.OpsPerSec <= 0 {
					t.Fatalf("Result timing: elapsed %v, ops/s %v", res.Elapsed, res.OpsPerSec)
				}
				if !res.Verified {
					t.Fatal("Verified: got false, want true")
				}
			})
		}
	}
}

func TestRunCondWake(t *testing.T) {
	if spsc.RaceEnabled {
		t.Skip("skip: slot handoff through cursor publication is invisible to the race detector")
	}
	cfg := smallConfig(bench.KindLockFree, bench.ModeWait)
	cfg.CondWake = true
	if _, err := bench.Run(context.Background(), cfg, zap.NewNop()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunPinned(t *testing.T) {
	cpus, err := affinity.Current()
	if err != nil {
		t.Skipf("affinity: %v", err)
	}
	cfg := smallConfig(bench.KindLocked, bench.ModeWait)
	cfg.ProducerCPU = cpus[0]
	cfg.ConsumerCPU = cpus[len(cpus)-1]
	res, err := bench.Run(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ProducerCPU != cpus[0] || res.ConsumerCPU != cpus[len(cpus)-1] {
		t.Fatalf("Result placement: got %d->%d", res.ProducerCPU, res.ConsumerCPU)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := smallConfig(bench.KindLocked, bench.ModeSpin)
	if _, err := bench.Run(context.Background(), cfg, zap.NewNop()); !errors.Is(err, bench.ErrInvalidConfig) {
		t.Fatalf("Run: got %v, want ErrInvalidConfig", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := smallConfig(bench.KindLocked, bench.ModeTry)
	if _, err := bench.Run(ctx, cfg, zap.NewNop()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run: got %v, want context.Canceled", err)
	}
}
