// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"code.hybscloud.com/spsc/internal/bench"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Measure producer-to-consumer throughput",
	Long: `Run pushes 1..count through a fresh queue, repeat times, and prints one
line per run. Pin the two threads with --producer-cpu and --consumer-cpu
to compare same-core, same-cache and cross-socket placement.`,
	RunE: runRun,
}

// runFlags maps config keys to flag names.
var runFlags = map[string]string{
	"kind":         "kind",
	"mode":         "mode",
	"capacity":     "capacity",
	"count":        "count",
	"repeat":       "repeat",
	"producer_cpu": "producer-cpu",
	"consumer_cpu": "consumer-cpu",
	"cond_wake":    "cond-wake",
	"preflight":    "preflight",
	"json":         "json",
	"history":      "history",
}

func init() {
	d := bench.DefaultConfig()
	f := runCmd.Flags()
	f.String("kind", string(d.Kind), "queue kind: lockfree, unpadded, locked or sharded")
	f.String("mode", string(d.Mode), "entry points: try, spin or wait")
	f.Int("capacity", d.Capacity, "queue capacity (power of 2)")
	f.Uint64("count", d.Count, "elements per run")
	f.Int("repeat", d.Repeat, "number of runs")
	f.Int("producer-cpu", d.ProducerCPU, "CPU to pin the producer to (-1: unpinned)")
	f.Int("consumer-cpu", d.ConsumerCPU, "CPU to pin the consumer to (-1: unpinned)")
	f.Bool("cond-wake", d.CondWake, "use the condition variable wake backend")
	f.Bool("preflight", true, "run preflight checks on the queue kind first")
	f.Bool("json", false, "print results as a JSON array instead of text")
	f.String("history", "", "append results to this SQLite database")

	for key, name := range runFlags {
		viper.BindPFlag(key, f.Lookup(name))
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := bench.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if viper.GetBool("preflight") && cfg.Kind != bench.KindSharded {
		if err := preflightKind(cfg.Kind, cfg.Capacity); err != nil {
			return err
		}
		logger.Info("preflight passed", zap.String("kind", string(cfg.Kind)))
	}

	var history *bench.History
	if path := viper.GetString("history"); path != "" {
		h, err := bench.OpenHistory(path)
		if err != nil {
			return err
		}
		defer h.Close()
		history = h
	}

	out := cmd.OutOrStdout()
	results := make([]bench.Result, 0, cfg.Repeat)
	for i := range cfg.Repeat {
		res, err := bench.Run(ctx, cfg, logger.With(zap.Int("run", i+1)))
		if err != nil {
			return fmt.Errorf("run %d: %w", i+1, err)
		}
		results = append(results, res)
		logger.Info("run complete",
			zap.Int("run", i+1),
			zap.Duration("elapsed", res.Elapsed),
			zap.Float64("ops_per_sec", res.OpsPerSec),
		)
		if history != nil {
			if err := history.Append(ctx, res); err != nil {
				return err
			}
		}
		if !viper.GetBool("json") {
			fmt.Fprintln(out, res)
		}
	}

	if viper.GetBool("json") {
		data, err := bench.MarshalResults(results)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	}
	return nil
}
