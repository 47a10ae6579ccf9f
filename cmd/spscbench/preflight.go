// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"code.hybscloud.com/spsc"
	"code.hybscloud.com/spsc/internal/bench"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var preflightCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Run single-threaded sanity checks on every queue kind",
	RunE:  runPreflight,
}

func init() {
	preflightCmd.Flags().Int("capacity", 512, "queue capacity (power of 2)")
}

func runPreflight(cmd *cobra.Command, args []string) error {
	capacity, err := cmd.Flags().GetInt("capacity")
	if err != nil {
		return err
	}
	for _, kind := range bench.Kinds {
		if kind == bench.KindSharded {
			continue
		}
		if err := preflightKind(kind, capacity); err != nil {
			return err
		}
		logger.Info("preflight passed", zap.String("kind", string(kind)), zap.Int("capacity", capacity))
		fmt.Fprintf(cmd.OutOrStdout(), "%s: passed preflight checks\n", kind)
	}
	return nil
}

func preflightKind(kind bench.Kind, capacity int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", kind, r)
		}
	}()
	var q spsc.FIFO[uint64]
	switch kind {
	case bench.KindUnpadded:
		q = spsc.Build[uint64](spsc.New(capacity).Unpadded())
	case bench.KindLocked:
		q = spsc.NewLocked[uint64](capacity)
	default:
		q = spsc.NewQueue[uint64](capacity)
	}
	defer q.Close()
	if err := bench.Preflight(q); err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	return nil
}
