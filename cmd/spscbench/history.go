// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"database/sql"
	"errors"
	"fmt"

	"code.hybscloud.com/spsc/internal/bench"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs",
	Long: `History lists runs recorded with "run --history", newest first, and the
best result per mode for the selected kind.`,
	RunE: runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.String("history", "", "SQLite database written by run --history")
	f.String("kind", "", "only show this queue kind")
	f.Int("limit", 20, "maximum number of runs to list")
	historyCmd.MarkFlagRequired("history")
}

func runHistory(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	path, _ := f.GetString("history")
	kind, _ := f.GetString("kind")
	limit, _ := f.GetInt("limit")

	h, err := bench.OpenHistory(path)
	if err != nil {
		return err
	}
	defer h.Close()

	ctx := cmd.Context()
	results, err := h.List(ctx, bench.Kind(kind), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(out, "%s  %s\n", r.Started.Format("2006-01-02 15:04:05"), r)
	}

	if kind == "" {
		return nil
	}
	fmt.Fprintln(out)
	for _, mode := range bench.Modes {
		best, err := h.Best(ctx, bench.Kind(kind), mode)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "best %s: %.0f per second\n", mode, best.OpsPerSec)
	}
	return nil
}
