// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command spscbench checks and measures the spsc queues.
//
//	spscbench preflight
//	spscbench run --kind lockfree --mode wait --producer-cpu 2 --consumer-cpu 3
//	spscbench run --kind locked --count 10000000 --json --history runs.db
//	spscbench history --history runs.db --kind lockfree
//
// Every run flag may also be set in a config file (--config) or through
// SPSCBENCH_-prefixed environment variables, e.g. SPSCBENCH_CAPACITY=1024.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
