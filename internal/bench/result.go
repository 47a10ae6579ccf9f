// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"fmt"
	"time"

	"github.com/sugawarayuuta/sonnet"
)

// Result is the outcome of one Run.
type Result struct {
	Kind        Kind          `json:"kind"`
	Mode        Mode          `json:"mode"`
	Capacity    int           `json:"capacity"`
	Count       uint64        `json:"count"`
	ProducerCPU int           `json:"producer_cpu"`
	ConsumerCPU int           `json:"consumer_cpu"`
	Started     time.Time     `json:"started"`
	Elapsed     time.Duration `json:"elapsed_ns"`
	OpsPerSec   float64       `json:"ops_per_sec"`
	Verified    bool          `json:"verified"`
}

// String formats r as one human-readable line.
func (r Result) String() string {
	check := "verified"
	if !r.Verified {
		check = "unverified"
	}
	return fmt.Sprintf("%s/%s cap=%d cpus=%s: sent %d elements in %s making it %.0f per second (%s)",
		r.Kind, r.Mode, r.Capacity, placement(r.ProducerCPU, r.ConsumerCPU),
		r.Count, r.Elapsed.Round(time.Millisecond), r.OpsPerSec, check)
}

func placement(producer, consumer int) string {
	cpu := func(c int) string {
		if c < 0 {
			return "any"
		}
		return fmt.Sprint(c)
	}
	return cpu(producer) + "->" + cpu(consumer)
}

// MarshalResults encodes results as a JSON array.
func MarshalResults(results []Result) ([]byte, error) {
	if results == nil {
		results = []Result{}
	}
	return sonnet.Marshal(results)
}

// UnmarshalResults decodes a JSON array written by MarshalResults.
func UnmarshalResults(data []byte) ([]Result, error) {
	var results []Result
	if err := sonnet.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("bench: decode results: %w", err)
	}
	return results, nil
}
