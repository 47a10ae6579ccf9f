// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// This file contains examples with concurrent producer/consumer goroutines.
// These trigger false positives with Go's race detector because the slot
// handoff is ordered by atomix cursor stores that the detector cannot see.
// The examples are correct; they're excluded from race testing.

package spsc_test

import (
	"fmt"
	"sync"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spsc"
)

// Example_pipeline demonstrates a multi-stage pipeline using SPSC queues.
func Example_pipeline() {
	// Pipeline: Generate → Double → Print
	stage1to2 := spsc.NewQueue[int](8) // Generate → Double
	stage2to3 := spsc.NewQueue[int](8) // Double → Print
	defer stage1to2.Close()
	defer stage2to3.Close()

	var wg sync.WaitGroup
	results := make([]int, 0, 5)

	// Stage 1: Generate numbers 1-5, parking while stage 2 is behind
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 5; i++ {
			v := i
			stage1to2.EnqueueWait(&v)
		}
	}()

	// Stage 2: Double each number
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 5 {
			doubled := stage1to2.DequeueWait() * 2
			stage2to3.EnqueueSpin(&doubled)
		}
	}()

	// Stage 3: Collect results with polling
	wg.Add(1)
	go func() {
		defer wg.Done()
		backoff := iox.Backoff{}
		for len(results) < 5 {
			v, err := stage2to3.Dequeue()
			if err != nil {
				backoff.Wait()
				continue
			}
			backoff.Reset()
			results = append(results, v)
		}
	}()

	wg.Wait()
	for _, v := range results {
		fmt.Println(v)
	}

	// Output:
	// 2
	// 4
	// 6
	// 8
	// 10
}

// Example_deadline demonstrates a bounded wait: the non-blocking call is
// polled until a deadline instead of parking indefinitely.
func Example_deadline() {
	q := spsc.NewQueue[string](4)
	defer q.Close()

	go func() {
		time.Sleep(5 * time.Millisecond)
		msg := "ready"
		q.EnqueueWait(&msg)
	}()

	recv := func(d time.Duration) (string, bool) {
		deadline := time.Now().Add(d)
		backoff := iox.Backoff{}
		for {
			v, err := q.Dequeue()
			if err == nil {
				return v, true
			}
			if time.Now().After(deadline) {
				return "", false
			}
			backoff.Wait()
		}
	}

	if v, ok := recv(5 * time.Second); ok {
		fmt.Println("got", v)
	}
	if _, ok := recv(time.Millisecond); !ok {
		fmt.Println("timed out")
	}

	// Output:
	// got ready
	// timed out
}
