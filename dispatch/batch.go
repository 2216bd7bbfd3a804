// SPDX-License-Identifier: MIT

package dispatch

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ProcessBatch evaluates independent requests concurrently and returns their
// responses in input order.
//
// Implementation:
//   - Stage 1: resolve batch options (workers default to NumCPU).
//   - Stage 2: schedule one task per request on an errgroup bounded by SetLimit.
//     Scheduling stops as soon as ctx is done.
//   - Stage 3: wait for started tasks; requests never scheduled get a failed
//     response carrying the context error.
//
// Behavior highlights:
//   - Requests have no ordering dependency; only the output slice is ordered.
//   - A started request always runs to completion (the engine has no
//     cancellation points).
//
// Returns ctx.Err() when the batch was cut short, nil otherwise.
func (d *Dispatcher) ProcessBatch(ctx context.Context, reqs []Request, opts ...BatchOption) ([]Response, error) {
	cfg := gatherBatch(opts...)
	out := make([]Response, len(reqs))
	total := len(reqs)

	var (
		g    errgroup.Group
		mu   sync.Mutex // serializes progress callbacks
		done int
	)
	g.SetLimit(cfg.workers)

	scheduled := 0
	for idx := range reqs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			out[idx] = d.Process(reqs[idx])
			if cfg.progress != nil {
				mu.Lock()
				done++
				cfg.progress(done, total)
				mu.Unlock()
			}
			return nil
		})
		scheduled++
	}
	_ = g.Wait() // tasks never return errors

	err := ctx.Err()
	if scheduled < total {
		if err == nil {
			err = context.Canceled
		}
		for idx := scheduled; idx < total; idx++ {
			out[idx] = failed(d.taskID(reqs[idx]), err.Error())
		}
		d.log.Printf("batch interrupted: %d of %d requests not scheduled: %v", total-scheduled, total, err)
		return out, err
	}

	return out, nil
}
