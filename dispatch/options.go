// SPDX-License-Identifier: MIT

package dispatch

import (
	"io"
	"log"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/mlcompute/matrix"
)

// DeviceInfo is reported by Status; all arithmetic runs on the host CPU.
const DeviceInfo = "cpu/float32 (go)"

// TaskIDPrefix prefixes generated task ids ("matrix-<uuid>").
const TaskIDPrefix = "matrix-"

const (
	panicCapacityInvalid = "dispatch: WithCapacity: capacity must be > 0"
	panicWorkersInvalid  = "dispatch: WithWorkers: workers must be > 0"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithEngine sets the engine used to evaluate requests.
func WithEngine(e *matrix.Engine) Option {
	return func(d *Dispatcher) {
		if e != nil {
			d.engine = e
		}
	}
}

// WithLogger routes dispatcher logs to l. The default discards them.
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// WithClock overrides the time source used for execution timing.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// WithCapacity sets the nominal concurrent capacity used to compute load.
// Panics when n <= 0.
func WithCapacity(n int) Option {
	if n <= 0 {
		panic(panicCapacityInvalid)
	}

	return func(d *Dispatcher) { d.capacity = n }
}

// WithTaskIDs assigns "matrix-<uuid>" to requests that arrive without a task id.
// Without it, an empty task id is echoed back as-is.
func WithTaskIDs() Option {
	return func(d *Dispatcher) {
		d.newTaskID = func() string { return TaskIDPrefix + uuid.NewString() }
	}
}

func defaultDispatcher() *Dispatcher {
	return &Dispatcher{
		engine:   matrix.NewEngine(),
		log:      log.New(io.Discard, "", 0),
		now:      time.Now,
		capacity: runtime.NumCPU(),
	}
}

// ---------- batch options ----------

// BatchOption configures ProcessBatch.
type BatchOption func(*batchConfig)

type batchConfig struct {
	workers  int
	progress func(done, total int)
}

// WithWorkers bounds the number of requests evaluated concurrently.
// Panics when n <= 0.
func WithWorkers(n int) BatchOption {
	if n <= 0 {
		panic(panicWorkersInvalid)
	}

	return func(c *batchConfig) { c.workers = n }
}

// WithProgress registers fn to be called after each request finishes.
// Calls are serialized; fn need not be safe for concurrent use.
func WithProgress(fn func(done, total int)) BatchOption {
	return func(c *batchConfig) { c.progress = fn }
}

func gatherBatch(opts ...BatchOption) batchConfig {
	c := batchConfig{workers: runtime.NumCPU()}
	for _, fn := range opts {
		if fn != nil {
			fn(&c)
		}
	}

	return c
}
