// SPDX-License-Identifier: MIT

// Package dispatch wraps the matrix engine with the response envelope:
// timing, status strings and user-facing error messages.
//
// Contract:
//   - A request without MatrixA fails with "Missing matrix A" and zero
//     elapsed time; the engine is not invoked.
//   - Engine success → Status "completed", Result set, elapsed milliseconds.
//   - Engine failure → Status "failed", Result nil, zero elapsed time, and the
//     display string of the matrix error sentinel.
//   - TaskID is threaded through unchanged (unless WithTaskIDs fills an empty one).
//   - A panic inside the engine becomes a failed response ("Internal error
//     while processing the request"); other requests are unaffected.
//
// A Dispatcher is safe for concurrent use; its only mutable state is an
// atomic in-flight counter used for load reporting.
package dispatch

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/mlcompute/matrix"
)

// Dispatcher translates engine results into Response envelopes.
type Dispatcher struct {
	engine    *matrix.Engine
	log       *log.Logger
	now       func() time.Time
	newTaskID func() string // nil ⇒ empty task ids are echoed as-is
	capacity  int
	inflight  atomic.Int64
}

// New returns a Dispatcher configured by opts.
func New(opts ...Option) *Dispatcher {
	d := defaultDispatcher()
	for _, fn := range opts {
		if fn != nil {
			fn(d)
		}
	}

	return d
}

// Process evaluates one request and always returns exactly one Response.
// A panic raised while evaluating is recovered into a failed Response with
// ErrInternal's message; it never escapes to the caller's goroutine.
func (d *Dispatcher) Process(req Request) (resp Response) {
	d.inflight.Add(1)
	defer d.inflight.Add(-1)

	taskID := d.taskID(req)
	defer func() {
		if r := recover(); r != nil {
			d.log.Printf("matrix request failed: task=%s: panic: %v", taskID, r)
			resp = failed(taskID, ErrInternal.Error())
		}
	}()
	d.log.Printf("received matrix request: task=%s op=%q a=%s b=%s", taskID, req.Operation, dims(req.MatrixA), dims(req.MatrixB))

	if req.MatrixA == nil {
		d.log.Printf("matrix request failed: task=%s: %v", taskID, ErrMissingMatrixA)
		return failed(taskID, ErrMissingMatrixA.Error())
	}

	start := d.now()
	res, err := d.engine.Apply(matrix.Operation(req.Operation), *req.MatrixA, req.MatrixB)
	if err != nil {
		d.log.Printf("matrix request failed: task=%s: %v", taskID, err)
		return failed(taskID, message(err))
	}
	elapsed := d.now().Sub(start)

	d.log.Printf("matrix request completed: task=%s result=%dx%d in %s", taskID, res.Rows, res.Cols, elapsed)
	return Response{
		Result:          &res,
		TaskID:          taskID,
		Status:          StatusCompleted,
		ExecutionTimeMs: elapsed.Milliseconds(),
	}
}

// Status reports readiness and the current load (in-flight / capacity).
// The dispatcher is not ready while it is at or above capacity.
func (d *Dispatcher) Status(clientID string) StatusReport {
	inflight := d.inflight.Load()
	rep := StatusReport{
		ClientID:    clientID,
		Ready:       inflight < int64(d.capacity),
		DeviceInfo:  DeviceInfo,
		CurrentLoad: float64(inflight) / float64(d.capacity),
	}
	if !rep.Ready {
		rep.Error = "dispatcher at capacity"
	}
	d.log.Printf("status request: client=%s ready=%t load=%.2f", clientID, rep.Ready, rep.CurrentLoad)

	return rep
}

// InFlight returns the number of requests currently being processed.
func (d *Dispatcher) InFlight() int { return int(d.inflight.Load()) }

// taskID returns the request's id, or a generated one when WithTaskIDs is
// set and the request has none.
func (d *Dispatcher) taskID(req Request) string {
	if req.TaskID == "" && d.newTaskID != nil {
		return d.newTaskID()
	}

	return req.TaskID
}

func failed(taskID, msg string) Response {
	return Response{
		TaskID:       taskID,
		Status:       StatusFailed,
		ErrorMessage: msg,
	}
}

// message maps an engine error onto its user-facing text: the sentinel's
// display string, without the operation/validator tags.
func message(err error) string {
	if s := matrix.Classify(err); s != nil {
		return s.Error()
	}

	return err.Error()
}

func dims(m *matrix.Matrix) string {
	if m == nil {
		return "-"
	}

	return fmt.Sprintf("%dx%d(len=%d)", m.Rows, m.Cols, len(m.Data))
}
