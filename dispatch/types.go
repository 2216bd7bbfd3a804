// SPDX-License-Identifier: MIT

// Package dispatch: request/response envelope records.
// These are the in-process shapes exchanged with transports; JSON tags follow
// the field names used by the HTTP front end (taskId, matrixA, ...).
package dispatch

import (
	"errors"

	"github.com/katalvlaran/mlcompute/matrix"
)

// Status values carried by Response.Status.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ErrMissingMatrixA is the dispatcher-level precondition failure for a
// request without its first operand. It is deliberately NOT part of the
// matrix error taxonomy: the engine never sees such a request.
var ErrMissingMatrixA = errors.New("Missing matrix A")

// ErrInternal is reported for a request whose evaluation panicked.
var ErrInternal = errors.New("Internal error while processing the request")

// Request is a decoded operation descriptor.
// MatrixB is required for multiply/add/subtract and ignored otherwise.
// TaskID is opaque and echoed back unchanged.
type Request struct {
	TaskID    string         `json:"taskId"`
	Operation string         `json:"operation"`
	MatrixA   *matrix.Matrix `json:"matrixA,omitempty"`
	MatrixB   *matrix.Matrix `json:"matrixB,omitempty"`
}

// Response is the outbound envelope.
// Result is nil on failure; ErrorMessage is empty on success.
type Response struct {
	Result          *matrix.Matrix `json:"resultMatrix,omitempty"`
	TaskID          string         `json:"taskId"`
	Status          string         `json:"status"`
	ExecutionTimeMs int64          `json:"executionTimeMs"`
	ErrorMessage    string         `json:"errorMessage"`
}

// OK reports whether the response carries a result.
func (r Response) OK() bool { return r.Status == StatusCompleted }

// StatusReport describes dispatcher readiness for health probes.
type StatusReport struct {
	ClientID    string  `json:"clientId"`
	Ready       bool    `json:"ready"`
	DeviceInfo  string  `json:"deviceInfo"`
	CurrentLoad float64 `json:"currentLoad"` // in-flight requests / capacity
	Error       string  `json:"error"`
}
