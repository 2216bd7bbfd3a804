// SPDX-License-Identifier: MIT

// Package matrix: domain types consumed by the engine.
// This file intentionally contains ONLY domain-facing types (the Matrix value
// and the Operation tag). Errors and options live in dedicated files
// (errors.go, options.go).
package matrix

// Matrix is a dense row-major matrix of float32 values.
//
// Invariant: len(Data) == Rows*Cols; element (i, j) lives at Data[i*Cols+j].
// The engine never mutates a Matrix it receives and always returns a freshly
// allocated one. A value whose Data length disagrees with its shape is
// "malformed": kernels read missing cells as zero unless the engine runs with
// WithStrictShape.
type Matrix struct {
	Rows uint32    `json:"rows"` // number of rows
	Cols uint32    `json:"cols"` // number of columns
	Data []float32 `json:"data"` // row-major storage
}

// Operation is the case-sensitive tag naming an engine routine.
type Operation string

// Recognized operation tags. Any other value is rejected with
// ErrInvalidOperation at dispatch time.
const (
	OpMultiply  Operation = "multiply"
	OpTranspose Operation = "transpose"
	OpInverse   Operation = "inverse"
	OpAdd       Operation = "add"
	OpSubtract  Operation = "subtract"
)

// Operations returns every recognized tag in a stable order.
func Operations() []Operation {
	return []Operation{OpMultiply, OpTranspose, OpInverse, OpAdd, OpSubtract}
}

// ParseOperation maps a wire string onto an Operation.
// Matching is exact (no case folding or trimming); unknown tags return
// ErrInvalidOperation.
func ParseOperation(s string) (Operation, error) {
	op := Operation(s)
	if !op.Valid() {
		return "", matrixErrorf(opDispatch, ErrInvalidOperation)
	}

	return op, nil
}

// Valid reports whether op is one of the five recognized tags.
func (op Operation) Valid() bool {
	switch op {
	case OpMultiply, OpTranspose, OpInverse, OpAdd, OpSubtract:
		return true
	default:
		return false
	}
}

// NeedsOperandB reports whether op requires the second matrix.
// Transpose and Inverse ignore it.
func (op Operation) NeedsOperandB() bool {
	return op == OpMultiply || op == OpAdd || op == OpSubtract
}

func (op Operation) String() string { return string(op) }
