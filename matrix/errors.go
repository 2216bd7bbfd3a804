// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY the package-level sentinels the engine may return.
// Kernels return these sentinels wrapped with an operation tag via
// matrixErrorf; callers match them with errors.Is or collapse a wrapped
// error back to its sentinel with Classify.

package matrix

import "errors"

// NOTE ON MESSAGES
// ----------------
// The sentinel texts are user-visible: the dispatcher copies them verbatim
// into the response error_message. They are therefore NOT prefixed with
// "matrix: " like internal diagnostics would be. Do not reword them without
// updating every consumer that compares response strings.
//
// ERROR PRIORITY (documented, enforced in tests):
// malformed operand (strict mode only) -> unknown operation -> element limit
// -> shape checks
// (operand presence, dimensions, squareness) -> numeric checks (singularity)
// -> unsupported size.

var (
	// ErrDimensionMismatch indicates incompatible operand shapes, e.g.
	// Add/Sub with different shapes, Mul where a.Cols != b.Rows, or a binary
	// operation requested without a second operand.
	ErrDimensionMismatch = errors.New("Matrix dimensions do not match for the requested operation")

	// ErrNonSquare signals that Inverse received a matrix with Rows != Cols.
	ErrNonSquare = errors.New("Operation requires a square matrix")

	// ErrSingular is returned when |det| falls below the singularity epsilon
	// (closed-form 2×2) or when pivoted LU cannot invert (general capability).
	ErrSingular = errors.New("Matrix is singular and cannot be inverted")

	// ErrInvalidOperation marks an unknown operation tag or a square size the
	// inverse kernel does not support.
	ErrInvalidOperation = errors.New("Invalid matrix operation requested")

	// ErrMalformedMatrix reports len(Data) != Rows*Cols. Only returned when the
	// engine runs with WithStrictShape; the permissive default zero-fills.
	ErrMalformedMatrix = errors.New("Matrix data length does not match its dimensions")

	// ErrTooLarge reports an operand or result whose Rows*Cols exceeds the
	// engine's element limit (see WithMaxElements). Checked before any
	// kernel allocates.
	ErrTooLarge = errors.New("Matrix exceeds the maximum supported size")
)

// taxonomy lists every sentinel in priority order for Classify.
var taxonomy = [...]error{
	ErrMalformedMatrix,
	ErrInvalidOperation,
	ErrTooLarge,
	ErrDimensionMismatch,
	ErrNonSquare,
	ErrSingular,
}

// Classify returns the taxonomy sentinel wrapped inside err, or nil when err
// is nil or carries none of them.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, s := range taxonomy {
		if errors.Is(err, s) {
			return s
		}
	}

	return nil
}
