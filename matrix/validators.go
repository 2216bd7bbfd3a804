// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for operand checks.
//  - Keep kernels minimal by delegating presence/shape/structure checks here.
//  - Return sentinels wrapped with the validator tag so kernels can wrap
//    once more with their operation tag; errors.Is still matches.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on success.
//
// Note:
//  - Each composite validator follows a fixed sequence (e.g. Present → Shape).

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidatePresent ensures the optional second operand was supplied.
// A missing operand is reported as ErrDimensionMismatch: there is no shape
// to be compatible with.
func ValidatePresent(b *Matrix) error {
	if b == nil {
		return validatorErrorf("ValidatePresent", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSameShape ensures a and b have equal Rows and Cols.
//
// Inputs: two Matrix values.
// Return: nil or wrapped ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows != b.Rows {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols != b.Cols {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulCompatible ensures the inner dimensions agree (a.Cols == b.Rows).
// Complexity: O(1).
func ValidateMulCompatible(a, b Matrix) error {
	if a.Cols != b.Rows {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
//
// Errors: ErrNonSquare if not square.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if !m.IsSquare() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateWellFormed checks the structural invariant len(Data) == Rows*Cols.
// Used at ingress when strict shape checking is enabled.
func ValidateWellFormed(m Matrix) error {
	if !m.WellFormed() {
		return validatorErrorf(
			fmt.Sprintf("ValidateWellFormed: %dx%d with %d values", m.Rows, m.Cols, len(m.Data)),
			ErrMalformedMatrix,
		)
	}

	return nil
}

// ValidateSize checks that a rows×cols matrix holds at most max elements.
// The product is taken in uint64, so it cannot overflow for uint32 inputs.
//
// Errors: ErrTooLarge when rows*cols > max.
// Complexity: O(1).
func ValidateSize(rows, cols uint32, max int) error {
	if n := uint64(rows) * uint64(cols); max < 0 || n > uint64(max) {
		return validatorErrorf(fmt.Sprintf("ValidateSize: %dx%d over %d elements", rows, cols, max), ErrTooLarge)
	}

	return nil
}
