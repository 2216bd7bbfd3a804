// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, intention-revealing entry points next to the kernels.
//   - Avoid any logic duplication; each facade delegates to the canonical implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.

package matrix

// Product is an alias for Mul: matrix product a × b.
// Complexity: O(r*n*c).
func Product(a, b Matrix) (Matrix, error) { return Mul(a, b) }

// Sum is an alias for Add: element-wise a + b.
// Complexity: O(rc).
func Sum(a, b Matrix) (Matrix, error) { return Add(a, b) }

// Diff is an alias for Sub: element-wise a − b.
// Complexity: O(rc).
func Diff(a, b Matrix) (Matrix, error) { return Sub(a, b) }

// T is an alias for Transpose: returns mᵀ.
func T(m Matrix) Matrix { return Transpose(m) }

// InverseOf is an alias for Inverse under the default (2×2 only) policy.
func InverseOf(m Matrix) (Matrix, error) { return Inverse(m) }

// ApplyTag parses a wire tag and evaluates it with default options.
// Unknown tags return ErrInvalidOperation without touching the operands.
func ApplyTag(tag string, a Matrix, b *Matrix) (Matrix, error) {
	return defaultEngine.ApplyTag(tag, a, b)
}

// ApplyTag is Apply for a raw, case-sensitive wire tag.
func (e *Engine) ApplyTag(tag string, a Matrix, b *Matrix) (Matrix, error) {
	op, err := ParseOperation(tag)
	if err != nil {
		return Matrix{}, err
	}

	return e.Apply(op, a, b)
}
