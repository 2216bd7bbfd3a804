// SPDX-License-Identifier: MIT
// Package matrix provides the numeric kernels of the engine: matrix
// multiplication, transpose, closed-form 2×2 inverse, element-wise addition
// and subtraction. All kernels perform fail-fast shape validation, never
// mutate their inputs, and return a freshly allocated Matrix.
//
// Purpose:
//   - Declare canonical kernels used by Engine.Apply.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Numeric policy:
//   - All arithmetic is float32. Every product is explicitly converted before
//     it is accumulated, which forbids fused multiply-add and keeps results
//     bit-identical across architectures.
//   - Malformed operands (len(Data) != Rows*Cols) are read permissively:
//     cells past the end of the buffer contribute zero.

package matrix

import "fmt"

// ZeroSum is the initial accumulator value for dot products.
const ZeroSum float32 = 0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd      = "Add"
	opSub      = "Sub"
	opMul      = "Mul"
	opInverse  = "Inverse"
	opDispatch = "Apply"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Internal helper for Add/Sub to share validation and the flat loop.
//
// Implementation:
//   - Stage 1: ValidateSameShape(a, b).
//   - Stage 2: zip the two flat buffers 0..n-1 where n = min(len(a.Data), len(b.Data)).
//
// Behavior highlights:
//   - For well-formed operands n == Rows*Cols, so the truncation is a no-op.
//   - A malformed operand yields a result whose buffer is as short as the
//     shorter input; shape is still copied from a.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float32, opTag string) (Matrix, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return Matrix{}, matrixErrorf(opTag, err)
	}

	n := len(a.Data)
	if len(b.Data) < n {
		n = len(b.Data)
	}
	out := make([]float32, n)
	for idx := 0; idx < n; idx++ { // deterministic 0..n-1
		out[idx] = a.Data[idx] + sign*b.Data[idx]
	}

	return Matrix{Rows: a.Rows, Cols: a.Cols, Data: out}, nil
}

// Add computes the element-wise sum C = A + B.
//
// Errors:
//   - ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (Matrix, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B.
//
// Errors:
//   - ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Sub(a, b Matrix) (Matrix, error) { return addSub(a, b, -1, opSub) }

// Mul performs standard matrix multiplication C = A × B.
// Implementation:
//   - Stage 1: Validate inner dimensions (A.Cols == B.Rows).
//   - Stage 2: i→j→k triple loop; C[i,j] accumulates A[i,k]·B[k,j] for k = 0..n-1.
//
// Behavior highlights:
//   - Summation order is increasing k and is part of the contract: tests
//     compare results bit for bit.
//   - A flat index outside either buffer (only possible for a malformed
//     operand) skips that term instead of panicking.
//
// Inputs:
//   - A: left matrix with shape (r × n).
//   - B: right matrix with shape (n × c).
//
// Returns:
//   - Matrix: new C with shape (r × c).
//
// Errors:
//   - ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return Matrix{}, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := int(a.Rows), int(a.Cols), int(b.Cols)
	res := Zeros(a.Rows, b.Cols)
	lenA, lenB := len(a.Data), len(b.Data)
	var (
		i, j, k      int // loop iterators
		aIdx, bIdx   int // flat indices into a.Data / b.Data
		rowA, rowOut int // row offsets
		sum, product float32
	)
	for i = 0; i < aRows; i++ {
		rowA = i * aCols
		rowOut = i * bCols
		for j = 0; j < bCols; j++ {
			sum = ZeroSum
			for k = 0; k < aCols; k++ {
				aIdx = rowA + k
				bIdx = k*bCols + j
				if aIdx < lenA && bIdx < lenB {
					product = float32(a.Data[aIdx] * b.Data[bIdx]) // explicit rounding, no FMA
					sum += product
				}
			}
			res.Data[rowOut+j] = sum
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Result shape is Cols × Rows and R[j,i] = A[i,j]. Never fails.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) Matrix {
	rows, cols := int(m.Rows), int(m.Cols)
	res := Zeros(m.Cols, m.Rows)
	var i, j, baseSrc int
	for i = 0; i < rows; i++ {
		baseSrc = i * cols
		for j = 0; j < cols; j++ {
			res.Data[j*rows+i] = m.cell(baseSrc + j)
		}
	}

	return res
}

// Inverse computes A^{-1} with the default policy: closed form for 2×2,
// ErrInvalidOperation for any other square size.
//
// Errors:
//   - ErrNonSquare, ErrSingular, ErrInvalidOperation.
func Inverse(m Matrix) (Matrix, error) {
	return inverse(m, gatherOptions())
}

// inverse is the policy-aware implementation used by Inverse and Engine.
//
// Implementation:
//   - Stage 1: ValidateSquare(m).
//   - Stage 2: n == 2 → inverse2x2 with the configured epsilon.
//   - Stage 3: other n → pivoted LU when the capability is on, else ErrInvalidOperation.
func inverse(m Matrix, o Options) (Matrix, error) {
	if err := ValidateSquare(m); err != nil {
		return Matrix{}, matrixErrorf(opInverse, err)
	}

	if m.Rows == 2 {
		res, err := inverse2x2(m, o.singularEps)
		if err != nil {
			return Matrix{}, matrixErrorf(opInverse, err)
		}
		return res, nil
	}

	if !o.generalInverse || m.Rows == 0 {
		return Matrix{}, matrixErrorf(opInverse, fmt.Errorf("size %dx%d: %w", m.Rows, m.Cols, ErrInvalidOperation))
	}
	res, err := inverseLU(m)
	if err != nil {
		return Matrix{}, matrixErrorf(opInverse, err)
	}

	return res, nil
}

// inverse2x2 applies inv = (1/det)·[[a22, -a12], [-a21, a11]].
// Returns ErrSingular when |det| < eps.
func inverse2x2(m Matrix, eps float64) (Matrix, error) {
	a11, a12 := m.cell(0), m.cell(1)
	a21, a22 := m.cell(2), m.cell(3)

	det := float32(a11*a22) - float32(a12*a21)
	abs := det
	if abs < 0 {
		abs = -abs
	}
	if abs < float32(eps) {
		return Matrix{}, ErrSingular
	}

	invDet := 1 / det
	return Matrix{Rows: 2, Cols: 2, Data: []float32{
		a22 * invDet, -a12 * invDet,
		-a21 * invDet, a11 * invDet,
	}}, nil
}
