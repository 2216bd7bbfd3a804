// SPDX-License-Identifier: MIT

// Package matrix - general-size inversion capability.
//
// Inverting sizes other than 2×2 is opt-in (WithGeneralInverse). The kernel
// delegates the factorization to gonum: LU with partial pivoting in float64,
// converted back to float32 on the way out.
//
// Blueprint:
//
//	Stage 1 (Prepare): widen the operand into a gonum Dense (missing cells → 0).
//	Stage 2 (Execute): Dense.Inverse; any Condition error means (near-)singular.
//	Stage 3 (Finalize): narrow the result to float32 row-major storage.
//
// Complexity: O(n³) time, O(n²) memory.

package matrix

import (
	"gonum.org/v1/gonum/mat"
)

func inverseLU(m Matrix) (Matrix, error) {
	n := int(m.Rows)

	// Stage 1: widen.
	wide := make([]float64, n*n)
	for idx := range wide {
		wide[idx] = float64(m.cell(idx))
	}
	src := mat.NewDense(n, n, wide)

	// Stage 2: pivoted LU inversion.
	var inv mat.Dense
	if err := inv.Inverse(src); err != nil {
		return Matrix{}, ErrSingular
	}

	// Stage 3: narrow.
	res := Zeros(m.Rows, m.Cols)
	raw := inv.RawMatrix()
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			res.Data[i*n+j] = float32(raw.Data[i*raw.Stride+j])
		}
	}

	return res, nil
}
