// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed unless a test is about malformed input.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mlcompute/matrix"
)

// MustRows builds a Matrix from literal rows or fails the test.
func MustRows(t testing.TB, rows ...[]float32) matrix.Matrix {
	t.Helper()
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return m
}

// Ptr returns a pointer to a copy of m, for the optional second operand.
func Ptr(m matrix.Matrix) *matrix.Matrix { return &m }

// RandomMatrix FILLS an r×c matrix with values in [-50, 50) from a fixed seed.
// Values are small integers so sums and products stay exact in float32.
func RandomMatrix(r, c uint32, seed int64) matrix.Matrix {
	rng := rand.New(rand.NewSource(seed))
	m := matrix.Zeros(r, c)
	for i := range m.Data {
		m.Data[i] = float32(rng.Intn(100) - 50)
	}

	return m
}

// CompareExact checks shape and every cell of got against want (row slices).
func CompareExact(t testing.TB, want [][]float32, got matrix.Matrix) {
	t.Helper()
	require.Equal(t, uint32(len(want)), got.Rows, "rows")
	if len(want) > 0 {
		require.Equal(t, uint32(len(want[0])), got.Cols, "cols")
	}
	require.Equal(t, want, got.Rows2D())
}

// CompareApprox checks shape and every cell within delta.
func CompareApprox(t testing.TB, want [][]float32, got matrix.Matrix, delta float64) {
	t.Helper()
	require.Equal(t, uint32(len(want)), got.Rows, "rows")
	var i, j int
	for i = range want {
		require.Equal(t, uint32(len(want[i])), got.Cols, "cols")
		for j = range want[i] {
			v, ok := got.At(i, j)
			require.True(t, ok, "At(%d,%d)", i, j)
			require.InDelta(t, want[i][j], v, delta, "cell [%d,%d]", i, j)
		}
	}
}

// naiveMul is an independent reference: float64 accumulation, no shortcuts.
func naiveMul(a, b matrix.Matrix) [][]float64 {
	out := make([][]float64, a.Rows)
	for i := 0; i < int(a.Rows); i++ {
		out[i] = make([]float64, b.Cols)
		for j := 0; j < int(b.Cols); j++ {
			for k := 0; k < int(a.Cols); k++ {
				out[i][j] += float64(a.Data[i*int(a.Cols)+k]) * float64(b.Data[k*int(b.Cols)+j])
			}
		}
	}

	return out
}
