// Package matrix is the dense-matrix arithmetic engine.
//
// The matrix package provides:
//
//   - Matrix, a row-major float32 value (element (i, j) at Data[i*Cols+j]).
//   - Five pure kernels: Mul, Transpose, Inverse (closed-form 2×2), Add, Sub.
//   - Engine.Apply, which maps an Operation tag ("multiply", "transpose",
//     "inverse", "add", "subtract") onto a kernel under a fixed policy.
//   - A closed error taxonomy: ErrDimensionMismatch, ErrNonSquare,
//     ErrSingular, ErrInvalidOperation, plus ErrMalformedMatrix when strict
//     shape checking is enabled.
//
// Inputs are never mutated and every call returns a freshly allocated
// result, so an Engine may be shared freely between goroutines.
//
// See the examples in this package for usage patterns.
package matrix
