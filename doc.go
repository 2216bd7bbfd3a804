// Package mlcompute is a small dense-matrix compute node: it evaluates
// operation requests (multiply, transpose, inverse, add, subtract) on
// row-major float32 matrices and wraps every result in a status envelope.
//
// What is in the module?
//
//	matrix/         : Matrix type, kernels, validators, Engine and options
//	dispatch/       : request/response envelope, timing, status, batches
//	internal/jsonl/ : JSON-lines codec for request and response streams
//	cmd/mlcompute/  : CLI: `run` evaluates a request stream, `status` reports readiness
//
// Quick example:
//
//	a := matrix.New(2, 2, []float32{1, 2, 3, 4})
//	b := matrix.New(2, 2, []float32{5, 6, 7, 8})
//	c, err := matrix.Apply(matrix.OpMultiply, a, &b)
//	// c.Data == [19 22 43 50]
//
// Through the dispatcher the same call yields a Response with
// Status "completed" and the elapsed time, or Status "failed" with a
// fixed, user-facing error message.
//
// Kernels are deterministic: multiplication sums k in increasing order
// with float32 rounding after each product, so results are bit-exact
// across runs and platforms.
package mlcompute
