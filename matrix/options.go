// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the engine. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves the final snapshot.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - The zero configuration reproduces the historical engine exactly:
//     permissive zero-fill on malformed buffers, closed-form 2×2 inversion
//     only, determinant guard |det| < 1e-10.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultSingularEpsilon is the determinant magnitude below which a 2×2
	// matrix is reported as ErrSingular.
	DefaultSingularEpsilon = 1e-10

	// DefaultStrictShape rejects malformed operands (len(Data) != Rows*Cols)
	// with ErrMalformedMatrix when true. false ⇒ missing cells read as zero.
	DefaultStrictShape = false

	// DefaultGeneralInverse enables pivoted-LU inversion for square sizes other
	// than 2. false ⇒ those sizes return ErrInvalidOperation.
	DefaultGeneralInverse = false

	// DefaultMaxElements caps Rows*Cols of every operand and result
	// (1<<26 float32 values, 256 MiB). Requests above it fail with ErrTooLarge.
	DefaultMaxElements = 1 << 26
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid     = "matrix: WithSingularEpsilon: eps must be finite, non-negative"
	panicMaxElementsInvalid = "matrix: WithMaxElements: limit must be > 0"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	singularEps    float64 // >= 0; DefaultSingularEpsilon
	strictShape    bool    // DefaultStrictShape
	generalInverse bool    // DefaultGeneralInverse
	maxElements    int     // > 0; DefaultMaxElements
}

// ---------- Constructors (WithX) ----------

// WithSingularEpsilon sets the determinant guard used by the 2×2 inverse.
// Implementation:
//   - Stage 1: validate eps is finite and ≥ 0.
//   - Stage 2: return a setter that writes eps into Options.
//
// Errors:
//   - Panics with a stable message when eps is invalid.
func WithSingularEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.singularEps = eps }
}

// WithStrictShape turns on ingress validation: every operand must satisfy
// len(Data) == Rows*Cols or the call fails with ErrMalformedMatrix.
func WithStrictShape() Option {
	return func(o *Options) { o.strictShape = true }
}

// WithPermissiveShape restores the default zero-fill policy for malformed
// operands. Useful to override a shared option slice.
func WithPermissiveShape() Option {
	return func(o *Options) { o.strictShape = false }
}

// WithGeneralInverse enables inversion of square sizes other than 2 through
// LU with partial pivoting. The 2×2 closed form is still used for n == 2.
func WithGeneralInverse() Option {
	return func(o *Options) { o.generalInverse = true }
}

// WithMaxElements sets the largest Rows*Cols accepted for an operand or a
// result. Panics when n <= 0.
func WithMaxElements(n int) Option {
	if n <= 0 {
		panic(panicMaxElementsInvalid)
	}

	return func(o *Options) { o.maxElements = n }
}

// NewOptions resolves opts against the documented defaults.
// Exposed for callers that want to inspect the effective configuration.
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// SingularEpsilon returns the effective determinant guard.
func (o Options) SingularEpsilon() float64 { return o.singularEps }

// StrictShape reports whether malformed operands are rejected.
func (o Options) StrictShape() bool { return o.strictShape }

// GeneralInverse reports whether non-2×2 inversion is enabled.
func (o Options) GeneralInverse() bool { return o.generalInverse }

// MaxElements returns the effective element limit.
func (o Options) MaxElements() int { return o.maxElements }

// gatherOptions applies user setters in order on top of the defaults.
// Nil setters are skipped so callers can build option slices conditionally.
func gatherOptions(user ...Option) Options {
	o := Options{
		singularEps:    DefaultSingularEpsilon,
		strictShape:    DefaultStrictShape,
		generalInverse: DefaultGeneralInverse,
		maxElements:    DefaultMaxElements,
	}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
