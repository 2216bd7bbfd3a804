// SPDX-License-Identifier: MIT

// Package matrix - Engine: the single dispatch entry point over the kernels.
//
// Purpose:
//   - Map an Operation tag plus operands onto exactly one kernel.
//   - Apply the configured ingress policy (strict vs permissive shapes).
//   - Stay stateless: an Engine holds only its immutable Options snapshot and
//     is safe for concurrent use without locks.

package matrix

// Engine evaluates operations against immutable operands.
// The zero value is not usable; construct with NewEngine.
type Engine struct {
	opts Options
}

// defaultEngine backs the package-level Apply.
var defaultEngine = NewEngine()

// NewEngine returns an Engine configured by opts on top of the defaults.
func NewEngine(opts ...Option) *Engine {
	return &Engine{opts: gatherOptions(opts...)}
}

// Options returns the engine's effective configuration.
func (e *Engine) Options() Options { return e.opts }

// Apply evaluates op against a and the optional b with default options.
func Apply(op Operation, a Matrix, b *Matrix) (Matrix, error) {
	return defaultEngine.Apply(op, a, b)
}

// Apply evaluates op against a and, for binary operations, b.
//
// Implementation:
//   - Stage 1: under strict shape policy, reject malformed a (and b when the
//     operation reads it) with ErrMalformedMatrix.
//   - Stage 2: switch on the tag; unknown tags → ErrInvalidOperation.
//   - Stage 3: operands over the element limit → ErrTooLarge.
//   - Stage 4: binary operations require b (ErrDimensionMismatch otherwise);
//     multiply also checks its result shape against the limit. Then
//     delegate to the kernel.
//
// Behavior highlights:
//   - b is ignored for Transpose and Inverse, even when supplied.
//   - Every error matches exactly one taxonomy sentinel (see Classify).
//   - No kernel allocates more than MaxElements values, whatever the
//     claimed dimensions of a malformed operand.
//   - Pure: no I/O, no retries, no shared mutable state.
func (e *Engine) Apply(op Operation, a Matrix, b *Matrix) (Matrix, error) {
	if e.opts.strictShape {
		if err := ValidateWellFormed(a); err != nil {
			return Matrix{}, matrixErrorf(opDispatch, err)
		}
		if b != nil && op.NeedsOperandB() {
			if err := ValidateWellFormed(*b); err != nil {
				return Matrix{}, matrixErrorf(opDispatch, err)
			}
		}
	}

	if op.Valid() {
		if err := e.validateSizes(op, a, b); err != nil {
			return Matrix{}, matrixErrorf(opDispatch, err)
		}
	}

	switch op {
	case OpMultiply:
		if err := ValidatePresent(b); err != nil {
			return Matrix{}, matrixErrorf(opMul, err)
		}
		if err := ValidateMulCompatible(a, *b); err != nil {
			return Matrix{}, matrixErrorf(opMul, err)
		}
		if err := ValidateSize(a.Rows, b.Cols, e.opts.maxElements); err != nil {
			return Matrix{}, matrixErrorf(opMul, err)
		}
		return Mul(a, *b)
	case OpTranspose:
		return Transpose(a), nil
	case OpInverse:
		return inverse(a, e.opts)
	case OpAdd:
		if err := ValidatePresent(b); err != nil {
			return Matrix{}, matrixErrorf(opAdd, err)
		}
		return Add(a, *b)
	case OpSubtract:
		if err := ValidatePresent(b); err != nil {
			return Matrix{}, matrixErrorf(opSub, err)
		}
		return Sub(a, *b)
	default:
		return Matrix{}, matrixErrorf(opDispatch, ErrInvalidOperation)
	}
}

// validateSizes applies the element limit to a and, when op reads it, b.
func (e *Engine) validateSizes(op Operation, a Matrix, b *Matrix) error {
	if err := ValidateSize(a.Rows, a.Cols, e.opts.maxElements); err != nil {
		return err
	}
	if b != nil && op.NeedsOperandB() {
		return ValidateSize(b.Rows, b.Cols, e.opts.maxElements)
	}

	return nil
}
