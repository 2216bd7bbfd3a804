// SPDX-License-Identifier: MIT

// Package matrix - row-major storage helpers & safe accessors.
//
// Purpose:
//   - Build Matrix values with the explicit index formula i*Cols + j.
//   - Keep reads safe at the public surface: At reports ok=false instead of panicking.
//   - Provide the permissive flat read (cell) that every kernel uses, so a
//     malformed buffer reads as zero from a single source of truth.
//
// Complexity quicksheet:
//   - New/Zeros: O(r*c); At: O(1); Clone/Equal/String: O(r*c).

package matrix

import (
	"fmt"
	"strings"
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// New returns a Matrix over data without copying or validating it.
// A length mismatch is allowed here on purpose: ingress decides between the
// permissive policy and ErrMalformedMatrix (see ValidateWellFormed).
func New(rows, cols uint32, data []float32) Matrix {
	return Matrix{Rows: rows, Cols: cols, Data: data}
}

// Zeros allocates a rows×cols matrix filled with zeros.
// Complexity: Time O(r*c), Space O(r*c).
func Zeros(rows, cols uint32) Matrix {
	return Matrix{Rows: rows, Cols: cols, Data: make([]float32, int(rows)*int(cols))}
}

// Identity returns I_n (ones on the diagonal, zeros elsewhere).
func Identity(n uint32) Matrix {
	id := Zeros(n, n)
	for i := 0; i < int(n); i++ { // fixed i order
		id.Data[i*int(n)+i] = 1
	}

	return id
}

// FromRows builds a Matrix from a rectangular slice of rows.
// Returns ErrDimensionMismatch when the rows are ragged.
//
// Implementation:
//   - Stage 1: take Cols from rows[0]; reject any row of different length.
//   - Stage 2: copy rows into one flat buffer in row order.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func FromRows(rows [][]float32) (Matrix, error) {
	if len(rows) == 0 {
		return Matrix{}, nil
	}
	cols := len(rows[0])
	data := make([]float32, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return Matrix{}, fmt.Errorf("FromRows: row %d has %d values, want %d: %w", i, len(row), cols, ErrDimensionMismatch)
		}
		data = append(data, row...)
	}

	return Matrix{Rows: uint32(len(rows)), Cols: uint32(cols), Data: data}, nil
}

// Len returns the logical element count Rows*Cols (not len(Data)).
func (m Matrix) Len() int { return int(m.Rows) * int(m.Cols) }

// WellFormed reports whether len(Data) == Rows*Cols.
func (m Matrix) WellFormed() bool { return len(m.Data) == m.Len() }

// IsSquare reports Rows == Cols.
func (m Matrix) IsSquare() bool { return m.Rows == m.Cols }

// At returns the element at (i, j).
// ok is false when (i, j) is outside the shape or the backing buffer.
func (m Matrix) At(i, j int) (v float32, ok bool) {
	if i < 0 || j < 0 || i >= int(m.Rows) || j >= int(m.Cols) {
		return 0, false
	}
	idx := i*int(m.Cols) + j
	if idx >= len(m.Data) {
		return 0, false
	}

	return m.Data[idx], true
}

// cell is the permissive flat read shared by all kernels: an index past the
// end of the buffer reads as zero.
func (m Matrix) cell(idx int) float32 {
	if idx < len(m.Data) {
		return m.Data[idx]
	}

	return 0
}

// Clone returns a deep copy; the result shares no storage with m.
func (m Matrix) Clone() Matrix {
	var cp []float32
	if m.Data != nil {
		cp = make([]float32, len(m.Data))
		copy(cp, m.Data)
	}

	return Matrix{Rows: m.Rows, Cols: m.Cols, Data: cp}
}

// Equal reports exact equality of shape and every stored value.
func (m Matrix) Equal(o Matrix) bool {
	if m.Rows != o.Rows || m.Cols != o.Cols || len(m.Data) != len(o.Data) {
		return false
	}
	for i := range m.Data {
		if m.Data[i] != o.Data[i] {
			return false
		}
	}

	return true
}

// Rows2D copies the matrix out as a slice of rows (missing cells read as zero).
func (m Matrix) Rows2D() [][]float32 {
	out := make([][]float32, m.Rows)
	cols := int(m.Cols)
	for i := range out {
		row := make([]float32, cols)
		for j := 0; j < cols; j++ {
			row[j] = m.cell(i*cols + j)
		}
		out[i] = row
	}

	return out
}

// String renders rows as lines of comma-separated values, e.g. "[1, 2]\n[3, 4]\n".
func (m Matrix) String() string {
	var b strings.Builder
	cols := int(m.Cols)
	for i := 0; i < int(m.Rows); i++ {
		b.WriteString(_fmtRowOpen)
		base := i * cols
		for j := 0; j < cols; j++ {
			fmt.Fprintf(&b, "%g", m.cell(base+j))
			if j+1 < cols {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
