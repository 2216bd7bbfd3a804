// SPDX-License-Identifier: MIT

package matrix

import (
	"encoding/json"
	"math"
)

// matrixJSON has Matrix's fields and tags without its methods.
type matrixJSON Matrix

// MarshalJSON encodes {"rows", "cols", "data"}. Non-finite values (±Inf,
// NaN), which plain JSON numbers cannot carry, are written as null so an
// overflowing result still encodes.
func (m Matrix) MarshalJSON() ([]byte, error) {
	if allFinite(m.Data) {
		return json.Marshal(matrixJSON(m))
	}

	data := make([]*float32, len(m.Data))
	for i := range m.Data {
		if v := m.Data[i]; !isNonFinite(v) {
			data[i] = &m.Data[i]
		}
	}

	return json.Marshal(struct {
		Rows uint32     `json:"rows"`
		Cols uint32     `json:"cols"`
		Data []*float32 `json:"data"`
	}{m.Rows, m.Cols, data})
}

func allFinite(data []float32) bool {
	for _, v := range data {
		if isNonFinite(v) {
			return false
		}
	}

	return true
}

func isNonFinite(v float32) bool {
	f := float64(v)
	return math.IsNaN(f) || math.IsInf(f, 0)
}
