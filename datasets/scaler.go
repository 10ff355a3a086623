package datasets

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ScaleEpsilon keeps the range of a constant feature away from zero.
const ScaleEpsilon = 1e-7

// Scaler holds per-feature min-max normalization parameters.
// Range is max-min+ScaleEpsilon.
type Scaler struct {
	Min   []float64
	Range []float64
}

// IdentityScaler returns a scaler with Min 0 and Range 1 for every feature,
// which is what synthetic data is reported with.
func IdentityScaler(features int) *Scaler {
	s := &Scaler{
		Min:   make([]float64, features),
		Range: make([]float64, features),
	}
	for i := range s.Range {
		s.Range[i] = 1
	}
	return s
}

// MinMaxScale normalizes every column of m in place to
// (v-min)/(max-min+ScaleEpsilon) and returns the parameters used.
func MinMaxScale(m *mat.Dense) *Scaler {
	rows, cols := m.Dims()
	s := &Scaler{
		Min:   make([]float64, cols),
		Range: make([]float64, cols),
	}
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, m)
		lo := floats.Min(col)
		s.Min[j] = lo
		s.Range[j] = floats.Max(col) - lo + ScaleEpsilon
	}
	for i := 0; i < rows; i++ {
		s.Normalize(m.RawRowView(i))
	}
	return s
}

// Features returns the number of features the scaler covers.
func (s *Scaler) Features() int {
	return len(s.Min)
}

// Normalize rescales a single row in place.
func (s *Scaler) Normalize(row []float64) {
	for j := range row {
		row[j] = (row[j] - s.Min[j]) / s.Range[j]
	}
}

// Denormalize returns a copy of w mapped back to the original units.
func (s *Scaler) Denormalize(w Window) (Window, error) {
	out := make(Window, len(w))
	for i, row := range w {
		if len(row) != len(s.Min) {
			return nil, fmt.Errorf("step %d has %d features, scaler has %d", i, len(row), len(s.Min))
		}
		r := make([]float64, len(row))
		for j, v := range row {
			r[j] = v*s.Range[j] + s.Min[j]
		}
		out[i] = r
	}
	return out, nil
}

func (s *Scaler) clone() *Scaler {
	return &Scaler{
		Min:   append([]float64(nil), s.Min...),
		Range: append([]float64(nil), s.Range...),
	}
}
