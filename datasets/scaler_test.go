package datasets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMinMaxScale_RoundTrip(t *testing.T) {
	orig := []float64{
		3, -1, 10,
		5, 4, 10,
		-2, 0.5, 10,
		8, 2, 10,
	}
	m := mat.NewDense(4, 3, append([]float64(nil), orig...))
	s := MinMaxScale(m)

	assert.Equal(t, []float64{-2, -1, 10}, s.Min)
	assert.InDeltaSlice(t, []float64{10, 5, 0}, s.Range, 1e-6)
	assert.Equal(t, 3, s.Features())

	w := make(Window, 4)
	for i := range w {
		w[i] = m.RawRowView(i)
		for _, v := range w[i] {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}

	back, err := s.Denormalize(w)
	require.NoError(t, err)
	for i, row := range back {
		assert.InDeltaSlice(t, orig[i*3:(i+1)*3], row, 1e-9)
	}
}

func TestScaler_NormalizeRow(t *testing.T) {
	s := &Scaler{Min: []float64{1, 10}, Range: []float64{2, 5}}
	row := []float64{2, 20}
	s.Normalize(row)
	assert.Equal(t, []float64{0.5, 2}, row)
}

func TestScaler_DenormalizeCopies(t *testing.T) {
	s := &Scaler{Min: []float64{1}, Range: []float64{2}}
	w := Window{{0.5}, {1}}
	out, err := s.Denormalize(w)
	require.NoError(t, err)
	assert.Equal(t, Window{{2}, {3}}, out)
	assert.Equal(t, Window{{0.5}, {1}}, w)
}

func TestScaler_DenormalizeWidthMismatch(t *testing.T) {
	s := IdentityScaler(2)
	_, err := s.Denormalize(Window{{1, 2}, {1}})
	assert.Error(t, err)
}

func TestIdentityScaler(t *testing.T) {
	s := IdentityScaler(3)
	assert.Equal(t, []float64{0, 0, 0}, s.Min)
	assert.Equal(t, []float64{1, 1, 1}, s.Range)
}
