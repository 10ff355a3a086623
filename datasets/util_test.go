package datasets

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVMatrix(t *testing.T) {
	in := "open,close\n1.5, 2\n3,4e1\n"
	m, err := parseCSVMatrix(strings.NewReader(in), "inline")
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, []float64{1.5, 2}, m.RawRowView(0))
	assert.Equal(t, []float64{3, 40}, m.RawRowView(1))
}

func TestParseCSVMatrix_HeaderWidthIgnored(t *testing.T) {
	m, err := parseCSVMatrix(strings.NewReader("value\n1,2\n3,4\n"), "inline")
	require.NoError(t, err)
	_, cols := m.Dims()
	assert.Equal(t, 2, cols)
}

func TestParseCSVMatrix_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"header only", "a,b\n"},
		{"blank field", "a,b\n1,\n"},
		{"text", "a,b\n1,two\n"},
		{"ragged", "a,b\n1,2\n3,4,5\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseCSVMatrix(strings.NewReader(tc.in), tc.name)
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestReverseRows(t *testing.T) {
	m, err := parseCSVMatrix(strings.NewReader("x,y\n1,10\n2,20\n3,30\n"), "inline")
	require.NoError(t, err)
	reverseRows(m)
	assert.Equal(t, []float64{3, 30}, m.RawRowView(0))
	assert.Equal(t, []float64{2, 20}, m.RawRowView(1))
	assert.Equal(t, []float64{1, 10}, m.RawRowView(2))
}

func TestSourcePath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "stock")+".csv", sourcePath("data", "stock"))
}

func TestListCSVDatasets(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, filepath.Join(dir, "stock.csv"), "a", []string{"1"})
	writeCSV(t, filepath.Join(dir, "energy.csv"), "a", []string{"1"})
	writeCSV(t, filepath.Join(dir, "notes.txt"), "a", nil)

	names, err := ListCSVDatasets(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"energy", "stock"}, names)

	_, err = ListCSVDatasets(t.TempDir())
	assert.ErrorIs(t, err, ErrSourceNotFound)
}
