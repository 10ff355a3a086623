package datasets

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

func parseFloat64(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}
	return strconv.ParseFloat(s, 64)
}

// sourcePath returns the CSV path for a named dataset inside dir.
func sourcePath(dir, name string) string {
	return filepath.Join(dir, name) + ".csv"
}

// readCSVMatrix reads a comma-separated file whose first row is a header into
// a dense matrix with one row per record. Every record must have the same
// number of numeric fields.
func readCSVMatrix(path string) (*mat.Dense, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}
	defer file.Close()

	return parseCSVMatrix(file, path)
}

func parseCSVMatrix(r io.Reader, name string) (*mat.Dense, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: %s: missing header row", ErrMalformedInput, name)
		}
		return nil, fmt.Errorf("%w: %s: failed to read header: %w", ErrMalformedInput, name, err)
	}

	var (
		cols int
		data []float64
		rows int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedInput, name, err)
		}
		if rows == 0 {
			cols = len(record)
		} else if len(record) != cols {
			return nil, fmt.Errorf("%w: %s: row %d has %d fields, expected %d",
				ErrMalformedInput, name, rows+1, len(record), cols)
		}
		for j, field := range record {
			v, err := parseFloat64(field)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: row %d column %d: %w", ErrMalformedInput, name, rows+1, j, err)
			}
			data = append(data, v)
		}
		rows++
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: %s: no data rows", ErrMalformedInput, name)
	}

	return mat.NewDense(rows, cols, data), nil
}

// reverseRows flips the row order of m in place.
func reverseRows(m *mat.Dense) {
	rows, cols := m.Dims()
	tmp := make([]float64, cols)
	for i, j := 0, rows-1; i < j; i, j = i+1, j-1 {
		top := m.RawRowView(i)
		bottom := m.RawRowView(j)
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// ListCSVDatasets returns the names (file names without the .csv extension)
// of the datasets found in dir, sorted.
func ListCSVDatasets(dir string) ([]string, error) {
	pattern := filepath.Join(dir, "*.csv")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no CSV files found in %s", ErrSourceNotFound, dir)
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = strings.TrimSuffix(filepath.Base(m), ".csv")
	}
	sort.Strings(names)
	return names, nil
}
