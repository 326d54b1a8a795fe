// Package dataset reads and writes the CSV tables wordfix works with: the
// dictionary, labeled training pairs, test words and predictions.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column names used by the data files.
const (
	ColumnID        = "Id"
	ColumnFreq      = "Freq"
	ColumnExpected  = "Expected"
	ColumnPredicted = "Predicted"
)

// ErrMissingColumn is returned when a required header column is absent.
var ErrMissingColumn = errors.New("missing column")

// Reader reads header-addressed CSV records.
type Reader struct {
	csv    *csv.Reader
	header map[string]int
}

// NewReader consumes the header line of r.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty csv: %w", io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[strings.TrimSpace(name)] = i
	}
	return &Reader{csv: cr, header: index}, nil
}

// Index returns the position of the named column.
func (r *Reader) Index(name string) (int, error) {
	i, ok := r.header[name]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrMissingColumn, name)
	}
	return i, nil
}

// Read returns the next record. It returns io.EOF at the end of input.
// The slice is reused by the next call.
func (r *Reader) Read() ([]string, error) {
	return r.csv.Read()
}

// Line returns the input line of the most recently read record.
func (r *Reader) Line() int {
	line, _ := r.csv.FieldPos(0)
	return line
}

// field returns rec[i] or "" when the record is short.
func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

// Each calls fn with the values of the named columns for every record.
func Each(r io.Reader, columns []string, fn func(values []string) error) error {
	reader, err := NewReader(r)
	if err != nil {
		return err
	}
	idx := make([]int, len(columns))
	for i, name := range columns {
		if idx[i], err = reader.Index(name); err != nil {
			return err
		}
	}
	values := make([]string, len(columns))
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read csv record: %w", err)
		}
		for i, j := range idx {
			values[i] = field(rec, j)
		}
		if err := fn(values); err != nil {
			return fmt.Errorf("line %d: %w", reader.Line(), err)
		}
	}
}

// Pair is one labeled training example.
type Pair struct {
	Observed string
	Expected string
}

// ReadPairs reads (Id, Expected) rows.
func ReadPairs(r io.Reader) ([]Pair, error) {
	var pairs []Pair
	err := Each(r, []string{ColumnID, ColumnExpected}, func(v []string) error {
		pairs = append(pairs, Pair{Observed: v[0], Expected: v[1]})
		return nil
	})
	return pairs, err
}

// ReadColumn returns every value of the named column.
func ReadColumn(r io.Reader, name string) ([]string, error) {
	var out []string
	err := Each(r, []string{name}, func(v []string) error {
		out = append(out, v[0])
		return nil
	})
	return out, err
}

// Prediction is one row of the output table.
type Prediction struct {
	ID        string
	Predicted string
}

// ReadPredictions reads (Id, Predicted) rows.
func ReadPredictions(r io.Reader) ([]Prediction, error) {
	var out []Prediction
	err := Each(r, []string{ColumnID, ColumnPredicted}, func(v []string) error {
		out = append(out, Prediction{ID: v[0], Predicted: v[1]})
		return nil
	})
	return out, err
}

// WritePredictions writes the header and one row per prediction.
func WritePredictions(w io.Writer, rows []Prediction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColumnID, ColumnPredicted}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.ID, row.Predicted}); err != nil {
			return fmt.Errorf("failed to write prediction for %q: %w", row.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// OpenFunc reads a file through fn, closing it afterwards.
func OpenFunc(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// CreateFunc writes a new file through fn.
func CreateFunc(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return fn(f)
}
