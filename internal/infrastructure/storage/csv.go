package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVSource reads ledger rows from CSV data.
type CSVSource struct {
	reader *csv.Reader
	closer io.Closer
}

// Compile-time check that CSVSource implements Source
var _ Source = (*CSVSource)(nil)

// NewCSVSource wraps r. Rows may have varying field counts; short rows are
// reported by the ledger loader.
func NewCSVSource(r io.Reader) *CSVSource {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = false
	return &CSVSource{reader: reader}
}

// OpenCSV opens a CSV file for loading.
func OpenCSV(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ledger csv: %w", err)
	}
	src := NewCSVSource(f)
	src.closer = f
	return src, nil
}

// Header reads the header row.
func (s *CSVSource) Header() ([]string, error) {
	header, err := s.reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	return header, nil
}

// Next reads the next data row, returning io.EOF at the end.
func (s *CSVSource) Next() ([]string, error) {
	record, err := s.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read csv row: %w", err)
	}
	return record, nil
}

// Close releases the underlying file, if any.
func (s *CSVSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
