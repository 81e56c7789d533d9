package table

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/nom-chart/internal/domain"
)

// CSVReader loads a dataset from a comma-separated file with a header row.
type CSVReader struct {
	path   string
	logger *slog.Logger
}

// NewCSVReader creates a reader for the CSV file at path.
func NewCSVReader(path string, logger *slog.Logger) *CSVReader {
	return &CSVReader{path: path, logger: logger}
}

// Extract reads the whole file before parsing; the file is closed on return.
func (r *CSVReader) Extract(_ context.Context) (domain.Dataset, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: %w", domain.ErrDataLoad, err)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: %s: %w", domain.ErrDataLoad, r.path, err)
	}

	ds, err := datasetFromRecords(r.path, records)
	if err != nil {
		return domain.Dataset{}, err
	}
	r.logger.Debug("csv loaded", "path", r.path, "rows", len(ds.Rows))
	return ds, nil
}
