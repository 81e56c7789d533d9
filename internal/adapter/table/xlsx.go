package table

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/nom-chart/internal/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXReader loads a dataset from one sheet of an Excel workbook.
type XLSXReader struct {
	path   string
	sheet  string
	logger *slog.Logger
}

// NewXLSXReader creates a reader for the workbook at path. An empty sheet
// selects the first sheet in the workbook.
func NewXLSXReader(path, sheet string, logger *slog.Logger) *XLSXReader {
	return &XLSXReader{path: path, sheet: sheet, logger: logger}
}

// Extract reads raw (unformatted) cell values so numeric cells with
// thousands-separator formats still parse.
func (r *XLSXReader) Extract(_ context.Context) (domain.Dataset, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: %w", domain.ErrDataLoad, err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return domain.Dataset{}, fmt.Errorf("%w: %s: workbook has no sheets", domain.ErrDataLoad, r.path)
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: %s sheet %q: %w", domain.ErrDataLoad, r.path, sheet, err)
	}

	ds, err := datasetFromRecords(fmt.Sprintf("%s[%s]", r.path, sheet), records)
	if err != nil {
		return domain.Dataset{}, err
	}
	r.logger.Debug("workbook loaded", "path", r.path, "sheet", sheet, "rows", len(ds.Rows))
	return ds, nil
}
