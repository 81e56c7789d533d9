package table

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/nom-chart/internal/domain"
)

// Extractor loads the whole input table.
type Extractor interface {
	Extract(ctx context.Context) (domain.Dataset, error)
}

// Open selects a reader by file extension: .xlsx and .xlsm are read as
// workbooks, anything else as CSV.
func Open(path, sheet string, logger *slog.Logger) Extractor {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return NewXLSXReader(path, sheet, logger)
	default:
		return NewCSVReader(path, logger)
	}
}
