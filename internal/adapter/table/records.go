// Package table reads net migration tables from CSV files and Excel workbooks.
package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/nom-chart/internal/domain"
)

const utf8BOM = "\ufeff"

// datasetFromRecords converts a header row plus data rows into a Dataset.
// Columns are located by header name; extra columns are ignored. Blank rows
// are skipped. Line numbers in errors are 1-based and count the header.
func datasetFromRecords(source string, records [][]string) (domain.Dataset, error) {
	if len(records) == 0 {
		return domain.Dataset{}, fmt.Errorf("%w: %s: no header row", domain.ErrDataLoad, source)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	yearCol, err := columnIndex(source, header, domain.ColumnFinancialYear)
	if err != nil {
		return domain.Dataset{}, err
	}
	valueCol, err := columnIndex(source, header, domain.ColumnNetMigrant)
	if err != nil {
		return domain.Dataset{}, err
	}

	rows := make([]domain.Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		if blank(rec) {
			continue
		}
		year := cell(rec, yearCol)
		if year == "" {
			return domain.Dataset{}, fmt.Errorf("%w: %s line %d: empty %s", domain.ErrDataLoad, source, line, domain.ColumnFinancialYear)
		}
		raw := cell(rec, valueCol)
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return domain.Dataset{}, fmt.Errorf("%w: %s line %d: %s %q is not a number", domain.ErrDataLoad, source, line, domain.ColumnNetMigrant, raw)
		}
		rows = append(rows, domain.Row{FinancialYear: year, NetMigrant: value})
	}

	return domain.Dataset{Source: source, Rows: rows}, nil
}

func columnIndex(source string, header []string, name string) (int, error) {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s: %q", domain.ErrMissingColumn, source, name)
}

// cell returns the trimmed value at idx, or "" when the record is short.
func cell(rec []string, idx int) string {
	if idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
