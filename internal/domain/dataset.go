package domain

import "fmt"

// Column names required in every input table.
const (
	ColumnFinancialYear = "FinancialYear"
	ColumnNetMigrant    = "NetMigrant"
)

// Row is one financial year of net overseas migration.
type Row struct {
	FinancialYear string  `json:"financial_year"`
	NetMigrant    float64 `json:"net_migrant"`
}

// Dataset is the ordered table read from one input file.
type Dataset struct {
	Source string `json:"source"`
	Rows   []Row  `json:"rows"`
}

// Years returns every FinancialYear label in file order.
func (d Dataset) Years() []string {
	return Years(d.Rows)
}

// Values returns every NetMigrant value aligned with Years.
func (d Dataset) Values() []float64 {
	return Values(d.Rows)
}

// Years returns the FinancialYear labels of rows, preserving order.
func Years(rows []Row) []string {
	years := make([]string, len(rows))
	for i, r := range rows {
		years[i] = r.FinancialYear
	}
	return years
}

// Values returns the NetMigrant values of rows, preserving order.
func Values(rows []Row) []float64 {
	vals := make([]float64, len(rows))
	for i, r := range rows {
		vals[i] = r.NetMigrant
	}
	return vals
}

// LocateOutlier returns the single row labelled label.
// Zero matches yield ErrMissingOutlier; several yield ErrAmbiguousOutlier.
func LocateOutlier(rows []Row, label string) (Row, error) {
	var (
		found Row
		count int
	)
	for _, r := range rows {
		if r.FinancialYear != label {
			continue
		}
		if count == 0 {
			found = r
		}
		count++
	}

	switch count {
	case 0:
		return Row{}, fmt.Errorf("%w: no row with %s %q", ErrMissingOutlier, ColumnFinancialYear, label)
	case 1:
		return found, nil
	default:
		return Row{}, fmt.Errorf("%w: %q appears %d times", ErrAmbiguousOutlier, label, count)
	}
}

// Partition returns the rows not labelled label, in their original order.
func Partition(rows []Row, label string) []Row {
	normal := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.FinancialYear != label {
			normal = append(normal, r)
		}
	}
	return normal
}
