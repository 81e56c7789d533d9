// Command validate checks the configured input table before a chart run:
// schema, label uniqueness, outlier selection, numeric sanity, and a dry-run
// figure build. It reads the same environment variables as nomchart and
// writes nothing.
//
// Usage:
//
//	NOM_CSV_PATH=vic_nom_last5.csv go run ./cmd/validate
package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/couchcryptid/nom-chart/internal/adapter/table"
	"github.com/couchcryptid/nom-chart/internal/chart"
	"github.com/couchcryptid/nom-chart/internal/config"
	"github.com/couchcryptid/nom-chart/internal/domain"
	"github.com/couchcryptid/nom-chart/internal/observability"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if code := run(cfg, table.Open(cfg.InputPath, cfg.InputSheet, logger), os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(cfg *config.Config, ext table.Extractor, w io.Writer) int {
	fmt.Fprintln(w, "=== Net Overseas Migration Table Validation ===")
	fmt.Fprintln(w)

	ds, err := ext.Extract(context.Background())
	if err != nil {
		fmt.Fprintf(w, "FATAL: load %s: %v\n", cfg.InputPath, err)
		return 1
	}

	phases := []*phase{
		validateRows(ds),
		validateUniqueYears(ds),
		validateOutlier(ds, cfg.Chart.OutlierLabel),
		validateValues(ds),
		validateBuild(ds, cfg.Chart),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-32s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Rows: %d from %s\n", len(ds.Rows), ds.Source)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

func validateRows(ds domain.Dataset) *phase {
	p := &phase{name: "Data rows present"}
	if len(ds.Rows) == 0 {
		p.errorf("table has a header but no data rows")
	}
	return p
}

func validateUniqueYears(ds domain.Dataset) *phase {
	p := &phase{name: "Financial years unique"}
	seen := make(map[string]int, len(ds.Rows))
	for i, r := range ds.Rows {
		if first, ok := seen[r.FinancialYear]; ok {
			p.errorf("%q at row %d repeats row %d", r.FinancialYear, i+1, first+1)
			continue
		}
		seen[r.FinancialYear] = i
	}
	return p
}

func validateOutlier(ds domain.Dataset, label string) *phase {
	p := &phase{name: "Outlier year " + label}
	if _, err := domain.LocateOutlier(ds.Rows, label); err != nil {
		p.errorf("%v", err)
	}
	return p
}

func validateValues(ds domain.Dataset) *phase {
	p := &phase{name: "Net migrant values finite"}
	for i, r := range ds.Rows {
		if math.IsNaN(r.NetMigrant) || math.IsInf(r.NetMigrant, 0) {
			p.errorf("row %d (%s): %v", i+1, r.FinancialYear, r.NetMigrant)
		}
	}
	return p
}

func validateBuild(ds domain.Dataset, opts chart.Options) *phase {
	p := &phase{name: "Figure builds"}
	fig, err := chart.Build(ds.Rows, opts)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	if _, _, err := fig.JSON(); err != nil {
		p.errorf("%v", err)
	}
	return p
}
