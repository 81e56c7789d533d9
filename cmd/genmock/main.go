// Command genmock converts a net overseas migration table into matching CSV
// and XLSX fixtures. It loads the input with the same readers the chart run
// uses, so both fixtures describe exactly the rows the pipeline would see.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -in vic_nom_last5.csv \
//	  -csv-out testdata/vic_nom_last5.csv \
//	  -xlsx-out testdata/vic_nom_last5.xlsx
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"strconv"

	"github.com/couchcryptid/nom-chart/internal/adapter/table"
	"github.com/couchcryptid/nom-chart/internal/domain"
	"github.com/couchcryptid/nom-chart/internal/fileutil"
	"github.com/xuri/excelize/v2"
)

const fixtureSheet = "Sheet1"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in := flag.String("in", "", "input table (.csv or .xlsx)")
	sheet := flag.String("sheet", "", "worksheet name for .xlsx input")
	csvOut := flag.String("csv-out", "", "output path for the CSV fixture")
	xlsxOut := flag.String("xlsx-out", "", "output path for the XLSX fixture")
	flag.Parse()

	if *in == "" || (*csvOut == "" && *xlsxOut == "") {
		flag.Usage()
		return fmt.Errorf("missing required flags: -in and at least one of -csv-out, -xlsx-out")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ds, err := table.Open(*in, *sheet, logger).Extract(context.Background())
	if err != nil {
		return err
	}
	log.Printf("%s: %d rows", ds.Source, len(ds.Rows))

	if *csvOut != "" {
		data, err := encodeCSV(ds.Rows)
		if err != nil {
			return fmt.Errorf("encode csv: %w", err)
		}
		if err := fileutil.WriteAtomic(*csvOut, data); err != nil {
			return err
		}
		log.Printf("wrote %s", *csvOut)
	}
	if *xlsxOut != "" {
		data, err := encodeXLSX(ds.Rows)
		if err != nil {
			return fmt.Errorf("encode xlsx: %w", err)
		}
		if err := fileutil.WriteAtomic(*xlsxOut, data); err != nil {
			return err
		}
		log.Printf("wrote %s", *xlsxOut)
	}
	return nil
}

func encodeCSV(rows []domain.Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{domain.ColumnFinancialYear, domain.ColumnNetMigrant}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{r.FinancialYear, strconv.FormatFloat(r.NetMigrant, 'f', -1, 64)}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func encodeXLSX(rows []domain.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header := []any{domain.ColumnFinancialYear, domain.ColumnNetMigrant}
	if err := f.SetSheetRow(fixtureSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{r.FinancialYear, r.NetMigrant}
		if err := f.SetSheetRow(fixtureSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
