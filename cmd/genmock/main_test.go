package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/nom-chart/internal/adapter/table"
	"github.com/couchcryptid/nom-chart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureRows() []domain.Row {
	return []domain.Row{
		{FinancialYear: "2019-20", NetMigrant: 100000},
		{FinancialYear: "2020-21", NetMigrant: -30000.5},
		{FinancialYear: "2021-22", NetMigrant: 50000},
	}
}

func TestEncodeCSV(t *testing.T) {
	data, err := encodeCSV(fixtureRows())
	require.NoError(t, err)
	assert.Equal(t, "FinancialYear,NetMigrant\n2019-20,100000\n2020-21,-30000.5\n2021-22,50000\n", string(data))
}

func TestFixturesLoadBack(t *testing.T) {
	dir := t.TempDir()
	csvData, err := encodeCSV(fixtureRows())
	require.NoError(t, err)
	xlsxData, err := encodeXLSX(fixtureRows())
	require.NoError(t, err)

	csvPath := filepath.Join(dir, "nom.csv")
	xlsxPath := filepath.Join(dir, "nom.xlsx")
	require.NoError(t, os.WriteFile(csvPath, csvData, 0o600))
	require.NoError(t, os.WriteFile(xlsxPath, xlsxData, 0o600))

	for _, path := range []string{csvPath, xlsxPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			ds, err := table.Open(path, "", slog.Default()).Extract(context.Background())
			require.NoError(t, err)
			assert.Equal(t, fixtureRows(), ds.Rows)
		})
	}
}
