package table

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/nom-chart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCSVReader_Extract(t *testing.T) {
	path := writeFile(t, "nom.csv", "FinancialYear,NetMigrant\n2019-20,54650\n2020-21,-73360\n2021-22,4230\n")

	ds, err := NewCSVReader(path, slog.Default()).Extract(context.Background())
	require.NoError(t, err)

	assert.Equal(t, path, ds.Source)
	assert.Equal(t, []domain.Row{
		{FinancialYear: "2019-20", NetMigrant: 54650},
		{FinancialYear: "2020-21", NetMigrant: -73360},
		{FinancialYear: "2021-22", NetMigrant: 4230},
	}, ds.Rows)
}

func TestCSVReader_ExtraColumnsAndReorderedHeader(t *testing.T) {
	path := writeFile(t, "nom.csv", "State,NetMigrant,FinancialYear\nVIC,100,2020-21\nVIC,200.5,2019-20\n")

	ds, err := NewCSVReader(path, slog.Default()).Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2020-21", "2019-20"}, ds.Years())
	assert.Equal(t, []float64{100, 200.5}, ds.Values())
}

func TestCSVReader_ByteOrderMarkAndWhitespace(t *testing.T) {
	path := writeFile(t, "nom.csv", "\ufeffFinancialYear, NetMigrant\r\n 2020-21 , 30000 \r\n\r\n2021-22,1\r\n")

	ds, err := NewCSVReader(path, slog.Default()).Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2020-21", "2021-22"}, ds.Years())
	assert.Equal(t, []float64{30000, 1}, ds.Values())
}

func TestCSVReader_HeaderOnly(t *testing.T) {
	path := writeFile(t, "nom.csv", "FinancialYear,NetMigrant\n")

	ds, err := NewCSVReader(path, slog.Default()).Extract(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ds.Rows)
}

func TestCSVReader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
		msg     string
	}{
		{name: "empty file", content: "", want: domain.ErrDataLoad, msg: "no header row"},
		{name: "missing year column", content: "Year,NetMigrant\n2020-21,1\n", want: domain.ErrMissingColumn, msg: "FinancialYear"},
		{name: "missing value column", content: "FinancialYear,Net\n2020-21,1\n", want: domain.ErrMissingColumn, msg: "NetMigrant"},
		{name: "non-numeric value", content: "FinancialYear,NetMigrant\n2020-21,lots\n", want: domain.ErrDataLoad, msg: "line 2"},
		{name: "NaN value", content: "FinancialYear,NetMigrant\n2019-20,NaN\n2020-21,30000\n", want: domain.ErrDataLoad, msg: "line 2"},
		{name: "infinite value", content: "FinancialYear,NetMigrant\n2020-21,30000\n2021-22,Inf\n", want: domain.ErrDataLoad, msg: "line 3"},
		{name: "negative infinity", content: "FinancialYear,NetMigrant\n2020-21,-Infinity\n", want: domain.ErrDataLoad, msg: "line 2"},
		{name: "empty value", content: "FinancialYear,NetMigrant\n2019-20,1\n2020-21,\n", want: domain.ErrDataLoad, msg: "line 3"},
		{name: "empty year", content: "FinancialYear,NetMigrant\n,1\n", want: domain.ErrDataLoad, msg: "empty FinancialYear"},
		{name: "ragged row", content: "FinancialYear,NetMigrant\n2020-21,1,extra\n", want: domain.ErrDataLoad},
		{name: "bare quote", content: "FinancialYear,NetMigrant\n\"2020-21,1\n", want: domain.ErrDataLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "nom.csv", tt.content)
			_, err := NewCSVReader(path, slog.Default()).Extract(context.Background())
			require.ErrorIs(t, err, tt.want)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestCSVReader_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.csv")
	_, err := NewCSVReader(path, slog.Default()).Extract(context.Background())
	require.ErrorIs(t, err, domain.ErrDataLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_SelectsReaderByExtension(t *testing.T) {
	assert.IsType(t, &CSVReader{}, Open("vic_nom_last5.csv", "", slog.Default()))
	assert.IsType(t, &CSVReader{}, Open("data", "", slog.Default()))
	assert.IsType(t, &XLSXReader{}, Open("vic_nom.XLSX", "", slog.Default()))
	assert.IsType(t, &XLSXReader{}, Open("vic_nom.xlsm", "Table 1", slog.Default()))
}
