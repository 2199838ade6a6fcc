package sheet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shiftlog/internal/calc"
	"shiftlog/internal/record"
)

func TestWriteFile(t *testing.T) {
	recs := []record.Record{
		{Date: "2024-01-02", Start: "22:00", End: "06:00", Worked: 8, Balance: 8},
		{Date: "2024-01-01", Start: "09:00", End: "18:00", Allocated: 8, Worked: 9, Balance: 1, CargoLate: 0.5},
	}
	summary := &Summary{From: "2024-01-01", To: "2024-01-02", Pay: calc.Pay{Days: 2, TotalPay: 196}}

	path := filepath.Join(t.TempDir(), "records.xlsx")
	require.NoError(t, WriteFile(path, recs, summary))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(RecordsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Start", "End", "Allocated", "Worked", "Balance", "Cargo Late"}, rows[0])
	assert.Equal(t, "2024-01-02", rows[1][0])
	assert.Equal(t, "2024-01-01", rows[2][0])

	worked, err := f.GetCellValue(RecordsSheet, "E3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "9", worked)

	total, err := f.GetCellValue(PaySheet, "B11", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "196", total)
}

func TestBuildWithoutSummary(t *testing.T) {
	f, err := Build(nil, nil)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{RecordsSheet}, f.GetSheetList())
}
