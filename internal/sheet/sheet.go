// Package sheet writes records and pay summaries to xlsx workbooks.
package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"shiftlog/internal/calc"
	"shiftlog/internal/record"
)

const (
	RecordsSheet = "Records"
	PaySheet     = "Pay"
)

var headers = []interface{}{"Date", "Start", "End", "Allocated", "Worked", "Balance", "Cargo Late"}

// Summary is the pay breakdown for a date range.
type Summary struct {
	From string
	To   string
	Pay  calc.Pay
}

// Build lays out the records, and the summary when given, in a new
// workbook. The caller closes it.
func Build(recs []record.Record, summary *Summary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), RecordsSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeRecords(f, recs); err != nil {
		f.Close()
		return nil, err
	}
	if summary != nil {
		if err := writeSummary(f, summary); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// WriteFile builds the workbook and saves it at path.
func WriteFile(path string, recs []record.Record, summary *Summary) error {
	f, err := Build(recs, summary)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRecords(f *excelize.File, recs []record.Record) error {
	if err := f.SetSheetRow(RecordsSheet, "A1", &headers); err != nil {
		return err
	}
	for i, r := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Date, r.Start, r.End, r.Allocated, r.Worked, r.Balance, r.CargoLate}
		if err := f.SetSheetRow(RecordsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	if len(recs) == 0 {
		return nil
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), len(recs)+1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(RecordsSheet, "D2", last, style)
}

func writeSummary(f *excelize.File, s *Summary) error {
	if _, err := f.NewSheet(PaySheet); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"From", s.From},
		{"To", s.To},
		{"Days", s.Pay.Days},
		{"Worked hours", s.Pay.NormalHours},
		{"Overtime hours", s.Pay.TotalOvertime},
		{"Cargo late hours", s.Pay.TotalCargoLate},
		{"Work pay", s.Pay.WorkPay},
		{"Overtime pay", s.Pay.OverTimePay},
		{"Night pay", s.Pay.NightTimePay},
		{"Cargo late pay", s.Pay.CargoLatePay},
		{"Total pay", s.Pay.TotalPay},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(PaySheet, cell, &rows[i]); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}
	return f.SetCellStyle(PaySheet, "B4", fmt.Sprintf("B%d", len(rows)), style)
}
