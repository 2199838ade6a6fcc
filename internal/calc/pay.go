package calc

import (
	"errors"
	"strings"

	"shiftlog/internal/record"
)

var (
	ErrMissingRange  = errors.New("please select start and end dates")
	ErrInvertedRange = errors.New("end date must be on or after start date")
)

// Rates are the pay settings applied by Summarize.
type Rates struct {
	HourlyRate         float64
	OvertimeMultiplier float64
	NightPayRate       float64
}

// Pay is the breakdown for a date range. All values are hours or money
// units, unrounded.
type Pay struct {
	Days           int
	TotalWorked    float64
	TotalOvertime  float64
	TotalCargoLate float64
	NormalHours    float64

	WorkPay      float64
	OverTimePay  float64
	NightTimePay float64
	CargoLatePay float64
	TotalPay     float64
}

// Summarize sums the records dated within [startDate, endDate] and applies
// the pay formulas. Dates compare as YYYY-MM-DD strings. Night pay is a flat
// supplement on every normal hour.
func Summarize(records []record.Record, startDate, endDate string, r Rates) (Pay, error) {
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)
	if startDate == "" || endDate == "" {
		return Pay{}, ErrMissingRange
	}
	if endDate < startDate {
		return Pay{}, ErrInvertedRange
	}

	var p Pay
	for _, rec := range records {
		if rec.Date < startDate || rec.Date > endDate {
			continue
		}
		p.Days++
		p.TotalWorked += rec.Worked
		p.TotalOvertime += rec.Balance
		p.TotalCargoLate += rec.CargoLate
	}

	// worked already includes the overtime portion
	p.NormalHours = p.TotalWorked - p.TotalOvertime

	p.WorkPay = p.NormalHours * r.HourlyRate
	p.OverTimePay = p.TotalOvertime * r.HourlyRate * r.OvertimeMultiplier
	p.NightTimePay = p.NormalHours * r.NightPayRate
	p.CargoLatePay = p.TotalCargoLate * r.HourlyRate
	p.TotalPay = p.WorkPay + p.OverTimePay + p.NightTimePay + p.CargoLatePay
	return p, nil
}
