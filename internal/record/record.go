// Package record holds the daily work record and the store that keeps one
// record per date, newest first.
package record

import (
	"fmt"
	"math"

	"shiftlog/internal/format"
)

// Record is one calendar day of work. Date is the unique key.
type Record struct {
	Date      string  `json:"date"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Allocated float64 `json:"allocated"`
	Worked    float64 `json:"worked"`
	Balance   float64 `json:"balance"`
	CargoLate float64 `json:"cargoLate"`
}

// Line renders the record the way the list views show it.
func (r Record) Line() string {
	return fmt.Sprintf("%s | %s-%s | Worked: %sh | Allocated: %sh | Balance: %sh | Cargo: %sh",
		r.Date, r.Start, r.End,
		format.To2(r.Worked), format.To2(r.Allocated), format.To2(r.Balance), format.To2(r.CargoLate))
}

// Normalize replaces non-finite hour values with zero, in place.
func Normalize(recs []Record) {
	for i := range recs {
		r := &recs[i]
		r.Worked = finite(r.Worked)
		r.Allocated = finite(r.Allocated)
		r.Balance = finite(r.Balance)
		r.CargoLate = finite(r.CargoLate)
	}
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
