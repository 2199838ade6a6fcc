// Package tracker owns the record and settings stores and exposes the
// operations the UIs call with raw form values.
package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"shiftlog/internal/calc"
	"shiftlog/internal/kv"
	"shiftlog/internal/record"
	"shiftlog/internal/settings"
)

const DateLayout = "2006-01-02"

var ErrMissingFields = errors.New("please fill in date, start, and end time")

// Entry is what the entry form holds. Allocated and cargo-late time are
// entered as separate hour and minute fields.
type Entry struct {
	Date         string
	Start        string
	End          string
	AllocHours   int
	AllocMinutes int
	CargoHours   int
	CargoMinutes int
}

func (e Entry) Allocated() float64 {
	return calc.ToDecimal(e.AllocHours, e.AllocMinutes)
}

func (e Entry) CargoLate() float64 {
	return calc.ToDecimal(e.CargoHours, e.CargoMinutes)
}

// EntryFromRecord fills form fields from a stored record.
func EntryFromRecord(r record.Record) Entry {
	ah, am := calc.FromDecimal(r.Allocated)
	ch, cm := calc.FromDecimal(r.CargoLate)
	return Entry{
		Date:         r.Date,
		Start:        r.Start,
		End:          r.End,
		AllocHours:   ah,
		AllocMinutes: am,
		CargoHours:   ch,
		CargoMinutes: cm,
	}
}

type Tracker struct {
	Records  *record.Store
	Settings *settings.Store
	logger   *log.Logger
}

// New wires both stores to backend and restores whatever was persisted.
func New(backend kv.Store, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.Default()
	}
	t := &Tracker{
		Records:  record.NewStore(backend, logger),
		Settings: settings.Load(backend, logger),
		logger:   logger,
	}
	t.Records.Restore()
	return t
}

// Preview runs the daily calculation for the form as it stands.
func (t *Tracker) Preview(e Entry) (calc.Shift, error) {
	return calc.Daily(e.Start, e.End, e.Allocated())
}

// SaveEntry validates the form, recomputes worked and balance and stores the
// record, replacing any record for the same date. Nothing is stored on error.
func (t *Tracker) SaveEntry(e Entry) (record.Record, error) {
	e.Date = strings.TrimSpace(e.Date)
	e.Start = strings.TrimSpace(e.Start)
	e.End = strings.TrimSpace(e.End)
	if e.Date == "" || e.Start == "" || e.End == "" {
		return record.Record{}, ErrMissingFields
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return record.Record{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", e.Date)
	}

	shift, err := t.Preview(e)
	if err != nil {
		return record.Record{}, err
	}

	r := record.Record{
		Date:      e.Date,
		Start:     e.Start,
		End:       e.End,
		Allocated: e.Allocated(),
		Worked:    shift.Worked,
		Balance:   shift.Balance,
		CargoLate: e.CargoLate(),
	}
	t.Records.Upsert(r)
	t.logger.Debug("saved record", "date", r.Date, "worked", r.Worked, "balance", r.Balance)
	return r, nil
}

// LoadEntry returns the form values for the record stored on date.
func (t *Tracker) LoadEntry(date string) (Entry, bool) {
	r, ok := t.Records.Find(date)
	if !ok {
		return Entry{}, false
	}
	return EntryFromRecord(r), true
}

// Week summarizes pay over [start, end] with the current settings.
func (t *Tracker) Week(start, end string) (calc.Pay, error) {
	return calc.Summarize(t.Records.Records(), start, end, t.Settings.Get().Rates())
}

// Clear wipes all records once confirm agrees. It reports whether anything
// was done.
func (t *Tracker) Clear(confirm func() bool) bool {
	if confirm == nil || !confirm() {
		return false
	}
	t.Records.Clear()
	t.logger.Info("cleared all records")
	return true
}
