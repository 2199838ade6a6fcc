package internal

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"shiftlog/internal/calc"
	"shiftlog/internal/format"
	"shiftlog/internal/record"
	"shiftlog/internal/tracker"
)

const (
	TabEnter = iota
	TabCalculate
)

// Entry tab inputs.
const (
	fieldDate = iota
	fieldStart
	fieldEnd
	fieldAllocH
	fieldAllocM
	fieldCargoH
	fieldCargoM
	entryFieldCount
)

// Calculate tab inputs.
const (
	fieldFrom = iota
	fieldTo
	fieldRate
	fieldMultiplier
	fieldNight
	calcFieldCount
)

var entryLabels = [entryFieldCount]string{"Date", "Start", "End", "Allocated h", "Allocated m", "Cargo late h", "Cargo late m"}

var calcLabels = [calcFieldCount]string{"Start date", "End date", "Hourly rate", "Overtime x", "Night pay/h"}

type Model struct {
	Tab int

	EntryInputs [entryFieldCount]string
	// EntryFocus == entryFieldCount means the record list has focus.
	EntryFocus int
	Worked     string
	Balance    string

	CalcInputs [calcFieldCount]string
	CalcFocus  int
	Pay        calc.Pay

	Records       []record.Record
	SelectedIndex int

	ConfirmClear bool
	Status       string
	Err          error

	tracker    *tracker.Tracker
	exportPath string
}

func NewModel(tr *tracker.Tracker, exportPath string) *Model {
	m := &Model{
		Worked:     format.To2(0),
		Balance:    format.To2(0),
		tracker:    tr,
		exportPath: exportPath,
		Records:    tr.Records.Records(),
	}
	tr.Records.OnChange(func(recs []record.Record) {
		m.Records = recs
		if m.SelectedIndex >= len(recs) {
			m.SelectedIndex = max(len(recs)-1, 0)
		}
	})

	m.EntryInputs[fieldDate] = time.Now().Format(tracker.DateLayout)

	st := tr.Settings.Get()
	m.CalcInputs[fieldRate] = trimFloat(st.HourlyRate)
	m.CalcInputs[fieldMultiplier] = trimFloat(st.OvertimeMultiplier)
	m.CalcInputs[fieldNight] = trimFloat(st.NightPayRate)
	return m
}

func trimFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	if m.ConfirmClear {
		return m.confirmView()
	}
	if m.Tab == TabCalculate {
		return m.calculateView()
	}
	return m.enterView()
}

func (m *Model) SelectedRecord() *record.Record {
	if m.SelectedIndex >= 0 && m.SelectedIndex < len(m.Records) {
		return &m.Records[m.SelectedIndex]
	}
	return nil
}

func (m *Model) entry() tracker.Entry {
	return tracker.Entry{
		Date:         m.EntryInputs[fieldDate],
		Start:        m.EntryInputs[fieldStart],
		End:          m.EntryInputs[fieldEnd],
		AllocHours:   atoi(m.EntryInputs[fieldAllocH]),
		AllocMinutes: atoi(m.EntryInputs[fieldAllocM]),
		CargoHours:   atoi(m.EntryInputs[fieldCargoH]),
		CargoMinutes: atoi(m.EntryInputs[fieldCargoM]),
	}
}

func atoi(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// recalc refreshes worked and balance. Incomplete or unparsable times keep
// the previous values on screen.
func (m *Model) recalc() {
	shift, err := m.tracker.Preview(m.entry())
	if err != nil {
		return
	}
	m.Worked = format.To2(shift.Worked)
	m.Balance = format.To2(shift.Balance)
}

// LoadRecord copies a stored record into the entry form.
func (m *Model) LoadRecord(r record.Record) {
	e := tracker.EntryFromRecord(r)
	m.EntryInputs[fieldDate] = e.Date
	m.EntryInputs[fieldStart] = e.Start
	m.EntryInputs[fieldEnd] = e.End
	m.EntryInputs[fieldAllocH] = strconv.Itoa(e.AllocHours)
	m.EntryInputs[fieldAllocM] = strconv.Itoa(e.AllocMinutes)
	m.EntryInputs[fieldCargoH] = strconv.Itoa(e.CargoHours)
	m.EntryInputs[fieldCargoM] = strconv.Itoa(e.CargoMinutes)
	m.Worked = format.To2(r.Worked)
	m.Balance = format.To2(r.Balance)
	m.EntryFocus = fieldDate
}

func (m *Model) Save() {
	r, err := m.tracker.SaveEntry(m.entry())
	if err != nil {
		m.fail(err)
		return
	}
	m.Worked = format.To2(r.Worked)
	m.Balance = format.To2(r.Balance)
	m.ok(fmt.Sprintf("Saved %s", r.Date))
}

func (m *Model) Calculate() {
	p, err := m.tracker.Week(m.CalcInputs[fieldFrom], m.CalcInputs[fieldTo])
	if err != nil {
		m.fail(err)
		return
	}
	m.Pay = p
	m.ok(fmt.Sprintf("%d day(s) in range", p.Days))
}

func (m *Model) Export() {
	text, err := m.tracker.Records.ExportToText()
	if err != nil {
		m.fail(err)
		return
	}
	if err := os.WriteFile(m.exportPath, []byte(text), 0644); err != nil {
		m.fail(fmt.Errorf("write %s: %w", m.exportPath, err))
		return
	}
	m.ok(fmt.Sprintf("Exported %d record(s) to %s", len(m.Records), m.exportPath))
}

func (m *Model) Import() {
	data, err := os.ReadFile(m.exportPath)
	if err != nil {
		m.fail(fmt.Errorf("read %s: %w", m.exportPath, err))
		return
	}
	if err := m.tracker.Records.ImportFromText(string(data)); err != nil {
		if errors.Is(err, record.ErrInvalidFormat) {
			err = record.ErrInvalidFormat
		}
		m.fail(err)
		return
	}
	m.SelectedIndex = 0
	m.ok(fmt.Sprintf("Imported %d record(s) from %s", len(m.Records), m.exportPath))
}

// clearAll wipes the records and zeroes every derived display field.
func (m *Model) clearAll() {
	m.tracker.Clear(func() bool { return true })
	m.Worked = format.To2(0)
	m.Balance = format.To2(0)
	m.Pay = calc.Pay{}
	m.SelectedIndex = 0
	m.ok("All records cleared")
}

func (m *Model) ok(status string) {
	m.Status = status
	m.Err = nil
}

func (m *Model) fail(err error) {
	m.Status = ""
	m.Err = err
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ConfirmClear {
		return m.handleConfirmInput(msg)
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "f1":
		m.Tab = TabEnter
		return m, nil
	case "f2":
		m.Tab = TabCalculate
		return m, nil
	case "ctrl+t":
		m.Tab = 1 - m.Tab
		return m, nil
	case "ctrl+x":
		m.ConfirmClear = true
		return m, nil
	case "ctrl+e":
		m.Export()
		return m, nil
	case "ctrl+o":
		m.Import()
		return m, nil
	}

	if m.Tab == TabCalculate {
		return m.handleCalcInput(msg)
	}
	return m.handleEntryInput(msg)
}

func (m *Model) handleConfirmInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.ConfirmClear = false
		m.clearAll()
	default:
		m.ConfirmClear = false
	}
	return m, nil
}

func (m *Model) handleEntryInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	listFocused := m.EntryFocus == entryFieldCount

	switch msg.String() {
	case "tab", "down":
		if listFocused && msg.String() == "down" {
			if m.SelectedIndex < len(m.Records)-1 {
				m.SelectedIndex++
			}
			return m, nil
		}
		m.EntryFocus = (m.EntryFocus + 1) % (entryFieldCount + 1)
	case "shift+tab", "up":
		if listFocused && msg.String() == "up" {
			if m.SelectedIndex > 0 {
				m.SelectedIndex--
			}
			return m, nil
		}
		m.EntryFocus = (m.EntryFocus + entryFieldCount) % (entryFieldCount + 1)
	case "enter":
		if listFocused {
			if r := m.SelectedRecord(); r != nil {
				m.LoadRecord(*r)
			}
			return m, nil
		}
		m.Save()
	case "backspace":
		if listFocused {
			return m, nil
		}
		in := &m.EntryInputs[m.EntryFocus]
		if len(*in) > 0 {
			*in = (*in)[:len(*in)-1]
			m.recalcIfDailyField()
		}
	default:
		if listFocused {
			return m, nil
		}
		runes := []rune(msg.String())
		if len(runes) == 1 && acceptsEntryRune(m.EntryFocus, runes[0]) {
			m.EntryInputs[m.EntryFocus] += string(runes[0])
			m.recalcIfDailyField()
		}
	}
	return m, nil
}

func (m *Model) recalcIfDailyField() {
	switch m.EntryFocus {
	case fieldStart, fieldEnd, fieldAllocH, fieldAllocM:
		m.recalc()
	}
}

func acceptsEntryRune(field int, r rune) bool {
	switch field {
	case fieldDate:
		return (r >= '0' && r <= '9') || r == '-'
	case fieldStart, fieldEnd:
		return (r >= '0' && r <= '9') || r == ':'
	default:
		return r >= '0' && r <= '9'
	}
}

func (m *Model) handleCalcInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.CalcFocus = (m.CalcFocus + 1) % calcFieldCount
	case "shift+tab", "up":
		m.CalcFocus = (m.CalcFocus + calcFieldCount - 1) % calcFieldCount
	case "enter":
		m.Calculate()
	case "backspace":
		in := &m.CalcInputs[m.CalcFocus]
		if len(*in) > 0 {
			*in = (*in)[:len(*in)-1]
			m.applySetting()
		}
	default:
		runes := []rune(msg.String())
		if len(runes) != 1 {
			break
		}
		r := runes[0]
		switch m.CalcFocus {
		case fieldFrom, fieldTo:
			if (r >= '0' && r <= '9') || r == '-' {
				m.CalcInputs[m.CalcFocus] += string(r)
			}
		default:
			if (r >= '0' && r <= '9') || r == '.' {
				m.CalcInputs[m.CalcFocus] += string(r)
				m.applySetting()
			}
		}
	}
	return m, nil
}

// applySetting persists the focused settings field on every edit.
func (m *Model) applySetting() {
	v := m.CalcInputs[m.CalcFocus]
	switch m.CalcFocus {
	case fieldRate:
		m.tracker.Settings.SetHourlyRate(v)
	case fieldMultiplier:
		m.tracker.Settings.SetOvertimeMultiplier(v)
	case fieldNight:
		m.tracker.Settings.SetNightPayRate(v)
	}
}
