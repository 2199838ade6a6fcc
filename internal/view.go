package internal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shiftlog/internal/format"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 2)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Bold(true).
			Padding(0, 2)

	recordItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	recordItemSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("69")).
			Bold(true)

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	boxFocusedStyle = boxStyle.
			BorderForeground(lipgloss.Color("170"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	inputInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

func (m *Model) tabsView() string {
	names := []string{"F1 Enter", "F2 Calculate"}
	tabs := make([]string, len(names))
	for i, n := range names {
		if i == m.Tab {
			tabs[i] = tabActiveStyle.Render(n)
		} else {
			tabs[i] = tabStyle.Render(n)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) statusView() string {
	if m.Err != nil {
		return errorStyle.Render(m.Err.Error())
	}
	return statusStyle.Render(m.Status)
}

func inputLine(label, value string, focused bool) string {
	marker := "  "
	if focused {
		marker = "→ "
	}
	l := fmt.Sprintf("%s%-13s", marker, label+":")
	if focused {
		return inputStyle.Render(l) + inputStyle.Render(value+"█")
	}
	return inputInactiveStyle.Render(l) + value
}

func (m *Model) enterView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(100).Render("Work Hours"))
	sb.WriteString("\n")
	sb.WriteString(m.tabsView())
	sb.WriteString("\n\n")

	boxes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.entryFormView(),
		" ",
		m.recordListView(m.EntryFocus == entryFieldCount),
	)
	sb.WriteString(boxes)
	sb.WriteString("\n")
	sb.WriteString(m.statusView())
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Field: Tab/Up/Down | Save: Enter | Load: Enter on list | Export: ctrl+e | Import: ctrl+o | Clear: ctrl+x | Quit: esc"))

	return sb.String()
}

func (m *Model) entryFormView() string {
	var sb strings.Builder
	for i := 0; i < entryFieldCount; i++ {
		sb.WriteString(inputLine(entryLabels[i], m.EntryInputs[i], m.EntryFocus == i))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Worked:      %s\n", valueStyle.Render(m.Worked)))
	sb.WriteString(fmt.Sprintf("  Balance:     %s", valueStyle.Render(m.Balance)))

	style := boxStyle
	if m.EntryFocus < entryFieldCount {
		style = boxFocusedStyle
	}
	return style.Width(34).Height(16).Render(sb.String())
}

func (m *Model) recordListView(focused bool) string {
	var sb strings.Builder
	sb.WriteString("Records\n\n")

	if len(m.Records) == 0 {
		sb.WriteString(inactiveStyle.Render("No records yet."))
	}
	for i, r := range m.Records {
		line := r.Line()
		if focused && i == m.SelectedIndex {
			sb.WriteString(recordItemSelectedStyle.Render(line))
		} else {
			sb.WriteString(recordItemStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	style := boxStyle
	if focused {
		style = boxFocusedStyle
	}
	return style.Width(100).Render(sb.String())
}

func (m *Model) calculateView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(100).Render("Work Hours"))
	sb.WriteString("\n")
	sb.WriteString(m.tabsView())
	sb.WriteString("\n\n")

	boxes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.calcFormView(),
		" ",
		m.payView(),
	)
	sb.WriteString(boxes)
	sb.WriteString("\n")
	sb.WriteString(m.recordListView(false))
	sb.WriteString("\n")
	sb.WriteString(m.statusView())
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Field: Tab/Up/Down | Calculate: Enter | Clear: ctrl+x | Quit: esc"))

	return sb.String()
}

func (m *Model) calcFormView() string {
	var sb strings.Builder
	for i := 0; i < calcFieldCount; i++ {
		sb.WriteString(inputLine(calcLabels[i], m.CalcInputs[i], m.CalcFocus == i))
		sb.WriteString("\n")
	}
	return boxFocusedStyle.Width(34).Height(9).Render(sb.String())
}

func (m *Model) payView() string {
	p := m.Pay
	lines := []struct {
		label string
		value float64
	}{
		{"Worked hours", p.NormalHours},
		{"Overtime", p.TotalOvertime},
		{"Cargo late", p.TotalCargoLate},
		{"Work pay", p.WorkPay},
		{"Overtime pay", p.OverTimePay},
		{"Night pay", p.NightTimePay},
		{"Cargo pay", p.CargoLatePay},
	}

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("%-14s %s\n", l.label, valueStyle.Render(format.To2(l.value))))
	}
	sb.WriteString(fmt.Sprintf("%-14s %s", "Total pay", totalStyle.Render(format.To2(p.TotalPay))))

	return boxStyle.Width(34).Height(9).Render(sb.String())
}

func (m *Model) confirmView() string {
	form := fmt.Sprintf("%s\n\n%s",
		errorStyle.Render(fmt.Sprintf("Delete all %d record(s)?", len(m.Records))),
		helpStyle.Render("y: Delete everything | any other key: Cancel"),
	)
	return lipgloss.Place(
		100, 24,
		lipgloss.Center, lipgloss.Center,
		boxStyle.Width(50).Render(form),
	)
}
