package view

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sekelas/kelasku/internal/ledger"
)

// PeriodChoice is a predefined or custom reporting period selection.
type PeriodChoice int

const (
	PeriodThisMonth PeriodChoice = 0
	PeriodLastMonth PeriodChoice = 1
	PeriodCustom    PeriodChoice = 2
)

func (p PeriodChoice) String() string {
	switch p {
	case PeriodThisMonth:
		return "This Month"
	case PeriodLastMonth:
		return "Last Month"
	case PeriodCustom:
		return "Custom Period"
	}

	return "Unknown"
}

// PeriodSelectedMsg is emitted when the user has selected a valid period.
type PeriodSelectedMsg struct {
	Period ledger.Period
}

type periodState int

const (
	periodStateSelect periodState = iota
	periodStateCustom
)

// PeriodPicker is a reusable component for selecting a kas reporting period.
type PeriodPicker struct {
	state    periodState
	selected PeriodChoice

	monthInput textinput.Model
	yearInput  textinput.Model
	focusIndex int

	err error
}

func NewPeriodPicker() PeriodPicker {
	mi := textinput.New()
	mi.Placeholder = "Agustus"
	mi.CharLimit = 12
	mi.Width = 14
	mi.Prompt = "Month: "

	yi := textinput.New()
	yi.Placeholder = strconv.Itoa(time.Now().Year())
	yi.CharLimit = 4
	yi.Width = 6
	yi.Prompt = "Year:  "

	return PeriodPicker{
		state:      periodStateSelect,
		selected:   PeriodThisMonth,
		monthInput: mi,
		yearInput:  yi,
	}
}

func (m PeriodPicker) Init() tea.Cmd {
	return nil
}

func (m PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case periodStateSelect:
			return m.updateSelect(keyMsg)
		case periodStateCustom:
			return m.updateCustom(keyMsg)
		}
	}

	if m.state == periodStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m PeriodPicker) updateSelect(msg tea.KeyMsg) (PeriodPicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > PeriodThisMonth {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < PeriodCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == PeriodCustom {
			m.state = periodStateCustom
			m.monthInput.Focus()
			m.focusIndex = 0

			return m, textinput.Blink
		}

		now := time.Now()
		if m.selected == PeriodLastMonth {
			now = now.AddDate(0, -1, 0)
		}

		period := ledger.PeriodOf(now)

		return m, func() tea.Msg {
			return PeriodSelectedMsg{Period: period}
		}
	}

	return m, nil
}

func (m PeriodPicker) updateCustom(msg tea.KeyMsg) (PeriodPicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.monthInput.Blur()
		m.yearInput.Blur()

		if m.focusIndex == 0 {
			m.monthInput.Focus()
			return m, textinput.Blink
		}

		m.yearInput.Focus()

		return m, textinput.Blink

	case "enter":
		month := m.monthInput.Value()
		if !ledger.ValidMonth(month) {
			m.err = fmt.Errorf("unknown month %q", month)
			return m, nil
		}

		year, err := strconv.Atoi(m.yearInput.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid year")
			return m, nil
		}

		m.err = nil

		return m, func() tea.Msg {
			return PeriodSelectedMsg{Period: ledger.Period{Month: month, Year: year}}
		}

	case "esc":
		m.state = periodStateSelect
		m.err = nil

		return m, nil
	}

	return m, nil
}

func (m PeriodPicker) updateInputs(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	var cmds []tea.Cmd
	var c tea.Cmd

	m.monthInput, c = m.monthInput.Update(msg)
	cmds = append(cmds, c)
	m.yearInput, c = m.yearInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m PeriodPicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == periodStateCustom {
		return fmt.Sprintf(
			"Enter Custom Period:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.monthInput.View(),
			m.yearInput.View(),
			errStr,
		)
	}

	s := "Select Period:\n\n"
	for i := PeriodThisMonth; i <= PeriodCustom; i++ {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, i.String())
	}

	s += "\n(Enter to select, Esc to back)"

	return s + errStr
}

// IsSelecting returns true if the picker is in the selection state (not custom input).
func (m PeriodPicker) IsSelecting() bool {
	return m.state == periodStateSelect
}

// Reset returns the picker to its initial selection state.
func (m *PeriodPicker) Reset() {
	m.state = periodStateSelect
	m.selected = PeriodThisMonth
	m.err = nil
	m.monthInput.SetValue("")
	m.yearInput.SetValue("")
}
