package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sekelas/kelasku/internal/ledger"
)

type summaryState int

const (
	summaryStatePeriod summaryState = iota
	summaryStateLoading
	summaryStateShowing
)

type SummaryModel struct {
	CommonModel
	ledgerService *ledger.Service

	state        summaryState
	periodPicker PeriodPicker
	period       ledger.Period
	summary      ledger.Summary
	err          error
}

func NewSummaryModel(svc *ledger.Service) SummaryModel {
	return SummaryModel{
		ledgerService: svc,
		state:         summaryStatePeriod,
		periodPicker:  NewPeriodPicker(),
	}
}

func (m SummaryModel) Title() string { return "Kas Summary" }

func (m SummaryModel) ShortHelp() string {
	switch m.state {
	case summaryStateShowing:
		return "Esc: change period | r: refresh | q: menu"
	default:
		return "Esc: back | Enter: select"
	}
}

func (m SummaryModel) Init() tea.Cmd {
	return nil
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PeriodSelectedMsg:
		m.period = msg.Period
		m.state = summaryStateLoading

		return m, m.loadSummaryCmd()

	case loadSummaryMsg:
		m.state = summaryStateShowing
		m.summary = msg.summary
		m.err = msg.err

		return m, nil
	}

	switch m.state {
	case summaryStatePeriod:
		return m.updatePeriod(msg)
	case summaryStateShowing:
		return m.updateShowing(msg)
	}

	return m, nil
}

func (m SummaryModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.periodPicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.periodPicker, cmd = m.periodPicker.Update(msg)

	return m, cmd
}

func (m SummaryModel) updateShowing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = summaryStatePeriod
			m.periodPicker.Reset()

			return m, nil
		case "r":
			m.state = summaryStateLoading
			return m, m.loadSummaryCmd()
		case "q":
			return m, Back
		}
	}

	return m, nil
}

func (m SummaryModel) View() string {
	switch m.state {
	case summaryStatePeriod:
		return lipgloss.NewStyle().Padding(1).Render(m.periodPicker.View())

	case summaryStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Computing summary...")

	case summaryStateShowing:
		return m.viewSummary()
	}

	return ""
}

func (m SummaryModel) viewSummary() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	var b strings.Builder

	header := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("Kas %s %d", m.period.Month, m.period.Year),
	)
	b.WriteString(header + "\n\n")

	b.WriteString(fmt.Sprintf("Pemasukan:   %s\n", FormatAmount(m.summary.TotalIncome)))
	b.WriteString(fmt.Sprintf("Pengeluaran: %s\n", FormatAmount(m.summary.TotalExpense)))
	b.WriteString(fmt.Sprintf("Saldo:       %s\n", FormatAmount(m.summary.Balance)))
	b.WriteString(fmt.Sprintf("Hari ini:    %s\n\n", FormatAmount(m.summary.TodayIncome)))

	faint := lipgloss.NewStyle().Faint(true)

	for _, name := range m.ledgerService.Roster() {
		entry := m.summary.PerStudent[name]

		line := fmt.Sprintf("%-20s %12s", name, FormatAmount(entry.Total))
		if len(entry.Payments) == 0 {
			line += faint.Render("  belum bayar")
		}

		b.WriteString(line + "\n")
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

type loadSummaryMsg struct {
	summary ledger.Summary
	err     error
}

func (m SummaryModel) loadSummaryCmd() tea.Cmd {
	period := m.period
	svc := m.ledgerService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sum, err := svc.Summarize(ctx, period)

		return loadSummaryMsg{summary: sum, err: err}
	}
}
