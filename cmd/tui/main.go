package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/sekelas/kelasku/cmd/tui/internal/view"
	"github.com/sekelas/kelasku/internal/confession"
	confessionStore "github.com/sekelas/kelasku/internal/confession/store"
	"github.com/sekelas/kelasku/internal/config"
	"github.com/sekelas/kelasku/internal/database"
	"github.com/sekelas/kelasku/internal/export"
	"github.com/sekelas/kelasku/internal/ledger"
	ledgerStore "github.com/sekelas/kelasku/internal/ledger/store"
)

type model struct {
	ledgerService     *ledger.Service
	confessionService *confession.Service
	exportService     *export.Service

	currentView View

	summaryView     view.SummaryModel
	paymentsView    view.PaymentsModel
	expensesView    view.ExpensesModel
	confessionsView view.ConfessionsModel
	exportView      view.ExportModel
}

type View int

const (
	ViewMenu        View = 0
	ViewSummary     View = 1
	ViewPayments    View = 2
	ViewExpenses    View = 3
	ViewConfessions View = 4
	ViewExport      View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	kasStore := ledgerStore.New(db)
	ledgerSvc := ledger.NewService(kasStore, kasStore, cfg.Roster)
	confessionSvc := confession.NewService(confessionStore.New(db))
	exportSvc := export.NewService(ledgerSvc)

	return model{
		ledgerService:     ledgerSvc,
		confessionService: confessionSvc,
		exportService:     exportSvc,
		currentView:       ViewMenu,
		summaryView:       view.NewSummaryModel(ledgerSvc),
		paymentsView:      view.NewPaymentsModel(ledgerSvc),
		expensesView:      view.NewExpensesModel(ledgerSvc),
		confessionsView:   view.NewConfessionsModel(confessionSvc),
		exportView:        view.NewExportModel(exportSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.ledgerService)

				return m, m.summaryView.Init()
			case "2":
				m.currentView = ViewPayments
				m.paymentsView = view.NewPaymentsModel(m.ledgerService)

				return m, m.paymentsView.Init()
			case "3":
				m.currentView = ViewExpenses
				m.expensesView = view.NewExpensesModel(m.ledgerService)

				return m, m.expensesView.Init()
			case "4":
				m.currentView = ViewConfessions
				m.confessionsView = view.NewConfessionsModel(m.confessionService)

				return m, m.confessionsView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewPayments:
		var newModel tea.Model
		newModel, cmd = m.paymentsView.Update(msg)
		m.paymentsView = newModel.(view.PaymentsModel)
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewConfessions:
		var newModel tea.Model
		newModel, cmd = m.confessionsView.Update(msg)
		m.confessionsView = newModel.(view.ConfessionsModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Kelasku TUI\n\n" +
				"1. Kas Summary\n" +
				"2. Manage Kas\n" +
				"3. Manage Pengeluaran\n" +
				"4. Moderate Confessions\n" +
				"5. Export Report\n\n" +
				"q. Quit",
		)
	case ViewSummary:
		return m.summaryView.View()
	case ViewPayments:
		return m.paymentsView.View()
	case ViewExpenses:
		return m.expensesView.View()
	case ViewConfessions:
		return m.confessionsView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
