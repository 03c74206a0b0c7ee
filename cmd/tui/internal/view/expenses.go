package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sekelas/kelasku/internal/ledger"
)

type expensesState int

const (
	expensesStateList expensesState = iota
	expensesStateAdding
)

type expenseItem struct {
	expense ledger.Expense
}

func (i expenseItem) Title() string {
	return fmt.Sprintf("%s  %s  %s",
		FormatDate(i.expense.Date), FormatAmount(i.expense.Amount), i.expense.Description)
}

func (i expenseItem) Description() string { return "" }

func (i expenseItem) FilterValue() string { return i.expense.Description }

type ExpensesModel struct {
	CommonModel
	ledgerService *ledger.Service

	state    expensesState
	list     list.Model
	form     *huh.Form
	expenses []ledger.Expense
	loading  bool
	status   string

	formDesc   string
	formAmount string
	formDate   string
}

func NewExpensesModel(svc *ledger.Service) ExpensesModel {
	l := list.New([]list.Item{}, expenseItemDelegate{}, 0, 0)
	l.Title = "Pengeluaran"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return ExpensesModel{
		ledgerService: svc,
		list:          l,
	}
}

func (m ExpensesModel) Title() string { return "Manage Pengeluaran" }

func (m ExpensesModel) ShortHelp() string {
	switch m.state {
	case expensesStateList:
		return "Esc: back | a: add | d: delete | /: filter"
	case expensesStateAdding:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m ExpensesModel) Init() tea.Cmd {
	m.loading = true
	return m.loadExpensesCmd()
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadExpensesMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.expenses = msg.expenses
		m.refreshListItems()

		if len(msg.expenses) == 0 {
			m.status = "No expenses recorded."
		}

		return m, nil

	case saveExpenseResultMsg:
		m.state = expensesStateList

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.status = "Saved."

		return m, m.loadExpensesCmd()

	case deleteExpenseResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}

		m.status = "Deleted."

		return m, m.loadExpensesCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case expensesStateList:
		return m.updateList(msg)
	case expensesStateAdding:
		return m.updateAdding(msg)
	}

	return m, nil
}

func (m ExpensesModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.list.FilterState() != list.Filtering {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "a":
				return m.startAdding()
			case "d":
				return m.deleteSelected()
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m ExpensesModel) startAdding() (tea.Model, tea.Cmd) {
	m.formDesc = ""
	m.formAmount = ""
	m.formDate = FormatDate(time.Now())

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount (Rp)").
				Placeholder("30000").
				Value(&m.formAmount).
				Validate(func(s string) error {
					amount, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil || amount < 0 {
						return fmt.Errorf("amount must be a non-negative number")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse("2006-01-02", s); err != nil {
						return fmt.Errorf("date must be YYYY-MM-DD")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = expensesStateAdding

	return m, m.form.Init()
}

func (m ExpensesModel) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = expensesStateList
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveExpenseCmd()
}

func (m ExpensesModel) deleteSelected() (tea.Model, tea.Cmd) {
	selected, ok := m.list.SelectedItem().(expenseItem)
	if !ok {
		return m, nil
	}

	id := selected.expense.ID
	svc := m.ledgerService

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return deleteExpenseResultMsg{err: svc.DeleteExpense(ctx, id)}
	}
}

func (m ExpensesModel) View() string {
	switch m.state {
	case expensesStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case expensesStateAdding:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	return ""
}

func (m *ExpensesModel) refreshListItems() {
	items := make([]list.Item, len(m.expenses))
	for i, e := range m.expenses {
		items[i] = expenseItem{expense: e}
	}

	m.list.SetItems(items)
}

// Messages

type loadExpensesMsg struct {
	expenses []ledger.Expense
	err      error
}

func (m ExpensesModel) loadExpensesCmd() tea.Cmd {
	svc := m.ledgerService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		expenses, err := svc.Expenses(ctx)

		return loadExpensesMsg{expenses: expenses, err: err}
	}
}

type saveExpenseResultMsg struct {
	err error
}

func (m ExpensesModel) saveExpenseCmd() tea.Cmd {
	desc := m.formDesc
	amountStr := m.formAmount
	dateStr := m.formDate
	svc := m.ledgerService

	return func() tea.Msg {
		amount, err := strconv.ParseInt(strings.TrimSpace(amountStr), 10, 64)
		if err != nil {
			return saveExpenseResultMsg{err: fmt.Errorf("bad amount %q", amountStr)}
		}

		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return saveExpenseResultMsg{err: fmt.Errorf("bad date %q", dateStr)}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err = svc.RecordExpense(ctx, ledger.ExpenseParams{
			Description: desc,
			Amount:      amount,
			Date:        date,
		})

		return saveExpenseResultMsg{err: err}
	}
}

type deleteExpenseResultMsg struct {
	err error
}

type expenseItemDelegate struct{}

func (d expenseItemDelegate) Height() int                             { return 1 }
func (d expenseItemDelegate) Spacing() int                            { return 0 }
func (d expenseItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d expenseItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(expenseItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
}
