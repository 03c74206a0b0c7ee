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

type paymentsState int

const (
	paymentsStateList paymentsState = iota
	paymentsStateAdding
)

// paymentItem wraps a payment to implement list.Item.
type paymentItem struct {
	payment ledger.Payment
}

func (i paymentItem) Title() string {
	week := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[minggu %d]", i.payment.Week))

	return fmt.Sprintf("%s  %s  %s  %s",
		FormatDate(i.payment.Date), FormatAmount(i.payment.Amount), week, i.payment.StudentName)
}

func (i paymentItem) Description() string {
	return i.payment.Note
}

func (i paymentItem) FilterValue() string {
	return i.payment.StudentName
}

type PaymentsModel struct {
	CommonModel
	ledgerService *ledger.Service

	state    paymentsState
	list     list.Model
	form     *huh.Form
	payments []ledger.Payment
	loading  bool
	status   string

	// Form field bindings
	formName   string
	formAmount string
	formWeek   int
	formNote   string
	formDate   string
}

func NewPaymentsModel(svc *ledger.Service) PaymentsModel {
	l := list.New([]list.Item{}, paymentItemDelegate{}, 0, 0)
	l.Title = "Kas Payments"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return PaymentsModel{
		ledgerService: svc,
		list:          l,
	}
}

func (m PaymentsModel) Title() string { return "Manage Kas" }

func (m PaymentsModel) ShortHelp() string {
	switch m.state {
	case paymentsStateList:
		return "Esc: back | a: add | d: delete | /: filter"
	case paymentsStateAdding:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m PaymentsModel) Init() tea.Cmd {
	m.loading = true
	return m.loadPaymentsCmd()
}

func (m PaymentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPaymentsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.payments = msg.payments
		m.refreshListItems()

		if len(msg.payments) == 0 {
			m.status = "No payments recorded."
		}

		return m, nil

	case savePaymentResultMsg:
		m.state = paymentsStateList

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.status = "Saved."

		return m, m.loadPaymentsCmd()

	case deletePaymentResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}

		m.status = "Deleted."

		return m, m.loadPaymentsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case paymentsStateList:
		return m.updateList(msg)
	case paymentsStateAdding:
		return m.updateAdding(msg)
	}

	return m, nil
}

func (m PaymentsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m PaymentsModel) startAdding() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formAmount = ""
	m.formWeek = 1
	m.formNote = ""
	m.formDate = FormatDate(time.Now())

	roster := m.ledgerService.Roster()
	nameOptions := make([]huh.Option[string], len(roster))

	for i, name := range roster {
		nameOptions[i] = huh.NewOption(name, name)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("student").
				Title("Student").
				Options(nameOptions...).
				Value(&m.formName),

			huh.NewInput().
				Key("amount").
				Title("Amount (Rp)").
				Placeholder("5000").
				Value(&m.formAmount).
				Validate(func(s string) error {
					amount, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil || amount < 0 {
						return fmt.Errorf("amount must be a non-negative number")
					}
					return nil
				}),

			huh.NewSelect[int]().
				Key("week").
				Title("Week").
				Options(
					huh.NewOption("Minggu 1", 1),
					huh.NewOption("Minggu 2", 2),
					huh.NewOption("Minggu 3", 3),
					huh.NewOption("Minggu 4", 4),
				).
				Value(&m.formWeek),

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

			huh.NewInput().
				Key("note").
				Title("Note (optional)").
				Value(&m.formNote),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = paymentsStateAdding

	return m, m.form.Init()
}

func (m PaymentsModel) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = paymentsStateList
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

	return m, m.savePaymentCmd()
}

func (m PaymentsModel) deleteSelected() (tea.Model, tea.Cmd) {
	selected, ok := m.list.SelectedItem().(paymentItem)
	if !ok {
		return m, nil
	}

	id := selected.payment.ID
	svc := m.ledgerService

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return deletePaymentResultMsg{err: svc.DeletePayment(ctx, id)}
	}
}

func (m PaymentsModel) View() string {
	switch m.state {
	case paymentsStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading payments...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case paymentsStateAdding:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	return ""
}

func (m *PaymentsModel) refreshListItems() {
	items := make([]list.Item, len(m.payments))
	for i, p := range m.payments {
		items[i] = paymentItem{payment: p}
	}

	m.list.SetItems(items)
}

// Messages

type loadPaymentsMsg struct {
	payments []ledger.Payment
	err      error
}

func (m PaymentsModel) loadPaymentsCmd() tea.Cmd {
	svc := m.ledgerService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		payments, err := svc.Payments(ctx)

		return loadPaymentsMsg{payments: payments, err: err}
	}
}

type savePaymentResultMsg struct {
	err error
}

func (m PaymentsModel) savePaymentCmd() tea.Cmd {
	name := m.formName
	amountStr := m.formAmount
	week := m.formWeek
	note := m.formNote
	dateStr := m.formDate
	svc := m.ledgerService

	return func() tea.Msg {
		amount, err := strconv.ParseInt(strings.TrimSpace(amountStr), 10, 64)
		if err != nil {
			return savePaymentResultMsg{err: fmt.Errorf("bad amount %q", amountStr)}
		}

		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return savePaymentResultMsg{err: fmt.Errorf("bad date %q", dateStr)}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err = svc.RecordPayment(ctx, ledger.PaymentParams{
			StudentName: name,
			Amount:      amount,
			Week:        week,
			Note:        note,
			Date:        date,
		})

		return savePaymentResultMsg{err: err}
	}
}

type deletePaymentResultMsg struct {
	err error
}

// paymentItemDelegate renders items in the list.
type paymentItemDelegate struct{}

func (d paymentItemDelegate) Height() int                             { return 2 }
func (d paymentItemDelegate) Spacing() int                            { return 0 }
func (d paymentItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d paymentItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(paymentItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	if i.Description() == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
