package view

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sekelas/kelasku/internal/confession"
)

// confessionItem wraps a confession to implement list.Item.
type confessionItem struct {
	confession *confession.Confession
}

func (i confessionItem) Title() string {
	status := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.confession.Status))

	return fmt.Sprintf("%s  %s  %s: %s",
		FormatDate(i.confession.CreatedAt), status, i.confession.Name, i.confession.Message)
}

func (i confessionItem) Description() string {
	if i.confession.Mention == nil {
		return ""
	}

	return fmt.Sprintf("to: %s (%s)", i.confession.Mention.Target, i.confession.Mention.Type)
}

func (i confessionItem) FilterValue() string {
	return i.confession.Message
}

type ConfessionsModel struct {
	CommonModel
	confessionService *confession.Service

	list        list.Model
	confessions []*confession.Confession
	loading     bool
	status      string
}

func NewConfessionsModel(svc *confession.Service) ConfessionsModel {
	l := list.New([]list.Item{}, confessionItemDelegate{}, 0, 0)
	l.Title = "Confessions"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return ConfessionsModel{
		confessionService: svc,
		list:              l,
	}
}

func (m ConfessionsModel) Title() string { return "Moderate Confessions" }

func (m ConfessionsModel) ShortHelp() string {
	return "Esc: back | d: delete | /: filter"
}

func (m ConfessionsModel) Init() tea.Cmd {
	m.loading = true
	return m.loadConfessionsCmd()
}

func (m ConfessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadConfessionsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.confessions = msg.confessions
		m.refreshListItems()

		if len(msg.confessions) == 0 {
			m.status = "No confessions."
		}

		return m, nil

	case deleteConfessionResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}

		m.status = "Deleted."

		return m, m.loadConfessionsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.list.FilterState() != list.Filtering {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "d":
				return m.deleteSelected()
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m ConfessionsModel) deleteSelected() (tea.Model, tea.Cmd) {
	selected, ok := m.list.SelectedItem().(confessionItem)
	if !ok {
		return m, nil
	}

	id := selected.confession.ID
	svc := m.confessionService

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return deleteConfessionResultMsg{err: svc.SoftDelete(ctx, id)}
	}
}

func (m ConfessionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading confessions...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())
}

func (m *ConfessionsModel) refreshListItems() {
	items := make([]list.Item, len(m.confessions))
	for i, c := range m.confessions {
		items[i] = confessionItem{confession: c}
	}

	m.list.SetItems(items)
}

// Messages

type loadConfessionsMsg struct {
	confessions []*confession.Confession
	err         error
}

func (m ConfessionsModel) loadConfessionsCmd() tea.Cmd {
	svc := m.confessionService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cs, err := svc.List(ctx, confession.ListFilter{IncludeDeleted: true})

		return loadConfessionsMsg{confessions: cs, err: err}
	}
}

type deleteConfessionResultMsg struct {
	err error
}

type confessionItemDelegate struct{}

func (d confessionItemDelegate) Height() int                             { return 2 }
func (d confessionItemDelegate) Spacing() int                            { return 0 }
func (d confessionItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d confessionItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(confessionItem)
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
