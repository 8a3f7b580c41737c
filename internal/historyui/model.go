// Package historyui provides the Bubble Tea browser for persisted revisions.
package historyui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/nixie/internal/model"
	"github.com/verte-zerg/nixie/internal/report"
	"github.com/verte-zerg/nixie/internal/settings"
)

const tableWidth = 62

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	detailStyle = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Source lists revisions.
type Source interface {
	History(ctx context.Context, filter model.HistoryFilter) ([]model.Revision, error)
}

// Model implements the Bubble Tea history UI.
type Model struct {
	source Source
	filter model.HistoryFilter

	revisions []model.Revision
	errMsg    string

	table  table.Model
	detail viewport.Model

	width  int
	height int

	filtering bool
	form      filterForm
}

// NewModel constructs a history UI model.
func NewModel(src Source, filter model.HistoryFilter) *Model {
	m := &Model{
		source: src,
		filter: filter,
		table:  buildTable(nil, 10),
		detail: viewport.New(0, 0),
		form:   newFilterForm(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filtering {
			return m, m.updateForm(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "/":
			m.filtering = true
			return m, m.form.open(m.filter)
		case "g", "home":
			m.table.GotoTop()
		case "G", "end":
			m.table.GotoBottom()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			m.renderDetail()
			return m, cmd
		}
		m.renderDetail()
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	var body string
	switch {
	case m.filtering:
		body = m.form.view()
	case len(m.revisions) == 0:
		body = "No revisions found."
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.table.View(), detailStyle.Render(m.detail.View()))
	}
	body = lipgloss.NewStyle().Width(m.width).Height(m.height - 2).MaxHeight(m.height - 2).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, headerStyle.Render(m.filterSummary()), body, m.renderFooter())
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	result, filter, cmd := m.form.update(msg)
	switch result {
	case formCancelled:
		m.filtering = false
	case formApplied:
		m.filtering = false
		m.filter = filter
		m.refresh()
	}
	return cmd
}

func (m *Model) refresh() {
	revs, err := m.source.History(context.Background(), m.filter)
	if err != nil {
		m.errMsg = err.Error()
		m.revisions = nil
	} else {
		m.errMsg = ""
		m.revisions = revs
	}
	m.table.SetRows(tableRows(m.revisions))
	m.table.GotoBottom()
	m.renderDetail()
}

func (m *Model) updateLayout() {
	bodyHeight := maxInt(3, m.height-2)
	m.table.SetHeight(bodyHeight - 1)
	m.detail.Width = maxInt(10, m.width-tableWidth-4)
	m.detail.Height = bodyHeight - 2
	m.form.setWidth(m.width)
	m.renderDetail()
}

// renderDetail shows the decoded record of the selected revision.
func (m *Model) renderDetail() {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.revisions) {
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(detailText(m.revisions[idx]))
}

func detailText(rev model.Revision) string {
	var rec settings.Record
	if err := rec.UnmarshalBinary(rev.Image); err != nil {
		return err.Error()
	}
	lines := report.FormatTable(report.RecordHeaders, report.RecordRows(rec), nil)
	if err := rec.Validate(); err != nil {
		lines = append(lines, "", errorStyle.Render(err.Error()))
	}
	return strings.Join(lines, "\n")
}

func buildTable(rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Written", Width: 19},
			{Title: "Offset", Width: 6},
			{Title: "Bytes", Width: 5},
			{Title: "Record", Width: 9},
			{Title: "Revision", Width: 14},
		}),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height)),
		table.WithFocused(true),
	)
	t.SetStyles(tableStyles())
	return t
}

func tableRows(revs []model.Revision) []table.Row {
	described := report.HistoryRows(revs)
	rows := make([]table.Row, len(described))
	for i, d := range described {
		// id, written, offset, bytes, record
		rows[i] = table.Row{d[1], d[2], d[3], d[4], d[0]}
	}
	return rows
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) filterSummary() string {
	since := "any"
	if m.filter.Since != nil {
		since = m.filter.Since.Format(dateLayout)
	}
	last := "all"
	if m.filter.Last > 0 {
		last = strconv.Itoa(m.filter.Last)
	}
	return fmt.Sprintf("Revisions: %d  since=%s  last=%s", len(m.revisions), since, last)
}

func (m *Model) renderFooter() string {
	if m.filtering {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Select: up/down  Scroll record: pgup/pgdn  Filter: /  Quit: q")
	if m.errMsg != "" {
		return help + "  " + errorStyle.Render(m.errMsg)
	}
	return help
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
