package historyui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/nixie/internal/model"
)

const dateLayout = "2006-01-02"

const (
	fieldSince = iota
	fieldLast
	fieldCount
)

// filterForm edits a HistoryFilter as two text fields.
type filterForm struct {
	fields [fieldCount]textinput.Model
	focus  int
	err    string
}

func newFilterForm() filterForm {
	var f filterForm
	for i, prompt := range [fieldCount]string{"Since (YYYY-MM-DD): ", "Last: "} {
		f.fields[i] = textinput.New()
		f.fields[i].Prompt = prompt
	}
	return f
}

// open loads filter into the fields and focuses the first one.
func (f *filterForm) open(filter model.HistoryFilter) tea.Cmd {
	f.err = ""
	since, last := "", ""
	if filter.Since != nil {
		since = filter.Since.Format(dateLayout)
	}
	if filter.Last > 0 {
		last = strconv.Itoa(filter.Last)
	}
	f.fields[fieldSince].SetValue(since)
	f.fields[fieldLast].SetValue(last)
	return f.focusOn(fieldSince)
}

func (f *filterForm) focusOn(idx int) tea.Cmd {
	f.focus = (idx + fieldCount) % fieldCount
	for i := range f.fields {
		f.fields[i].Blur()
	}
	return f.fields[f.focus].Focus()
}

func (f *filterForm) setWidth(width int) {
	for i := range f.fields {
		f.fields[i].Width = maxInt(10, width-len(f.fields[i].Prompt)-2)
	}
}

// formResult tells the browser what a key did to the form.
type formResult int

const (
	formEditing formResult = iota
	formCancelled
	formApplied
)

func (f *filterForm) update(msg tea.KeyMsg) (formResult, model.HistoryFilter, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return formCancelled, model.HistoryFilter{}, nil
	case tea.KeyEnter:
		filter, err := f.filter()
		if err != nil {
			f.err = err.Error()
			return formEditing, model.HistoryFilter{}, nil
		}
		return formApplied, filter, nil
	case tea.KeyTab, tea.KeyDown:
		return formEditing, model.HistoryFilter{}, f.focusOn(f.focus + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return formEditing, model.HistoryFilter{}, f.focusOn(f.focus - 1)
	}
	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return formEditing, model.HistoryFilter{}, cmd
}

func (f *filterForm) filter() (model.HistoryFilter, error) {
	since, err := ParseSince(f.fields[fieldSince].Value())
	if err != nil {
		return model.HistoryFilter{}, err
	}
	last, err := parseLast(f.fields[fieldLast].Value())
	if err != nil {
		return model.HistoryFilter{}, err
	}
	return model.HistoryFilter{Since: since, Last: last}, nil
}

func (f *filterForm) view() string {
	lines := []string{"Filter revisions"}
	for _, field := range f.fields {
		lines = append(lines, field.View())
	}
	if f.err != "" {
		lines = append(lines, errorStyle.Render(f.err))
	}
	return strings.Join(lines, "\n")
}

// ParseSince parses a YYYY-MM-DD date in local time; empty means no bound.
func ParseSince(input string) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(dateLayout, input, time.Local)
	if err != nil {
		return nil, fmt.Errorf("since must be a YYYY-MM-DD date")
	}
	return &parsed, nil
}

func parseLast(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("last must be a revision count, 0 for all")
	}
	return n, nil
}
