package historyui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/nixie/internal/model"
	"github.com/verte-zerg/nixie/internal/settings"
)

type fakeSource struct {
	revs    []model.Revision
	filters []model.HistoryFilter
}

func (f *fakeSource) History(_ context.Context, filter model.HistoryFilter) ([]model.Revision, error) {
	f.filters = append(f.filters, filter)
	return f.revs, nil
}

func revision(t *testing.T, id string, gain uint8) model.Revision {
	t.Helper()
	rec := settings.Default()
	rec.Gain = gain
	img, err := rec.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return model.Revision{ID: id, WrittenAt: time.Unix(0, 0), Length: len(img), Image: img}
}

func TestDetailFollowsSelection(t *testing.T) {
	src := &fakeSource{revs: []model.Revision{revision(t, "first", 11), revision(t, "second", 0)}}
	m := NewModel(src, model.HistoryFilter{})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	out := m.View()
	if !strings.Contains(out, "second") || !strings.Contains(out, "gain 0 out of range") {
		t.Fatalf("newest revision should be selected with its validation error:\n%s", out)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if detail := m.detail.View(); !strings.Contains(detail, "11") || strings.Contains(detail, "out of range") {
		t.Fatalf("detail should show the first revision:\n%s", detail)
	}
}

func TestFilterApplies(t *testing.T) {
	src := &fakeSource{}
	m := NewModel(src, model.HistoryFilter{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !m.filtering {
		t.Fatalf("expected filter mode")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.filtering {
		t.Fatalf("filter mode should close on apply")
	}
	last := src.filters[len(src.filters)-1]
	if last.Last != 5 || last.Since != nil {
		t.Fatalf("unexpected filter %+v", last)
	}
}

func TestFilterFormRejectsBadInput(t *testing.T) {
	form := newFilterForm()
	form.open(model.HistoryFilter{})

	form.fields[fieldSince].SetValue("2024-13-01")
	if result, _, _ := form.update(tea.KeyMsg{Type: tea.KeyEnter}); result != formEditing || form.err == "" {
		t.Fatalf("bad date should keep the form open with an error")
	}
	form.fields[fieldSince].SetValue("")
	form.fields[fieldLast].SetValue("-1")
	if _, err := form.filter(); err == nil {
		t.Fatalf("expected bad last error")
	}

	form.fields[fieldSince].SetValue("2024-03-18")
	form.fields[fieldLast].SetValue("3")
	result, f, _ := form.update(tea.KeyMsg{Type: tea.KeyEnter})
	if result != formApplied || f.Since == nil || f.Last != 3 {
		t.Fatalf("unexpected filter %+v result=%d", f, result)
	}
}

func TestFilterFormReopensWithCurrentFilter(t *testing.T) {
	since := time.Date(2024, time.March, 18, 0, 0, 0, 0, time.Local)
	form := newFilterForm()
	form.open(model.HistoryFilter{Since: &since, Last: 4})

	if form.fields[fieldSince].Value() != "2024-03-18" || form.fields[fieldLast].Value() != "4" {
		t.Fatalf("form should show the current filter")
	}
	form.update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if form.focus != fieldLast {
		t.Fatalf("shift+tab should wrap to the last field, focus %d", form.focus)
	}
	if result, _, _ := form.update(tea.KeyMsg{Type: tea.KeyEsc}); result != formCancelled {
		t.Fatalf("esc should cancel")
	}
}
