// Package suggestions is the list of habit suggestions awaiting a decision.
package suggestions

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daylit-engine/internal/constants"
	"github.com/julianstephens/daylit-engine/internal/storage"
)

type Item struct {
	Suggestion storage.Suggestion
}

func (i Item) Title() string {
	return i.Suggestion.HabitID
}

func (i Item) Description() string {
	s := i.Suggestion
	desc := fmt.Sprintf("%s %s-%s",
		s.Start.Format(constants.DateFormat+" Mon"),
		s.Start.Format(constants.TimeFormat),
		s.End.Format(constants.TimeFormat))
	if s.Reason != "" {
		desc += " | " + s.Reason
	}
	return desc
}

func (i Item) FilterValue() string { return i.Suggestion.HabitID }

type Model struct {
	list list.Model
}

func New(items []storage.Suggestion, width, height int) Model {
	l := list.New(toItems(items), list.NewDefaultDelegate(), width, height)
	l.Title = "Proposed"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the parent model
	return Model{list: l}
}

func toItems(items []storage.Suggestion) []list.Item {
	out := make([]list.Item, len(items))
	for i, s := range items {
		out[i] = Item{Suggestion: s}
	}
	return out
}

// SetSuggestions replaces the list, keeping the cursor on a valid row.
func (m *Model) SetSuggestions(items []storage.Suggestion) {
	m.list.SetItems(toItems(items))
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

// Selected returns the highlighted suggestion.
func (m Model) Selected() (storage.Suggestion, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Suggestion, true
	}
	return storage.Suggestion{}, false
}

// Len returns the number of suggestions still listed.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Filtering reports whether the filter prompt has focus, in which case
// single-key actions must not fire.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Len() == 0 && !m.Filtering() {
		return "\n  Nothing left to review."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
