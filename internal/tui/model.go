// Package tui is the interactive review of saved habit suggestions.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daylit-engine/internal/models"
	"github.com/julianstephens/daylit-engine/internal/storage"
	"github.com/julianstephens/daylit-engine/internal/tui/components/suggestions"
	"github.com/julianstephens/daylit-engine/internal/tui/components/timeline"
)

type SessionState int

const (
	StatePending SessionState = iota
	StateTimeline
	StateConfirmRejectAll
)

// tabCount is the number of tabbed states; confirmation states come after.
const tabCount = 2

type Model struct {
	store         storage.Provider
	state         SessionState
	keys          KeyMap
	help          help.Model
	pending       suggestions.Model
	timeline      timeline.Model
	status        string
	err           error
	quitting      bool
	width, height int
}

// NewModel loads the store's suggestions. The store must be open.
func NewModel(store storage.Provider) (Model, error) {
	m := Model{
		store:    store,
		state:    StatePending,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		pending:  suggestions.New(nil, 0, 0),
		timeline: timeline.New(0, 0),
	}
	if err := m.reload(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) reload() error {
	all, err := m.store.ListHabitSuggestions("")
	if err != nil {
		return fmt.Errorf("failed to load suggestions: %w", err)
	}
	var proposed []storage.Suggestion
	for _, s := range all {
		if s.Status == models.SuggestionProposed {
			proposed = append(proposed, s)
		}
	}
	m.pending.SetSuggestions(proposed)
	m.timeline.SetSuggestions(all)
	return nil
}

// decide records a decision and refreshes both views.
func (m *Model) decide(s storage.Suggestion, status models.SuggestionStatus) {
	if err := m.store.UpdateSuggestionStatus(s.ID, status); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = fmt.Sprintf("%s %s on %s", status, s.HabitID, s.Start.Format("Jan 2 15:04"))
	if err := m.reload(); err != nil {
		m.err = err
	}
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StatePending:
		return []key.Binding{m.keys.Accept, m.keys.Reject, m.keys.Tab, m.keys.Quit, m.keys.Help}
	case StateConfirmRejectAll:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	default:
		return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}
	actions := []key.Binding{m.keys.Accept, m.keys.Reject, m.keys.RejectAll}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the review program on the terminal.
func Run(store storage.Provider) error {
	m, err := NewModel(store)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
