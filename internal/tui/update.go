package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daylit-engine/internal/models"
)

// chrome is the height taken by the tab bar, status line and help.
const chrome = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.pending.SetSize(msg.Width-4, msg.Height-chrome)
		m.timeline.SetSize(msg.Width-4, msg.Height-chrome)
		return m, nil

	case tea.KeyMsg:
		if m.state == StateConfirmRejectAll {
			return m.updateConfirm(msg)
		}
		if m.state == StatePending && m.pending.Filtering() {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		}

		if m.state == StatePending {
			switch {
			case key.Matches(msg, m.keys.Accept):
				if s, ok := m.pending.Selected(); ok {
					m.decide(s, models.SuggestionAccepted)
				}
				return m, nil
			case key.Matches(msg, m.keys.Reject):
				if s, ok := m.pending.Selected(); ok {
					m.decide(s, models.SuggestionRejected)
				}
				return m, nil
			case key.Matches(msg, m.keys.RejectAll):
				if m.pending.Len() > 0 {
					m.state = StateConfirmRejectAll
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StatePending:
		m.pending, cmd = m.pending.Update(msg)
	case StateTimeline:
		m.timeline, cmd = m.timeline.Update(msg)
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		for m.pending.Len() > 0 && m.err == nil {
			s, ok := m.pending.Selected()
			if !ok {
				break
			}
			m.decide(s, models.SuggestionRejected)
		}
		m.state = StatePending
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.state = StatePending
	}
	return m, nil
}
