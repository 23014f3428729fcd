package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StatePending:
		content = docStyle.Render(m.pending.View())
	case StateTimeline:
		content = docStyle.Render(m.timeline.View())
	case StateConfirmRejectAll:
		content = m.viewConfirmRejectAll()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{fmt.Sprintf("Pending (%d)", m.pending.Len()), "Timeline"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render("Error: " + m.err.Error())
	}
	return statusLineStyle.Render(m.status)
}

func (m Model) viewConfirmRejectAll() string {
	return lipgloss.Place(m.width, m.height-chrome,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Reject all %d pending suggestion(s)?", m.pending.Len())),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
