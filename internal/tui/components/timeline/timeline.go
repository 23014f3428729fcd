// Package timeline renders every stored suggestion grouped by day.
package timeline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daylit-engine/internal/constants"
	"github.com/julianstephens/daylit-engine/internal/models"
	"github.com/julianstephens/daylit-engine/internal/storage"
)

var (
	dayStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	habitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	statusStyles = map[models.SuggestionStatus]lipgloss.Style{
		models.SuggestionProposed: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true),
		models.SuggestionAccepted: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.SuggestionRejected: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
	}
)

type Model struct {
	viewport    viewport.Model
	suggestions []storage.Suggestion
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetSuggestions replaces the content. Suggestions must be ordered by start.
func (m *Model) SetSuggestions(suggestions []storage.Suggestion) {
	m.suggestions = suggestions
	m.Render()
}

func (m *Model) Render() {
	m.viewport.SetContent(Render(m.suggestions))
}

// Render lays suggestions out one line each under a heading per day.
func Render(suggestions []storage.Suggestion) string {
	if len(suggestions) == 0 {
		return "No saved suggestions."
	}

	var b strings.Builder
	day := ""
	for _, s := range suggestions {
		if d := s.Start.Format(constants.DateFormat + " Mon"); d != day {
			day = d
			b.WriteString(dayStyle.Render(day))
			b.WriteString("\n")
		}
		span := fmt.Sprintf("%s-%s", s.Start.Format(constants.TimeFormat), s.End.Format(constants.TimeFormat))
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			timeStyle.Render(span),
			habitStyle.Render(s.HabitID),
			statusStyles[s.Status].Render(string(s.Status))))
	}
	return b.String()
}
