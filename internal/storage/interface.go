package storage

import "github.com/julianstephens/daylit-engine/internal/models"

// Provider persists engine output between command invocations.
type Provider interface {
	// Lifecycle
	Open() error
	Close() error

	// Task placements
	SaveScheduledBlocks(blocks []models.ScheduledBlock) (string, error)
	ListScheduledBlocks(batchID string) ([]models.ScheduledBlock, error)

	// Habit suggestions
	SaveHabitSuggestions(blocks []models.HabitSuggestionBlock) (string, error)
	GetHabitSuggestion(id string) (Suggestion, error)
	ListHabitSuggestions(status models.SuggestionStatus) ([]Suggestion, error)
	UpdateSuggestionStatus(id string, status models.SuggestionStatus) error

	// Utils
	Path() string
}
