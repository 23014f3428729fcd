// Package storage keeps task placements and habit suggestions in SQLite so a
// later invocation can accept or reject them.
package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/daylit-engine/internal/models"
)

var (
	ErrSuggestionNotFound = errors.New("habit suggestion not found")
	ErrInvalidTransition  = errors.New("invalid suggestion status transition")
)

// Suggestion is a stored habit suggestion.
type Suggestion struct {
	ID      string `json:"id"`
	BatchID string `json:"batchId"`
	models.HabitSuggestionBlock
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CanTransition reports whether a suggestion may move from one status to
// another. Only proposed suggestions can be decided, and only once.
func CanTransition(from, to models.SuggestionStatus) bool {
	return from == models.SuggestionProposed &&
		(to == models.SuggestionAccepted || to == models.SuggestionRejected)
}
