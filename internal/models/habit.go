package models

import "time"

// Frequency is the recurrence rule of a habit.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyCustom:
		return true
	default:
		return false
	}
}

// TimeOfDay is a soft preference for where in the day a habit lands.
// The empty value is treated as TimeOfDayNone.
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
	TimeOfDayEvening   TimeOfDay = "evening"
	TimeOfDayNone      TimeOfDay = "none"
)

func (t TimeOfDay) Valid() bool {
	switch t {
	case TimeOfDayMorning, TimeOfDayAfternoon, TimeOfDayEvening, TimeOfDayNone, "":
		return true
	default:
		return false
	}
}

// SuggestionStatus tracks the review state of a habit suggestion. The engine
// only ever emits SuggestionProposed.
type SuggestionStatus string

const (
	SuggestionProposed SuggestionStatus = "proposed"
	SuggestionAccepted SuggestionStatus = "accepted"
	SuggestionRejected SuggestionStatus = "rejected"
)

func (s SuggestionStatus) Valid() bool {
	switch s {
	case SuggestionProposed, SuggestionAccepted, SuggestionRejected:
		return true
	default:
		return false
	}
}

type HabitInput struct {
	ID                 string    `json:"id"`
	DurationMinutes    int       `json:"durationMinutes"`
	Frequency          Frequency `json:"frequency"`
	DaysOfWeek         []string  `json:"daysOfWeek,omitempty"` // 3-letter codes, e.g. "mon"
	PreferredTimeOfDay TimeOfDay `json:"preferredTimeOfDay,omitempty"`
}

func (h HabitInput) Duration() time.Duration {
	return time.Duration(h.DurationMinutes) * time.Minute
}

// HabitSuggestionBlock is one proposed occurrence of a habit.
type HabitSuggestionBlock struct {
	HabitID string           `json:"habitId"`
	Start   time.Time        `json:"start"`
	End     time.Time        `json:"end"`
	Status  SuggestionStatus `json:"status"`
	Reason  string           `json:"reason,omitempty"`
}

func (b HabitSuggestionBlock) Interval() TimeInterval {
	return TimeInterval{Start: b.Start, End: b.End}
}
