package models

import "time"

// CalendarEvent is busy time supplied by a calendar provider. Start and End are
// ISO-8601 strings and may be malformed.
type CalendarEvent struct {
	ID    string `json:"id,omitempty"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaySchedule overrides the default working window for one weekday.
type DaySchedule struct {
	WakeTime  string `json:"wakeTime"`  // HH:MM format
	SleepTime string `json:"sleepTime"` // HH:MM format
}

// UserPreferences defines the daily working window.
type UserPreferences struct {
	TimeZone  string `json:"timeZone"`  // IANA timezone name, or "Local"
	WakeTime  string `json:"wakeTime"`  // HH:MM format
	SleepTime string `json:"sleepTime"` // HH:MM format

	// DailySchedule is keyed by lowercase weekday name ("monday" ... "sunday").
	DailySchedule map[string]DaySchedule `json:"dailySchedule,omitempty"`
}

// ScheduleRequest bundles the inputs shared by every engine invocation.
type ScheduleRequest struct {
	Preferences UserPreferences `json:"preferences"`
	RangeStart  time.Time       `json:"rangeStart"`
	RangeEnd    time.Time       `json:"rangeEnd"`
	Events      []CalendarEvent `json:"events,omitempty"`
}
