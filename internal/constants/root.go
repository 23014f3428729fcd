package constants

import "time"

const (
	AppName           = "daylit-engine"
	Version           = "v0.1.0"
	DefaultDBPath     = "~/.config/daylit-engine/daylit-engine.db"
	DefaultLogDirName = "logs"
	LogFileName       = "daylit-engine.log"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time-of-day format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// LocalDateTimeFormat is a datetime without offset, interpreted in the user's zone
	LocalDateTimeFormat = "2006-01-02T15:04:05"

	// LocalDateTimeMinuteFormat is LocalDateTimeFormat without seconds
	LocalDateTimeMinuteFormat = "2006-01-02T15:04"

	// OverflowHorizonDays bounds how far past the requested range an overflowing
	// task may be pushed.
	OverflowHorizonDays = 28

	// ReasonOutsidePreferredWindow is attached to habit occurrences that could not
	// be placed inside their preferred time of day.
	ReasonOutsidePreferredWindow = "Placed outside preferred window"
)

// Preferred window boundaries, as offsets from local midnight. Evening runs from
// EveningStart to the day's sleep time.
const (
	MorningStart   = 5 * time.Hour
	MorningEnd     = 12 * time.Hour
	AfternoonStart = 12 * time.Hour
	AfternoonEnd   = 17 * time.Hour
	EveningStart   = 17 * time.Hour
)

func init() {
	if MorningStart >= MorningEnd || AfternoonStart >= AfternoonEnd || MorningEnd > AfternoonStart || AfternoonEnd > EveningStart {
		panic("preferred window boundaries must be ordered morning < afternoon < evening")
	}
}
