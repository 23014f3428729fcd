package utils

import (
	"strings"
	"time"

	"github.com/julianstephens/daylit-engine/internal/models"
)

var weekdayCodes = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekdayCode parses a 3-letter day code ("mon"), case-insensitively.
func ParseWeekdayCode(code string) (time.Weekday, bool) {
	wd, ok := weekdayCodes[strings.ToLower(strings.TrimSpace(code))]
	return wd, ok
}

// ParseWeekdayName parses a full weekday name ("monday"), case-insensitively.
func ParseWeekdayName(name string) (time.Weekday, bool) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return wd, ok
}

// OccursOn determines if a habit has an occurrence on the given day based on its
// frequency. This logic is shared between validation and placement to ensure
// consistency.
func OccursOn(habit models.HabitInput, day time.Time) bool {
	switch habit.Frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly, models.FrequencyCustom:
		if len(habit.DaysOfWeek) == 0 {
			return false
		}
		for _, code := range habit.DaysOfWeek {
			if wd, ok := ParseWeekdayCode(code); ok && wd == day.Weekday() {
				return true
			}
		}
		return false
	default:
		return false
	}
}
