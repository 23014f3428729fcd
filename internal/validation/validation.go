// Package validation rejects structurally invalid engine input before any
// placement runs, and audits engine output for conflicts.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/daylit-engine/internal/availability"
	"github.com/julianstephens/daylit-engine/internal/constants"
	"github.com/julianstephens/daylit-engine/internal/models"
	"github.com/julianstephens/daylit-engine/internal/utils"
)

// Durations above a full day can never fit, since placements never span midnight.
const maxDurationMinutes = 24 * 60

// ValidatePreferences checks the zone, the default clocks and every weekday override.
func ValidatePreferences(prefs models.UserPreferences) error {
	var errs []error

	if _, err := utils.LoadLocation(prefs.TimeZone); err != nil {
		errs = append(errs, fieldError("preferences.timeZone", prefs.TimeZone, ErrInvalidTimezone))
	}
	if !utils.ValidateTimeFormat(prefs.WakeTime) {
		errs = append(errs, fieldError("preferences.wakeTime", prefs.WakeTime, ErrInvalidClock))
	}
	if !utils.ValidateTimeFormat(prefs.SleepTime) {
		errs = append(errs, fieldError("preferences.sleepTime", prefs.SleepTime, ErrInvalidClock))
	}

	for _, key := range sortedKeys(prefs.DailySchedule) {
		day := prefs.DailySchedule[key]
		field := "preferences.dailySchedule." + key
		// Keys are matched against lowercase weekday names during resolution.
		if _, ok := utils.ParseWeekdayName(key); !ok || key != strings.ToLower(key) {
			errs = append(errs, fieldError(field, key, ErrInvalidWeekday))
			continue
		}
		if day.WakeTime != "" && !utils.ValidateTimeFormat(day.WakeTime) {
			errs = append(errs, fieldError(field+".wakeTime", day.WakeTime, ErrInvalidClock))
		}
		if day.SleepTime != "" && !utils.ValidateTimeFormat(day.SleepTime) {
			errs = append(errs, fieldError(field+".sleepTime", day.SleepTime, ErrInvalidClock))
		}
	}

	return errors.Join(errs...)
}

// ValidateRequest checks preferences and the date range.
func ValidateRequest(req models.ScheduleRequest) error {
	var errs []error
	if err := ValidatePreferences(req.Preferences); err != nil {
		errs = append(errs, err)
	}
	if req.RangeStart.IsZero() || req.RangeEnd.IsZero() || !req.RangeStart.Before(req.RangeEnd) {
		value := fmt.Sprintf("%s..%s", req.RangeStart.Format(constants.LocalDateTimeFormat), req.RangeEnd.Format(constants.LocalDateTimeFormat))
		errs = append(errs, fieldError("range", value, ErrInvalidRange))
	}
	return errors.Join(errs...)
}

// ValidateTasks checks ids, durations and priorities.
func ValidateTasks(tasks []models.TaskInput) error {
	var errs []error
	seen := make(map[string]bool, len(tasks))

	for i, task := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		errs = append(errs, validateID(prefix, task.ID, seen)...)
		if task.DurationMinutes <= 0 || task.DurationMinutes > maxDurationMinutes {
			errs = append(errs, fieldError(prefix+".durationMinutes", strconv.Itoa(task.DurationMinutes), ErrInvalidDuration))
		}
		if task.Priority < constants.PriorityHighest || task.Priority > constants.PriorityLowest {
			errs = append(errs, fieldError(prefix+".priority", strconv.Itoa(task.Priority), ErrInvalidPriority))
		}
	}

	return errors.Join(errs...)
}

// ValidateHabits checks ids, durations, frequencies, day codes and time-of-day values.
func ValidateHabits(habits []models.HabitInput) error {
	var errs []error
	seen := make(map[string]bool, len(habits))

	for i, habit := range habits {
		prefix := fmt.Sprintf("habits[%d]", i)
		errs = append(errs, validateID(prefix, habit.ID, seen)...)
		if habit.DurationMinutes <= 0 || habit.DurationMinutes > maxDurationMinutes {
			errs = append(errs, fieldError(prefix+".durationMinutes", strconv.Itoa(habit.DurationMinutes), ErrInvalidDuration))
		}
		if !habit.Frequency.Valid() {
			errs = append(errs, fieldError(prefix+".frequency", string(habit.Frequency), ErrInvalidFrequency))
		}
		if !habit.PreferredTimeOfDay.Valid() {
			errs = append(errs, fieldError(prefix+".preferredTimeOfDay", string(habit.PreferredTimeOfDay), ErrInvalidTimeOfDay))
		}
		for j, code := range habit.DaysOfWeek {
			if _, ok := utils.ParseWeekdayCode(code); !ok {
				errs = append(errs, fieldError(fmt.Sprintf("%s.daysOfWeek[%d]", prefix, j), code, ErrInvalidWeekday))
			}
		}
	}

	return errors.Join(errs...)
}

// ValidateTaskFit rejects tasks longer than the longest working window the
// scheduler can reach from snap, overflow days included.
func ValidateTaskFit(snap *availability.Snapshot, tasks []models.TaskInput) error {
	longest := snap.LongestWindow(constants.OverflowHorizonDays)
	var errs []error
	for i, task := range tasks {
		if task.Duration() > longest {
			errs = append(errs, fieldError(fmt.Sprintf("tasks[%d].durationMinutes", i), strconv.Itoa(task.DurationMinutes), ErrDurationExceedsWindow))
		}
	}
	return errors.Join(errs...)
}

func validateID(prefix, id string, seen map[string]bool) []error {
	if strings.TrimSpace(id) == "" {
		return []error{fieldError(prefix+".id", "", ErrMissingID)}
	}
	if seen[id] {
		return []error{fieldError(prefix+".id", id, ErrDuplicateID)}
	}
	seen[id] = true
	return nil
}

func sortedKeys(m map[string]models.DaySchedule) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
