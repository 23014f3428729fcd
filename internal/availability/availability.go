// Package availability turns working-hours preferences and calendar events into
// the free time the placement engines draw from.
package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/daylit-engine/internal/logger"
	"github.com/julianstephens/daylit-engine/internal/models"
	"github.com/julianstephens/daylit-engine/internal/utils"
)

// ResolveDayWindow returns the working window for the calendar day containing day,
// in day's location. A weekday entry in DailySchedule overrides the defaults field
// by field. The second result is false when the window is empty or inverted (which
// includes sleep times past midnight) or when a bound does not parse.
func ResolveDayWindow(prefs models.UserPreferences, day time.Time) (models.TimeInterval, bool) {
	wake, sleep := prefs.WakeTime, prefs.SleepTime
	if override, ok := prefs.DailySchedule[utils.WeekdayName(day.Weekday())]; ok {
		if override.WakeTime != "" {
			wake = override.WakeTime
		}
		if override.SleepTime != "" {
			sleep = override.SleepTime
		}
	}

	midnight := utils.StartOfDay(day)
	dayStart, err := utils.CombineDateAndClock(midnight, wake)
	if err != nil {
		return models.TimeInterval{}, false
	}
	dayEnd, err := utils.CombineDateAndClock(midnight, sleep)
	if err != nil {
		return models.TimeInterval{}, false
	}
	if !dayEnd.After(dayStart) {
		return models.TimeInterval{}, false
	}
	return models.TimeInterval{Start: dayStart, End: dayEnd}, true
}

// DayFreeSlot returns the day's working window clipped to [rangeStart, rangeEnd].
func DayFreeSlot(prefs models.UserPreferences, day, rangeStart, rangeEnd time.Time) (models.TimeInterval, bool) {
	window, ok := ResolveDayWindow(prefs, day)
	if !ok {
		logger.Debug("Skipping day with invalid working window", "day", day.Format("2006-01-02"))
		return models.TimeInterval{}, false
	}
	clipped := clip(window, rangeStart, rangeEnd).In(day.Location())
	return clipped, clipped.Valid()
}

// BuildBusyIntervals parses events in the given zone. Events that fail to parse
// or whose end does not follow their start are dropped. The result is sorted.
func BuildBusyIntervals(events []models.CalendarEvent, timeZone string) ([]models.TimeInterval, error) {
	loc, err := utils.LoadLocation(timeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timeZone, err)
	}
	return busyIntervals(events, loc), nil
}

func busyIntervals(events []models.CalendarEvent, loc *time.Location) []models.TimeInterval {
	busy := make([]models.TimeInterval, 0, len(events))
	for _, ev := range events {
		start, err := utils.ParseInstant(ev.Start, loc)
		if err != nil {
			logger.Debug("Dropping event with unparseable start", "id", ev.ID, "start", ev.Start)
			continue
		}
		end, err := utils.ParseInstant(ev.End, loc)
		if err != nil {
			logger.Debug("Dropping event with unparseable end", "id", ev.ID, "end", ev.End)
			continue
		}
		iv := models.TimeInterval{Start: start.In(loc), End: end.In(loc)}
		if !iv.Valid() {
			logger.Debug("Dropping event that ends before it starts", "id", ev.ID)
			continue
		}
		busy = append(busy, iv)
	}
	SortIntervals(busy)
	return busy
}

// BuildFreeSlots emits one interval per valid calendar day overlapping
// [rangeStart, rangeEnd], each clipped to the range. Intervals are never merged
// across days.
func BuildFreeSlots(rangeStart, rangeEnd time.Time, prefs models.UserPreferences) ([]models.TimeInterval, error) {
	loc, err := utils.LoadLocation(prefs.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", prefs.TimeZone, err)
	}
	return freeSlots(rangeStart, rangeEnd, prefs, loc), nil
}

func freeSlots(rangeStart, rangeEnd time.Time, prefs models.UserPreferences, loc *time.Location) []models.TimeInterval {
	var slots []models.TimeInterval
	for _, day := range utils.DaysInRange(rangeStart, rangeEnd, loc) {
		if slot, ok := DayFreeSlot(prefs, day, rangeStart, rangeEnd); ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

// SubtractIntervals removes every busy interval from free. Busy intervals are
// applied one at a time, so they need not be sorted or merged. The result is
// sorted ascending by start.
func SubtractIntervals(free, busy []models.TimeInterval) []models.TimeInterval {
	current := make([]models.TimeInterval, 0, len(free))
	for _, f := range free {
		if f.Valid() {
			current = append(current, f)
		}
	}

	for _, b := range busy {
		if !b.Valid() {
			continue
		}
		next := make([]models.TimeInterval, 0, len(current)+1)
		for _, f := range current {
			if !f.Overlaps(b) {
				next = append(next, f)
				continue
			}
			if f.Start.Before(b.Start) {
				next = append(next, models.TimeInterval{Start: f.Start, End: b.Start})
			}
			if b.End.Before(f.End) {
				next = append(next, models.TimeInterval{Start: b.End, End: f.End})
			}
		}
		current = next
	}

	SortIntervals(current)
	return current
}

// IntersectIntervals returns the non-empty pairwise intersections of a and b, sorted.
func IntersectIntervals(a, b []models.TimeInterval) []models.TimeInterval {
	var out []models.TimeInterval
	for _, x := range a {
		for _, y := range b {
			iv := models.TimeInterval{Start: later(x.Start, y.Start), End: earlier(x.End, y.End)}
			if iv.Valid() {
				out = append(out, iv)
			}
		}
	}
	SortIntervals(out)
	return out
}

// EarliestFit returns the first span of length d at the start of a free interval
// long enough to hold it. free must be sorted.
func EarliestFit(free []models.TimeInterval, d time.Duration) (models.TimeInterval, bool) {
	for _, f := range free {
		if f.Duration() >= d {
			return models.TimeInterval{Start: f.Start, End: f.Start.Add(d)}, true
		}
	}
	return models.TimeInterval{}, false
}

// EarliestFitBefore is EarliestFit restricted to spans ending no later than deadline.
func EarliestFitBefore(free []models.TimeInterval, d time.Duration, deadline time.Time) (models.TimeInterval, bool) {
	for _, f := range free {
		if !f.Start.Add(d).After(deadline) && f.Duration() >= d {
			return models.TimeInterval{Start: f.Start, End: f.Start.Add(d)}, true
		}
	}
	return models.TimeInterval{}, false
}

// SortIntervals sorts in place by start, then end.
func SortIntervals(iv []models.TimeInterval) {
	sort.SliceStable(iv, func(i, j int) bool {
		if !iv[i].Start.Equal(iv[j].Start) {
			return iv[i].Start.Before(iv[j].Start)
		}
		return iv[i].End.Before(iv[j].End)
	})
}

func clip(iv models.TimeInterval, start, end time.Time) models.TimeInterval {
	return models.TimeInterval{Start: later(iv.Start, start), End: earlier(iv.End, end)}
}

func later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlier(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
