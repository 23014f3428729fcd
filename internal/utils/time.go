package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/daylit-engine/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseClock parses a time-of-day string (HH:MM) and returns its offset from midnight.
func ParseClock(clock string) (time.Duration, error) {
	t, err := time.Parse(constants.TimeFormat, clock)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(clock string) bool {
	_, err := ParseClock(clock)
	return err == nil
}

// StartOfDay returns local midnight of the calendar day containing t, in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AtOffset returns the wall-clock instant offset from midnight on day's calendar
// date. Hours and minutes are applied through time.Date so DST transitions resolve
// the way the zone defines them.
func AtOffset(day time.Time, offset time.Duration) time.Time {
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
}

// CombineDateAndClock returns the instant of clock (HH:MM) on day's calendar date.
func CombineDateAndClock(day time.Time, clock string) (time.Time, error) {
	offset, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format %q: %w", clock, err)
	}
	return AtOffset(day, offset), nil
}

// DaysInRange returns local midnight of every calendar day in loc that overlaps
// [start, end]. The result is empty when end is before start.
func DaysInRange(start, end time.Time, loc *time.Location) []time.Time {
	if end.Before(start) {
		return nil
	}
	first := StartOfDay(start.In(loc))
	last := StartOfDay(end.In(loc))

	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	constants.LocalDateTimeFormat,
	constants.LocalDateTimeMinuteFormat,
}

// ParseInstant parses an ISO-8601 datetime. Values carrying an offset keep it;
// zone-less values and bare dates (YYYY-MM-DD, read as midnight) are interpreted in loc.
func ParseInstant(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation(constants.DateFormat, value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", value)
}

// ParseInstantOrEndOfDay behaves like ParseInstant except that a bare date
// resolves to the end of that day (the following local midnight). Used for
// inclusive bounds such as due dates and range ends.
func ParseInstantOrEndOfDay(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(constants.DateFormat, value, loc); err == nil {
		return t.AddDate(0, 0, 1), nil
	}
	return ParseInstant(value, loc)
}

// WeekdayName returns the lowercase English name of wd ("monday").
func WeekdayName(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}

// WeekdayCode returns the lowercase 3-letter code of wd ("mon").
func WeekdayCode(wd time.Weekday) string {
	return WeekdayName(wd)[:3]
}
