package models

import "time"

// TimeInterval is a half-open range [Start, End) of absolute instants.
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the interval is non-empty.
func (i TimeInterval) Valid() bool {
	return i.Start.Before(i.End)
}

func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether the two half-open intervals share any instant.
func (i TimeInterval) Overlaps(o TimeInterval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Contains reports whether o lies entirely within i.
func (i TimeInterval) Contains(o TimeInterval) bool {
	return !o.Start.Before(i.Start) && !o.End.After(i.End)
}

// In returns the interval with both bounds expressed in loc.
func (i TimeInterval) In(loc *time.Location) TimeInterval {
	return TimeInterval{Start: i.Start.In(loc), End: i.End.In(loc)}
}
