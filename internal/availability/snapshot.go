package availability

import (
	"fmt"
	"time"

	"github.com/julianstephens/daylit-engine/internal/models"
	"github.com/julianstephens/daylit-engine/internal/utils"
)

// Snapshot is the available-time substrate of one request: the resolved zone,
// the parsed busy intervals, and the range the free slots are clipped to.
// It is read-only once built.
type Snapshot struct {
	Location   *time.Location
	Busy       []models.TimeInterval
	prefs      models.UserPreferences
	rangeStart time.Time
	rangeEnd   time.Time
}

// NewSnapshot resolves the request's zone and busy intervals.
func NewSnapshot(req models.ScheduleRequest) (*Snapshot, error) {
	loc, err := utils.LoadLocation(req.Preferences.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", req.Preferences.TimeZone, err)
	}
	return &Snapshot{
		Location:   loc,
		Busy:       busyIntervals(req.Events, loc),
		prefs:      req.Preferences,
		rangeStart: req.RangeStart.In(loc),
		rangeEnd:   req.RangeEnd.In(loc),
	}, nil
}

// Days returns local midnight of every calendar day overlapping the range.
func (s *Snapshot) Days() []time.Time {
	return utils.DaysInRange(s.rangeStart, s.rangeEnd, s.Location)
}

// Free returns the free time of the whole range with busy time removed.
func (s *Snapshot) Free() []models.TimeInterval {
	return SubtractIntervals(freeSlots(s.rangeStart, s.rangeEnd, s.prefs, s.Location), s.Busy)
}

// FreeAfterRange returns free time in the days following the range end, up to
// the given number of days, with busy time removed.
func (s *Snapshot) FreeAfterRange(days int) []models.TimeInterval {
	horizon := utils.StartOfDay(s.rangeEnd).AddDate(0, 0, days+1)
	return SubtractIntervals(freeSlots(s.rangeEnd, horizon, s.prefs, s.Location), s.Busy)
}

// LongestWindow returns the longest working window the range and the given
// number of overflow days can offer, each day clipped to that span. Busy time is
// not subtracted.
func (s *Snapshot) LongestWindow(days int) time.Duration {
	horizon := utils.StartOfDay(s.rangeEnd).AddDate(0, 0, days+1)
	var longest time.Duration
	for _, day := range utils.DaysInRange(s.rangeStart, horizon, s.Location) {
		if slot, ok := DayFreeSlot(s.prefs, day, s.rangeStart, horizon); ok && slot.Duration() > longest {
			longest = slot.Duration()
		}
	}
	return longest
}

// FreeOnDay returns the day's free time inside the range, minus busy time and
// the claimed intervals. The second result is false when the day has no valid
// working window at all, which callers treat differently from a full day.
func (s *Snapshot) FreeOnDay(day time.Time, claimed []models.TimeInterval) ([]models.TimeInterval, bool) {
	slot, ok := DayFreeSlot(s.prefs, day, s.rangeStart, s.rangeEnd)
	if !ok {
		return nil, false
	}
	free := SubtractIntervals([]models.TimeInterval{slot}, s.Busy)
	return SubtractIntervals(free, claimed), true
}

// Window returns the day's resolved working window, unclipped.
func (s *Snapshot) Window(day time.Time) (models.TimeInterval, bool) {
	return ResolveDayWindow(s.prefs, day.In(s.Location))
}
