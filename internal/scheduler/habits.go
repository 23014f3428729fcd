package scheduler

import (
	"fmt"
	"time"

	"github.com/julianstephens/daylit-engine/internal/availability"
	"github.com/julianstephens/daylit-engine/internal/constants"
	"github.com/julianstephens/daylit-engine/internal/logger"
	"github.com/julianstephens/daylit-engine/internal/models"
	"github.com/julianstephens/daylit-engine/internal/utils"
	"github.com/julianstephens/daylit-engine/internal/validation"
)

// PlaceHabits proposes occurrences for each habit on every matching day of
// the range. Habits are placed in the order given; each placed occurrence is
// claimed for the rest of the call, so an earlier habit wins contested time.
// The result lists occurrences habit by habit, day by day.
func (s *Scheduler) PlaceHabits(req models.ScheduleRequest, habits []models.HabitInput) ([]models.HabitSuggestionBlock, error) {
	if err := validation.ValidateHabits(habits); err != nil {
		return nil, err
	}
	snap, err := prepare(req)
	if err != nil {
		return nil, err
	}

	days := snap.Days()
	var claimed []models.TimeInterval
	blocks := []models.HabitSuggestionBlock{}

	for _, habit := range habits {
		for _, day := range days {
			block, ok := placeOccurrence(snap, habit, day, claimed)
			if !ok {
				continue
			}
			blocks = append(blocks, block)
			claimed = append(claimed, block.Interval())
		}
	}

	return blocks, nil
}

// placeOccurrence decides a single habit/day pair: in the preferred window,
// fallback elsewhere in the day, or nothing.
func placeOccurrence(snap *availability.Snapshot, habit models.HabitInput, day time.Time, claimed []models.TimeInterval) (models.HabitSuggestionBlock, bool) {
	if !utils.OccursOn(habit, day) {
		return models.HabitSuggestionBlock{}, false
	}

	free, ok := snap.FreeOnDay(day, claimed)
	if !ok {
		return models.HabitSuggestionBlock{}, false
	}

	d := habit.Duration()
	hasPreference := false
	if dayWindow, ok := snap.Window(day); ok {
		var window models.TimeInterval
		window, hasPreference = preferredWindow(habit.PreferredTimeOfDay, day, dayWindow.End)
		if hasPreference && window.Valid() {
			inWindow := availability.IntersectIntervals(free, []models.TimeInterval{window})
			if slot, ok := availability.EarliestFit(inWindow, d); ok {
				return suggestion(habit, slot, snap.Location, ""), true
			}
		}
	}

	slot, ok := availability.EarliestFit(free, d)
	if !ok {
		logger.Debug("No room for habit occurrence", "habit", habit.ID, "day", day.Format(constants.DateFormat))
		return models.HabitSuggestionBlock{}, false
	}

	reason := ""
	if hasPreference {
		reason = constants.ReasonOutsidePreferredWindow
		logger.Debug("Habit placed outside preferred window", "habit", habit.ID, "day", day.Format(constants.DateFormat))
	}
	return suggestion(habit, slot, snap.Location, reason), true
}

// preferredWindow maps a time-of-day preference onto day. The second result
// reports whether the habit has a preference at all; the window itself may be
// empty when the day ends before the evening starts.
func preferredWindow(pref models.TimeOfDay, day, dayEnd time.Time) (models.TimeInterval, bool) {
	switch pref {
	case models.TimeOfDayMorning:
		return models.TimeInterval{Start: utils.AtOffset(day, constants.MorningStart), End: utils.AtOffset(day, constants.MorningEnd)}, true
	case models.TimeOfDayAfternoon:
		return models.TimeInterval{Start: utils.AtOffset(day, constants.AfternoonStart), End: utils.AtOffset(day, constants.AfternoonEnd)}, true
	case models.TimeOfDayEvening:
		return models.TimeInterval{Start: utils.AtOffset(day, constants.EveningStart), End: dayEnd}, true
	case models.TimeOfDayNone, "":
		return models.TimeInterval{}, false
	default:
		// ValidateHabits rejects unknown values before placement.
		panic(fmt.Sprintf("scheduler: unvalidated time of day %q", pref))
	}
}

func suggestion(habit models.HabitInput, slot models.TimeInterval, loc *time.Location, reason string) models.HabitSuggestionBlock {
	return models.HabitSuggestionBlock{
		HabitID: habit.ID,
		Start:   slot.Start.In(loc),
		End:     slot.End.In(loc),
		Status:  models.SuggestionProposed,
		Reason:  reason,
	}
}
