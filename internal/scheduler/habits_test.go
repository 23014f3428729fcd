package scheduler

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daylit-engine/internal/constants"
	"github.com/julianstephens/daylit-engine/internal/models"
	"github.com/julianstephens/daylit-engine/internal/validation"
)

func daily(id string, minutes int, pref models.TimeOfDay) models.HabitInput {
	return models.HabitInput{ID: id, DurationMinutes: minutes, Frequency: models.FrequencyDaily, PreferredTimeOfDay: pref}
}

func onDay(blocks []models.HabitSuggestionBlock, habitID string, day int) []models.HabitSuggestionBlock {
	var out []models.HabitSuggestionBlock
	for _, b := range blocks {
		if b.HabitID == habitID && b.Start.Day() == day {
			out = append(out, b)
		}
	}
	return out
}

func TestPlaceHabits_DailyMorningStartsAtWakeTime(t *testing.T) {
	blocks, err := New().PlaceHabits(weekRequest(t), []models.HabitInput{daily("meditate", 60, models.TimeOfDayMorning)})
	require.NoError(t, err)
	require.Len(t, blocks, 7)

	first := blocks[0]
	assert.Equal(t, "meditate", first.HabitID)
	assert.True(t, first.Start.Equal(at(t, 1, 8, 0)), "got %v", first.Start)
	assert.True(t, first.End.Equal(at(t, 1, 9, 0)), "got %v", first.End)
	assert.Empty(t, first.Reason)
	assert.Equal(t, models.SuggestionProposed, first.Status)
}

func TestPlaceHabits_WeeklyOnlyOnSelectedDays(t *testing.T) {
	habit := models.HabitInput{
		ID:              "gym",
		DurationMinutes: 30,
		Frequency:       models.FrequencyWeekly,
		DaysOfWeek:      []string{"mon", "thu"},
	}

	blocks, err := New().PlaceHabits(weekRequest(t), []models.HabitInput{habit})
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	assert.Equal(t, 1, blocks[0].Start.Day())
	assert.Equal(t, 4, blocks[1].Start.Day())
	assert.Empty(t, onDay(blocks, "gym", 2), "no occurrence expected on Tuesday")
	for _, b := range blocks {
		assert.Empty(t, b.Reason, "no preference means no fallback reason")
	}
}

func TestPlaceHabits_MorningAfterConflict(t *testing.T) {
	req := weekRequest(t, models.CalendarEvent{ID: "standup", Start: "2025-12-01T08:00:00-06:00", End: "2025-12-01T10:00:00-06:00"})

	blocks, err := New().PlaceHabits(req, []models.HabitInput{daily("meditate", 60, models.TimeOfDayMorning)})
	require.NoError(t, err)

	monday := onDay(blocks, "meditate", 1)
	require.Len(t, monday, 1)
	assert.True(t, monday[0].Start.Equal(at(t, 1, 10, 0)), "got %v", monday[0].Start)
	assert.True(t, monday[0].End.Equal(at(t, 1, 11, 0)), "got %v", monday[0].End)
	assert.Empty(t, monday[0].Reason)
}

func TestPlaceHabits_EveningBlockedFallsBack(t *testing.T) {
	req := weekRequest(t, models.CalendarEvent{Start: "2025-12-01T17:00:00", End: "2025-12-01T22:00:00"})

	blocks, err := New().PlaceHabits(req, []models.HabitInput{daily("practice", 120, models.TimeOfDayEvening)})
	require.NoError(t, err)

	monday := onDay(blocks, "practice", 1)
	require.Len(t, monday, 1)
	assert.True(t, monday[0].Start.Equal(at(t, 1, 8, 0)), "got %v", monday[0].Start)
	assert.True(t, monday[0].End.Equal(at(t, 1, 10, 0)), "got %v", monday[0].End)
	assert.Equal(t, constants.ReasonOutsidePreferredWindow, monday[0].Reason)

	tuesday := onDay(blocks, "practice", 2)
	require.Len(t, tuesday, 1)
	assert.True(t, tuesday[0].Start.Equal(at(t, 2, 17, 0)), "unblocked evening is used, got %v", tuesday[0].Start)
	assert.Empty(t, tuesday[0].Reason)
}

func TestPlaceHabits_SecondHabitAvoidsFirst(t *testing.T) {
	habits := []models.HabitInput{
		daily("first", 60, models.TimeOfDayMorning),
		daily("second", 60, models.TimeOfDayMorning),
	}

	blocks, err := New().PlaceHabits(weekRequest(t), habits)
	require.NoError(t, err)
	require.Len(t, blocks, 14)

	first := onDay(blocks, "first", 1)
	second := onDay(blocks, "second", 1)
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.True(t, first[0].Start.Equal(at(t, 1, 8, 0)))
	assert.True(t, second[0].Start.Equal(at(t, 1, 9, 0)))
	assert.True(t, second[0].End.Equal(at(t, 1, 10, 0)))
}

func TestPlaceHabits_InvalidOverrideSkipsDay(t *testing.T) {
	req := weekRequest(t)
	req.Preferences.DailySchedule = map[string]models.DaySchedule{
		"monday": {WakeTime: "20:00", SleepTime: "06:00"},
	}

	blocks, err := New().PlaceHabits(req, []models.HabitInput{daily("walk", 30, models.TimeOfDayNone)})
	require.NoError(t, err)

	assert.Empty(t, onDay(blocks, "walk", 1), "Monday has an inverted window")
	tuesday := onDay(blocks, "walk", 2)
	require.Len(t, tuesday, 1)
	assert.True(t, tuesday[0].Start.Equal(at(t, 2, 8, 0)))
}

func TestPlaceHabits_NoRoomOmitsOccurrence(t *testing.T) {
	req := weekRequest(t, models.CalendarEvent{Start: "2025-12-03T08:00:00", End: "2025-12-03T22:30:00"})

	blocks, err := New().PlaceHabits(req, []models.HabitInput{daily("deep-work", 60, models.TimeOfDayAfternoon)})
	require.NoError(t, err)

	assert.Len(t, blocks, 6)
	assert.Empty(t, onDay(blocks, "deep-work", 3))
	for _, b := range onDay(blocks, "deep-work", 4) {
		assert.True(t, b.Start.Equal(at(t, 4, 12, 0)), "afternoon starts at noon, got %v", b.Start)
	}
}

func TestPlaceHabits_EveningWithEarlySleepFallsBack(t *testing.T) {
	req := weekRequest(t)
	req.Preferences.SleepTime = "16:00"

	blocks, err := New().PlaceHabits(req, []models.HabitInput{daily("read", 30, models.TimeOfDayEvening)})
	require.NoError(t, err)
	require.NotEmpty(t, blocks)
	assert.True(t, blocks[0].Start.Equal(at(t, 1, 8, 0)))
	assert.Equal(t, constants.ReasonOutsidePreferredWindow, blocks[0].Reason)
}

func TestPlaceHabits_RangeClipsFirstDay(t *testing.T) {
	req := weekRequest(t)
	req.RangeStart = at(t, 1, 11, 30)

	blocks, err := New().PlaceHabits(req, []models.HabitInput{daily("meditate", 60, models.TimeOfDayMorning)})
	require.NoError(t, err)

	monday := onDay(blocks, "meditate", 1)
	require.Len(t, monday, 1)
	// 11:30-12:00 is too short, so the occurrence falls back to the first free hour.
	assert.True(t, monday[0].Start.Equal(at(t, 1, 11, 30)))
	assert.Equal(t, constants.ReasonOutsidePreferredWindow, monday[0].Reason)
}

func TestPlaceHabits_NoOverlapAcrossHabits(t *testing.T) {
	req := weekRequest(t,
		models.CalendarEvent{Start: "2025-12-02T09:00:00", End: "2025-12-02T15:00:00"},
		models.CalendarEvent{Start: "2025-12-05T17:30:00", End: "2025-12-05T19:00:00"},
		models.CalendarEvent{Start: "garbage", End: "2025-12-05T19:00:00"},
	)
	habits := []models.HabitInput{
		daily("a", 90, models.TimeOfDayMorning),
		daily("b", 45, models.TimeOfDayAfternoon),
		daily("c", 120, models.TimeOfDayEvening),
		{ID: "d", DurationMinutes: 60, Frequency: models.FrequencyCustom, DaysOfWeek: []string{"tue", "fri", "sat"}, PreferredTimeOfDay: models.TimeOfDayMorning},
		daily("e", 300, models.TimeOfDayNone),
	}

	blocks, err := New().PlaceHabits(req, habits)
	require.NoError(t, err)
	require.NotEmpty(t, blocks)

	for i := range blocks {
		assert.True(t, blocks[i].Start.Before(blocks[i].End))
		for j := i + 1; j < len(blocks); j++ {
			assert.False(t, blocks[i].Interval().Overlaps(blocks[j].Interval()),
				"%s %v overlaps %s %v", blocks[i].HabitID, blocks[i].Start, blocks[j].HabitID, blocks[j].Start)
		}
	}
}

func TestPlaceHabits_Deterministic(t *testing.T) {
	req := weekRequest(t, models.CalendarEvent{Start: "2025-12-01T08:00:00", End: "2025-12-01T10:00:00"})
	habits := []models.HabitInput{
		daily("a", 60, models.TimeOfDayMorning),
		{ID: "b", DurationMinutes: 30, Frequency: models.FrequencyWeekly, DaysOfWeek: []string{"mon", "thu"}},
	}

	first, err := New().PlaceHabits(req, habits)
	require.NoError(t, err)
	second, err := New().PlaceHabits(req, habits)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestPlaceHabits_RejectsInvalidInput(t *testing.T) {
	_, err := New().PlaceHabits(weekRequest(t), []models.HabitInput{{ID: "x", DurationMinutes: -10, Frequency: models.FrequencyDaily}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrInvalidDuration))

	req := weekRequest(t)
	req.Preferences.TimeZone = "Not/AZone"
	_, err = New().PlaceHabits(req, []models.HabitInput{daily("x", 10, "")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrInvalidTimezone))
}

func TestPreferredWindow(t *testing.T) {
	day := at(t, 1, 0, 0)
	dayEnd := at(t, 1, 23, 0)

	tests := []struct {
		pref      models.TimeOfDay
		wantPref  bool
		wantStart time.Time
		wantEnd   time.Time
	}{
		{models.TimeOfDayMorning, true, at(t, 1, 5, 0), at(t, 1, 12, 0)},
		{models.TimeOfDayAfternoon, true, at(t, 1, 12, 0), at(t, 1, 17, 0)},
		{models.TimeOfDayEvening, true, at(t, 1, 17, 0), dayEnd},
		{models.TimeOfDayNone, false, time.Time{}, time.Time{}},
		{"", false, time.Time{}, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.pref), func(t *testing.T) {
			got, ok := preferredWindow(tt.pref, day, dayEnd)
			assert.Equal(t, tt.wantPref, ok)
			assert.True(t, got.Start.Equal(tt.wantStart), "start %v", got.Start)
			assert.True(t, got.End.Equal(tt.wantEnd), "end %v", got.End)
		})
	}
}

func TestPreferredWindow_UnknownValue(t *testing.T) {
	assert.Panics(t, func() {
		preferredWindow("midnight", at(t, 1, 0, 0), at(t, 1, 23, 0))
	})

	_, err := New().PlaceHabits(weekRequest(t), []models.HabitInput{
		{ID: "stretch", DurationMinutes: 15, Frequency: models.FrequencyDaily, PreferredTimeOfDay: "midnight"},
	})
	assert.True(t, errors.Is(err, validation.ErrInvalidTimeOfDay), "got %v", err)
}
