package availability

import (
	"testing"
	"time"

	"github.com/julianstephens/daylit-engine/internal/models"
)

func chicago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}
	return loc
}

func defaultPrefs() models.UserPreferences {
	return models.UserPreferences{TimeZone: "America/Chicago", WakeTime: "08:00", SleepTime: "23:00"}
}

func at(loc *time.Location, day, hour, min int) time.Time {
	return time.Date(2025, 12, day, hour, min, 0, 0, loc)
}

func TestBuildBusyIntervals(t *testing.T) {
	loc := chicago(t)
	events := []models.CalendarEvent{
		{ID: "late", Start: "2025-12-01T15:00:00-06:00", End: "2025-12-01T16:00:00-06:00"},
		{ID: "bad-start", Start: "yesterday-ish", End: "2025-12-01T10:00:00-06:00"},
		{ID: "early", Start: "2025-12-01T08:00:00", End: "2025-12-01T10:00:00"},
		{ID: "bad-end", Start: "2025-12-01T11:00:00-06:00", End: ""},
		{ID: "inverted", Start: "2025-12-01T12:00:00-06:00", End: "2025-12-01T11:00:00-06:00"},
		{ID: "utc", Start: "2025-12-01T18:00:00Z", End: "2025-12-01T19:00:00Z"},
	}

	busy, err := BuildBusyIntervals(events, "America/Chicago")
	if err != nil {
		t.Fatalf("BuildBusyIntervals failed: %v", err)
	}

	want := []models.TimeInterval{
		{Start: at(loc, 1, 8, 0), End: at(loc, 1, 10, 0)},
		{Start: at(loc, 1, 12, 0), End: at(loc, 1, 13, 0)},
		{Start: at(loc, 1, 15, 0), End: at(loc, 1, 16, 0)},
	}
	if len(busy) != len(want) {
		t.Fatalf("BuildBusyIntervals returned %d intervals, want %d: %v", len(busy), len(want), busy)
	}
	for i := range want {
		if !busy[i].Start.Equal(want[i].Start) || !busy[i].End.Equal(want[i].End) {
			t.Errorf("busy[%d] = %v, want %v", i, busy[i], want[i])
		}
		if busy[i].Start.Location() != loc {
			t.Errorf("busy[%d] not expressed in the configured zone", i)
		}
	}
}

func TestBuildBusyIntervals_InvalidZone(t *testing.T) {
	if _, err := BuildBusyIntervals(nil, "Mars/Olympus"); err == nil {
		t.Error("expected error for unknown zone")
	}
}

func TestBuildFreeSlots(t *testing.T) {
	loc := chicago(t)
	start := at(loc, 1, 0, 0)
	end := time.Date(2025, 12, 7, 23, 59, 59, 0, loc)

	slots, err := BuildFreeSlots(start, end, defaultPrefs())
	if err != nil {
		t.Fatalf("BuildFreeSlots failed: %v", err)
	}
	if len(slots) != 7 {
		t.Fatalf("BuildFreeSlots returned %d slots, want 7", len(slots))
	}
	for i, s := range slots {
		wantStart := at(loc, 1+i, 8, 0)
		wantEnd := at(loc, 1+i, 23, 0)
		if !s.Start.Equal(wantStart) || !s.End.Equal(wantEnd) {
			t.Errorf("slot %d = %v, want %v-%v", i, s, wantStart, wantEnd)
		}
	}
}

func TestBuildFreeSlots_ClipsToRange(t *testing.T) {
	loc := chicago(t)
	start := at(loc, 1, 10, 30)
	end := at(loc, 2, 9, 15)

	slots, err := BuildFreeSlots(start, end, defaultPrefs())
	if err != nil {
		t.Fatalf("BuildFreeSlots failed: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("BuildFreeSlots returned %d slots, want 2", len(slots))
	}
	if !slots[0].Start.Equal(start) || !slots[0].End.Equal(at(loc, 1, 23, 0)) {
		t.Errorf("first slot = %v, want clipped start", slots[0])
	}
	if !slots[1].Start.Equal(at(loc, 2, 8, 0)) || !slots[1].End.Equal(end) {
		t.Errorf("second slot = %v, want clipped end", slots[1])
	}
}

func TestBuildFreeSlots_SkipsInvalidOverride(t *testing.T) {
	loc := chicago(t)
	prefs := defaultPrefs()
	prefs.DailySchedule = map[string]models.DaySchedule{
		"monday":    {WakeTime: "20:00", SleepTime: "06:00"},
		"wednesday": {WakeTime: "10:00", SleepTime: "10:00"},
		"tuesday":   {WakeTime: "09:30"},
	}

	slots, err := BuildFreeSlots(at(loc, 1, 0, 0), at(loc, 3, 23, 59), prefs)
	if err != nil {
		t.Fatalf("BuildFreeSlots failed: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("BuildFreeSlots returned %d slots, want only Tuesday: %v", len(slots), slots)
	}
	if !slots[0].Start.Equal(at(loc, 2, 9, 30)) || !slots[0].End.Equal(at(loc, 2, 23, 0)) {
		t.Errorf("Tuesday slot = %v, want 09:30-23:00 (partial override keeps default sleep)", slots[0])
	}
}

func TestResolveDayWindow(t *testing.T) {
	loc := chicago(t)
	prefs := defaultPrefs()
	prefs.DailySchedule = map[string]models.DaySchedule{"saturday": {WakeTime: "10:00", SleepTime: "14:00"}}

	tests := []struct {
		name      string
		day       time.Time
		wantOK    bool
		wantStart time.Time
		wantEnd   time.Time
	}{
		{name: "default weekday", day: at(loc, 5, 0, 0), wantOK: true, wantStart: at(loc, 5, 8, 0), wantEnd: at(loc, 5, 23, 0)},
		{name: "override", day: at(loc, 6, 0, 0), wantOK: true, wantStart: at(loc, 6, 10, 0), wantEnd: at(loc, 6, 14, 0)},
		{name: "non-midnight input resolves same day", day: at(loc, 6, 17, 45), wantOK: true, wantStart: at(loc, 6, 10, 0), wantEnd: at(loc, 6, 14, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveDayWindow(prefs, tt.day)
			if ok != tt.wantOK {
				t.Fatalf("ResolveDayWindow() ok = %v, want %v", ok, tt.wantOK)
			}
			if !got.Start.Equal(tt.wantStart) || !got.End.Equal(tt.wantEnd) {
				t.Errorf("ResolveDayWindow() = %v, want %v-%v", got, tt.wantStart, tt.wantEnd)
			}
		})
	}

	bad := defaultPrefs()
	bad.SleepTime = "late"
	if _, ok := ResolveDayWindow(bad, at(loc, 1, 0, 0)); ok {
		t.Error("expected unparseable sleep time to invalidate the day")
	}
}

func TestSubtractIntervals(t *testing.T) {
	loc := chicago(t)
	h := func(hour, min int) time.Time { return at(loc, 1, hour, min) }
	free := []models.TimeInterval{{Start: h(8, 0), End: h(12, 0)}, {Start: h(13, 0), End: h(17, 0)}}

	tests := []struct {
		name string
		busy []models.TimeInterval
		want []models.TimeInterval
	}{
		{
			name: "no busy",
			busy: nil,
			want: free,
		},
		{
			name: "middle split",
			busy: []models.TimeInterval{{Start: h(9, 0), End: h(10, 0)}},
			want: []models.TimeInterval{{Start: h(8, 0), End: h(9, 0)}, {Start: h(10, 0), End: h(12, 0)}, {Start: h(13, 0), End: h(17, 0)}},
		},
		{
			name: "covers whole slot",
			busy: []models.TimeInterval{{Start: h(7, 0), End: h(12, 30)}},
			want: []models.TimeInterval{{Start: h(13, 0), End: h(17, 0)}},
		},
		{
			name: "spans both slots",
			busy: []models.TimeInterval{{Start: h(11, 0), End: h(14, 0)}},
			want: []models.TimeInterval{{Start: h(8, 0), End: h(11, 0)}, {Start: h(14, 0), End: h(17, 0)}},
		},
		{
			name: "unsorted overlapping busy",
			busy: []models.TimeInterval{{Start: h(15, 0), End: h(16, 0)}, {Start: h(8, 0), End: h(9, 0)}, {Start: h(8, 30), End: h(9, 30)}},
			want: []models.TimeInterval{{Start: h(9, 30), End: h(12, 0)}, {Start: h(13, 0), End: h(15, 0)}, {Start: h(16, 0), End: h(17, 0)}},
		},
		{
			name: "touching busy keeps slot",
			busy: []models.TimeInterval{{Start: h(12, 0), End: h(13, 0)}},
			want: free,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubtractIntervals(free, tt.busy)
			if len(got) != len(tt.want) {
				t.Fatalf("SubtractIntervals() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if !got[i].Start.Equal(tt.want[i].Start) || !got[i].End.Equal(tt.want[i].End) {
					t.Errorf("SubtractIntervals()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
			assertSortedDisjoint(t, got)
			for _, f := range got {
				for _, b := range tt.busy {
					if f.Overlaps(b) {
						t.Errorf("free slot %v overlaps busy %v", f, b)
					}
				}
			}
		})
	}
}

func TestIntersectIntervals(t *testing.T) {
	loc := chicago(t)
	h := func(hour int) time.Time { return at(loc, 1, hour, 0) }
	a := []models.TimeInterval{{Start: h(8), End: h(10)}, {Start: h(11), End: h(14)}}
	b := []models.TimeInterval{{Start: h(5), End: h(12)}}

	got := IntersectIntervals(a, b)
	want := []models.TimeInterval{{Start: h(8), End: h(10)}, {Start: h(11), End: h(12)}}
	if len(got) != len(want) {
		t.Fatalf("IntersectIntervals() = %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Start.Equal(want[i].Start) || !got[i].End.Equal(want[i].End) {
			t.Errorf("IntersectIntervals()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEarliestFit(t *testing.T) {
	loc := chicago(t)
	h := func(hour int) time.Time { return at(loc, 1, hour, 0) }
	free := []models.TimeInterval{{Start: h(8), End: h(9)}, {Start: h(10), End: h(13)}}

	got, ok := EarliestFit(free, 2*time.Hour)
	if !ok || !got.Start.Equal(h(10)) || !got.End.Equal(h(12)) {
		t.Errorf("EarliestFit(2h) = %v, %v; want 10:00-12:00", got, ok)
	}
	if _, ok := EarliestFit(free, 4*time.Hour); ok {
		t.Error("EarliestFit(4h) should not fit")
	}

	if _, ok := EarliestFitBefore(free, 2*time.Hour, h(11)); ok {
		t.Error("EarliestFitBefore should reject spans ending after the deadline")
	}
	got, ok = EarliestFitBefore(free, time.Hour, h(9))
	if !ok || !got.Start.Equal(h(8)) {
		t.Errorf("EarliestFitBefore(1h, 09:00) = %v, %v; want 08:00-09:00", got, ok)
	}
}

func TestSnapshotFreeOnDay(t *testing.T) {
	loc := chicago(t)
	req := models.ScheduleRequest{
		Preferences: defaultPrefs(),
		RangeStart:  at(loc, 1, 0, 0),
		RangeEnd:    at(loc, 1, 23, 59),
		Events:      []models.CalendarEvent{{Start: "2025-12-01T08:00:00", End: "2025-12-01T10:00:00"}},
	}
	snap, err := NewSnapshot(req)
	if err != nil {
		t.Fatalf("NewSnapshot failed: %v", err)
	}

	claimed := []models.TimeInterval{{Start: at(loc, 1, 10, 0), End: at(loc, 1, 11, 0)}}
	free, ok := snap.FreeOnDay(at(loc, 1, 0, 0), claimed)
	if !ok {
		t.Fatal("expected Monday to be a valid day")
	}
	if len(free) != 1 || !free[0].Start.Equal(at(loc, 1, 11, 0)) || !free[0].End.Equal(at(loc, 1, 23, 0)) {
		t.Errorf("FreeOnDay() = %v, want 11:00-23:00", free)
	}

	after := snap.FreeAfterRange(2)
	if len(after) != 2 || !after[0].Start.Equal(at(loc, 2, 8, 0)) {
		t.Errorf("FreeAfterRange(2) = %v, want Tuesday and Wednesday windows", after)
	}
}

func assertSortedDisjoint(t *testing.T, iv []models.TimeInterval) {
	t.Helper()
	for i := range iv {
		if !iv[i].Valid() {
			t.Errorf("interval %d is empty: %v", i, iv[i])
		}
		if i > 0 && iv[i].Start.Before(iv[i-1].End) {
			t.Errorf("intervals %d and %d overlap or are unsorted", i-1, i)
		}
	}
}
