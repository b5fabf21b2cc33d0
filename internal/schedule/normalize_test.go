package schedule

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, time.June, 20, 11, 30, 0, 0, time.UTC)

func TestParseClassDate_AllKnownShapesAgree(t *testing.T) {
	t.Parallel()

	want := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
	}{
		{name: "day first", value: "15-03-2025"},
		{name: "iso date", value: "2025-03-15"},
		{name: "iso datetime", value: "2025-03-15T00:00:00Z"},
		{name: "iso datetime with offset", value: "2025-03-15T18:45:00+02:00"},
		{name: "surrounding whitespace", value: "  15-03-2025  "},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ParseClassDate(tc.value, time.UTC, testNow)
			if !got.Equal(want) {
				t.Fatalf("expected %s to normalize to %v, got %v", tc.value, want, got)
			}
		})
	}
}

func TestParseClassDate_MalformedFallsBackToToday(t *testing.T) {
	t.Parallel()

	today := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
	}{
		{name: "garbage", value: "not-a-date"},
		{name: "empty", value: ""},
		{name: "impossible day-first date", value: "32-13-2025"},
		{name: "impossible iso date", value: "2025-13-40"},
		{name: "iso datetime with broken date", value: "2025-13-40T09:00:00Z"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ParseClassDate(tc.value, time.UTC, testNow)
			if !got.Equal(today) {
				t.Fatalf("expected %q to fall back to %v, got %v", tc.value, today, got)
			}
		})
	}
}

func TestSessionWindow_ParsesScheduleWindow(t *testing.T) {
	t.Parallel()

	session := ClassSession{
		CalendarDate:   "15-03-2025",
		ScheduleWindow: "09:00 - 10:30",
	}

	start, end := SessionWindow(session, time.UTC, testNow)

	wantStart := time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("expected start %v, got %v", wantStart, start)
	}
	if !end.Equal(wantEnd) {
		t.Fatalf("expected end %v, got %v", wantEnd, end)
	}
}

func TestSessionWindow_FallsBackToSyntheticWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		window   string
		duration int
		wantEnd  time.Time
	}{
		{
			name:     "absent window uses duration",
			window:   "",
			duration: 45,
			wantEnd:  time.Date(2025, time.March, 15, 9, 45, 0, 0, time.UTC),
		},
		{
			name:     "malformed window uses duration",
			window:   "nueve a diez",
			duration: 90,
			wantEnd:  time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "missing duration defaults to an hour",
			window:   "",
			duration: 0,
			wantEnd:  time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:     "half-open window is rejected",
			window:   "09:00 -",
			duration: 30,
			wantEnd:  time.Date(2025, time.March, 15, 9, 30, 0, 0, time.UTC),
		},
	}

	wantStart := time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC)

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			session := ClassSession{
				CalendarDate:    "15-03-2025",
				ScheduleWindow:  tc.window,
				DurationMinutes: tc.duration,
			}

			start, end := SessionWindow(session, time.UTC, testNow)
			if !start.Equal(wantStart) {
				t.Fatalf("expected fallback start %v, got %v", wantStart, start)
			}
			if !end.Equal(tc.wantEnd) {
				t.Fatalf("expected fallback end %v, got %v", tc.wantEnd, end)
			}
		})
	}
}

func TestSameCalendarDay(t *testing.T) {
	t.Parallel()

	morning := time.Date(2025, time.March, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, time.March, 15, 22, 30, 0, 0, time.UTC)
	nextDay := time.Date(2025, time.March, 16, 8, 0, 0, 0, time.UTC)

	if !SameCalendarDay(morning, evening) {
		t.Fatalf("expected instants on the same day to match")
	}
	if SameCalendarDay(morning, nextDay) {
		t.Fatalf("expected instants on different days not to match")
	}
}
