package schedule

import (
	"strings"
	"time"
)

const (
	isoDateLayout  = "2006-01-02"
	dayFirstLayout = "02-01-2006"
	clockLayout    = "15:04"

	windowSeparator = " - "

	fallbackStartHour      = 9
	defaultDurationMinutes = 60
)

// ParseClassDate interprets the upstream calendar date, which arrives as an
// ISO-8601 datetime, a day-first DD-MM-YYYY string, or a bare YYYY-MM-DD
// string. Detection is by shape: anything containing a 'T' is treated as an
// ISO datetime and truncated to its date, a dash in the third position means
// day-first, everything else is tried as ISO.
//
// Malformed input does not fail; it degrades to the current day in loc. The
// record stays renderable as best-effort display data and a single bad date
// never aborts a batch, at the cost of silently reading as "today".
func ParseClassDate(value string, loc *time.Location, now time.Time) time.Time {
	if loc == nil {
		loc = time.Local
	}
	value = strings.TrimSpace(value)

	if idx := strings.IndexByte(value, 'T'); idx >= 0 {
		if day, err := time.ParseInLocation(isoDateLayout, value[:idx], loc); err == nil {
			return day
		}
		return dayOf(now, loc)
	}
	if len(value) == 10 && value[2] == '-' {
		if day, err := time.ParseInLocation(dayFirstLayout, value, loc); err == nil {
			return day
		}
		return dayOf(now, loc)
	}
	if day, err := time.ParseInLocation(isoDateLayout, value, loc); err == nil {
		return day
	}
	return dayOf(now, loc)
}

// SessionWindow resolves the absolute start and end instants of a session on
// its calendar day. A missing or malformed schedule window falls back to a
// synthetic one starting at 09:00 local and lasting DurationMinutes, with 60
// minutes substituted when the duration is unset.
func SessionWindow(s ClassSession, loc *time.Location, now time.Time) (start, end time.Time) {
	if loc == nil {
		loc = time.Local
	}
	day := ParseClassDate(s.CalendarDate, loc, now)

	if from, to, ok := parseWindow(s.ScheduleWindow); ok {
		start = time.Date(day.Year(), day.Month(), day.Day(), from.hour, from.minute, 0, 0, loc)
		end = time.Date(day.Year(), day.Month(), day.Day(), to.hour, to.minute, 0, 0, loc)
		return start, end
	}

	duration := s.DurationMinutes
	if duration <= 0 {
		duration = defaultDurationMinutes
	}
	start = time.Date(day.Year(), day.Month(), day.Day(), fallbackStartHour, 0, 0, 0, loc)
	return start, start.Add(time.Duration(duration) * time.Minute)
}

// SameCalendarDay reports whether two instants fall on the same calendar day.
// Both sides are expected to carry the engine's configured location.
func SameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

type clockTime struct {
	hour   int
	minute int
}

// parseWindow splits an "HH:MM - HH:MM" schedule string into its two clock
// times. ok is false when the window is absent or malformed.
func parseWindow(window string) (from, to clockTime, ok bool) {
	parts := strings.Split(window, windowSeparator)
	if len(parts) != 2 {
		return clockTime{}, clockTime{}, false
	}

	start, err := time.Parse(clockLayout, strings.TrimSpace(parts[0]))
	if err != nil {
		return clockTime{}, clockTime{}, false
	}
	end, err := time.Parse(clockLayout, strings.TrimSpace(parts[1]))
	if err != nil {
		return clockTime{}, clockTime{}, false
	}

	from = clockTime{hour: start.Hour(), minute: start.Minute()}
	to = clockTime{hour: end.Hour(), minute: end.Minute()}
	return from, to, true
}

func dayOf(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
