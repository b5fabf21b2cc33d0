package schedule

import "time"

// Project builds the calendar event for a session. Display fields are copied
// verbatim and the schedule window is resolved through the normalizer. The
// clock is consumed only by the normalizer's malformed-date fallback, so
// projecting a well-formed session twice yields identical output regardless
// of when the projections happen.
func Project(s ClassSession, loc *time.Location, now time.Time) CalendarEvent {
	start, end := SessionWindow(s, loc, now)
	return CalendarEvent{
		ID:       s.ID,
		Title:    s.Name,
		Start:    start,
		End:      end,
		Location: s.LocationName,
		Trainer:  s.TrainerName,
		Capacity: s.MaxCapacity,
		Active:   s.Active,
	}
}
