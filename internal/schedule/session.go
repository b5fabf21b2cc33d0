// Package schedule holds the pure domain model for gym class sessions: the
// upstream snapshot type, the time/format normalizer, the availability state
// deriver, and the calendar projection. Nothing in this package performs I/O
// or keeps state; every function is a pure computation over a session snapshot
// and an instant.
package schedule

import "time"

// ClassSession is an immutable snapshot of one scheduled class occurrence as
// reported by the upstream service. Field formats are not contractually
// stable: CalendarDate arrives in any of three shapes and RawStatus is free
// text, so both are kept verbatim and interpreted on read.
type ClassSession struct {
	ID              string
	Name            string
	TrainerName     string
	LocationName    string
	Description     string
	CalendarDate    string
	ScheduleWindow  string
	DurationMinutes int
	MaxCapacity     int
	Active          bool
	RawStatus       string
	EnrolledCount   int
}

// Availability is the derived bookable state of a session. It is recomputed
// from the live clock on every read and never stored alongside the session.
type Availability string

const (
	// AvailabilityAvailable means the session can still be booked.
	AvailabilityAvailable Availability = "AVAILABLE"
	// AvailabilityFull means enrollment has reached capacity.
	AvailabilityFull Availability = "FULL"
	// AvailabilityCancelled means the session was administratively withdrawn.
	AvailabilityCancelled Availability = "CANCELLED"
	// AvailabilityInProgress means the session is currently running.
	AvailabilityInProgress Availability = "IN_PROGRESS"
)

// CalendarEvent is the display projection of a session with absolute start and
// end instants. It has no lifecycle of its own: it is safe to discard and
// recompute from the session at any time.
type CalendarEvent struct {
	ID       string
	Title    string
	Start    time.Time
	End      time.Time
	Location string
	Trainer  string
	Capacity int
	Active   bool
}
