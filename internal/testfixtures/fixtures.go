// Package testfixtures provides deterministic clocks, domain fixtures, and a
// fake booking backend for tests across the module.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/gym-class-booking/internal/schedule"
	"github.com/example/gym-class-booking/internal/upstream"
)

var (
	classCounter       uint64
	reservationCounter uint64
)

// The reference morning sits one hour before the default class window so
// fixture classes are scheduled, not in progress, unless a test says so.
var referenceTime = time.Date(2025, time.March, 15, 8, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ClassSessionOption configures a generated class session fixture.
type ClassSessionOption func(*schedule.ClassSession)

// NewClassSession returns a deterministic bookable session on the reference
// day with optional overrides.
func NewClassSession(opts ...ClassSessionOption) schedule.ClassSession {
	idx := atomic.AddUint64(&classCounter, 1)
	session := schedule.ClassSession{
		ID:              fmt.Sprintf("class-%03d", idx),
		Name:            fmt.Sprintf("Yoga %03d", idx),
		TrainerName:     "Laura Ortiz",
		LocationName:    "Sala 2",
		Description:     "Sesión guiada para todos los niveles",
		CalendarDate:    "2025-03-15",
		ScheduleWindow:  "09:00 - 10:00",
		DurationMinutes: 60,
		MaxCapacity:     12,
		Active:          true,
		RawStatus:       "PROGRAMADA",
	}
	for _, opt := range opts {
		opt(&session)
	}
	return session
}

// WithClassID overrides the generated class id.
func WithClassID(id string) ClassSessionOption {
	return func(s *schedule.ClassSession) {
		s.ID = id
	}
}

// WithClassName overrides the generated name.
func WithClassName(name string) ClassSessionOption {
	return func(s *schedule.ClassSession) {
		s.Name = name
	}
}

// WithClassDate overrides the calendar date string.
func WithClassDate(date string) ClassSessionOption {
	return func(s *schedule.ClassSession) {
		s.CalendarDate = date
	}
}

// WithScheduleWindow overrides the schedule window string.
func WithScheduleWindow(window string) ClassSessionOption {
	return func(s *schedule.ClassSession) {
		s.ScheduleWindow = window
	}
}

// WithStatus overrides the raw status string.
func WithStatus(status string) ClassSessionOption {
	return func(s *schedule.ClassSession) {
		s.RawStatus = status
	}
}

// WithEnrollment sets enrollment and capacity together.
func WithEnrollment(enrolled, capacity int) ClassSessionOption {
	return func(s *schedule.ClassSession) {
		s.EnrolledCount = enrolled
		s.MaxCapacity = capacity
	}
}

// WithInactive marks the session administratively withdrawn.
func WithInactive() ClassSessionOption {
	return func(s *schedule.ClassSession) {
		s.Active = false
	}
}

// ToClassRecord maps a session fixture back to its raw wire shape, for tests
// that feed a fake backend.
func ToClassRecord(session schedule.ClassSession) upstream.ClassRecord {
	return upstream.ClassRecord{
		ID:            session.ID,
		ClassName:     session.Name,
		LocationName:  session.LocationName,
		TrainerName:   session.TrainerName,
		ClassDate:     session.CalendarDate,
		Duration:      session.DurationMinutes,
		MaxCapacity:   session.MaxCapacity,
		Schedule:      session.ScheduleWindow,
		Active:        session.Active,
		Description:   session.Description,
		Status:        session.RawStatus,
		EnrolledCount: session.EnrolledCount,
	}
}

// ReservationOption configures a generated reservation record.
type ReservationOption func(*upstream.ReservationRecord)

// NewReservationRecord returns a deterministic reservation wire record with
// optional overrides.
func NewReservationRecord(opts ...ReservationOption) upstream.ReservationRecord {
	idx := atomic.AddUint64(&reservationCounter, 1)
	record := upstream.ReservationRecord{
		ID:          fmt.Sprintf("reservation-%03d", idx),
		ClassID:     fmt.Sprintf("class-%03d", idx),
		Status:      "RESERVED",
		ClassName:   "Yoga",
		ClassDate:   "2025-03-15",
		Schedule:    "09:00 - 10:00",
		TrainerName: "Laura Ortiz",
	}
	for _, opt := range opts {
		opt(&record)
	}
	return record
}

// WithReservationID overrides the generated reservation id.
func WithReservationID(id string) ReservationOption {
	return func(r *upstream.ReservationRecord) {
		r.ID = id
	}
}

// WithReservationClass overrides the reserved class id.
func WithReservationClass(classID string) ReservationOption {
	return func(r *upstream.ReservationRecord) {
		r.ClassID = classID
	}
}

// WithReservationStatus overrides the lifecycle status.
func WithReservationStatus(status string) ReservationOption {
	return func(r *upstream.ReservationRecord) {
		r.Status = status
	}
}
