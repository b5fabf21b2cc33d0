package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/gym-class-booking/internal/upstream"
)

// ReservationClient captures the upstream interactions of the reservation
// lifecycle.
type ReservationClient interface {
	CreateReservation(ctx context.Context, classID string) (upstream.ReservationRecord, error)
	CancelReservation(ctx context.Context, reservationID string) error
	ConfirmAttendance(ctx context.Context, reservationID string) error
	CompleteReservation(ctx context.Context, reservationID string) error
	MyReservations(ctx context.Context, completed *bool) ([]upstream.ReservationRecord, error)
}

// ReservationService drives the reservation lifecycle. Every transition is a
// single best-effort upstream call: nothing is retried automatically and a
// failure is surfaced typed for the caller to decide. Successful transitions
// never write into the shared cache; they only invalidate the keys the
// transition made stale, so the next read re-syncs from the backend.
type ReservationService struct {
	reservations ReservationClient
	cache        *ResultCache
	logger       *slog.Logger
}

// NewReservationService wires the lifecycle manager against the upstream
// client and the shared result cache.
func NewReservationService(reservations ReservationClient, cache *ResultCache) *ReservationService {
	return NewReservationServiceWithLogger(reservations, cache, nil)
}

// NewReservationServiceWithLogger constructs a ReservationService with a specified logger.
func NewReservationServiceWithLogger(reservations ReservationClient, cache *ResultCache, logger *slog.Logger) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		cache:        cache,
		logger:       defaultLogger(logger),
	}
}

// Reserve books a spot in a class. On success the class catalog and
// my-reservations caches are invalidated so the next read reflects the new
// enrollment; a failed attempt leaves every cached result untouched.
func (s *ReservationService) Reserve(ctx context.Context, classID string) (Reservation, error) {
	if s == nil || s.reservations == nil {
		return Reservation{}, fmt.Errorf("reservation service not configured")
	}
	if strings.TrimSpace(classID) == "" {
		vErr := &ValidationError{}
		vErr.add("class_id", "class id is required")
		return Reservation{}, vErr
	}

	record, err := s.reservations.CreateReservation(ctx, classID)
	if err != nil {
		serviceLogger(ctx, s.logger, "reservations", "reserve").WarnContext(ctx,
			"reservation rejected", "class_id", classID, "kind", ErrorKind(err), "error", err)
		return Reservation{}, err
	}

	s.cache.Invalidate(classesKeyPrefix)
	s.cache.Invalidate(reservationsKeyPrefix)

	return toReservation(record), nil
}

// Cancel cancels a reservation and invalidates the same caches as Reserve:
// a freed spot changes both the catalog and the caller's reservation list.
func (s *ReservationService) Cancel(ctx context.Context, reservationID string) error {
	if s == nil || s.reservations == nil {
		return fmt.Errorf("reservation service not configured")
	}
	if strings.TrimSpace(reservationID) == "" {
		vErr := &ValidationError{}
		vErr.add("reservation_id", "reservation id is required")
		return vErr
	}

	if err := s.reservations.CancelReservation(ctx, reservationID); err != nil {
		return err
	}

	s.cache.Invalidate(classesKeyPrefix)
	s.cache.Invalidate(reservationsKeyPrefix)
	return nil
}

// ConfirmAttendance confirms the caller will attend. Only the my-reservations
// mirror changes, so only that key is invalidated.
func (s *ReservationService) ConfirmAttendance(ctx context.Context, reservationID string) error {
	if s == nil || s.reservations == nil {
		return fmt.Errorf("reservation service not configured")
	}
	if strings.TrimSpace(reservationID) == "" {
		vErr := &ValidationError{}
		vErr.add("reservation_id", "reservation id is required")
		return vErr
	}

	if err := s.reservations.ConfirmAttendance(ctx, reservationID); err != nil {
		return err
	}

	s.cache.Invalidate(reservationsKeyPrefix)
	return nil
}

// Complete marks a confirmed reservation as completed. Completion changes the
// aggregate counts, so the dashboard summary is invalidated alongside the
// my-reservations list.
func (s *ReservationService) Complete(ctx context.Context, reservationID string) error {
	if s == nil || s.reservations == nil {
		return fmt.Errorf("reservation service not configured")
	}
	if strings.TrimSpace(reservationID) == "" {
		vErr := &ValidationError{}
		vErr.add("reservation_id", "reservation id is required")
		return vErr
	}

	if err := s.reservations.CompleteReservation(ctx, reservationID); err != nil {
		return err
	}

	s.cache.Invalidate(reservationsKeyPrefix)
	s.cache.Invalidate(dashboardSummaryKey)
	return nil
}

// MyReservations lists the caller's reservations, optionally filtered by
// completion, serving from cache while fresh.
func (s *ReservationService) MyReservations(ctx context.Context, completed *bool) ([]Reservation, error) {
	if s == nil || s.reservations == nil {
		return nil, fmt.Errorf("reservation service not configured")
	}

	key := myReservationsKey(completed)
	if cached, ok := s.cache.Get(key); ok {
		if reservations, ok := cached.([]Reservation); ok {
			return cloneReservations(reservations), nil
		}
	}

	records, err := s.reservations.MyReservations(ctx, completed)
	if err != nil {
		return nil, err
	}

	reservations := make([]Reservation, 0, len(records))
	for _, record := range records {
		reservations = append(reservations, toReservation(record))
	}
	s.cache.Store(key, cloneReservations(reservations))
	return reservations, nil
}

func toReservation(record upstream.ReservationRecord) Reservation {
	return Reservation{
		ID:          record.ID,
		ClassID:     record.ClassID,
		Status:      ReservationStatus(strings.ToUpper(strings.TrimSpace(record.Status))),
		ClassName:   record.ClassName,
		ClassDate:   record.ClassDate,
		Schedule:    record.Schedule,
		TrainerName: record.TrainerName,
	}
}

func cloneReservations(reservations []Reservation) []Reservation {
	if len(reservations) == 0 {
		return nil
	}
	out := make([]Reservation, len(reservations))
	copy(out, reservations)
	return out
}
