package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/gym-class-booking/internal/upstream"
)

type stubReservationClient struct {
	record       upstream.ReservationRecord
	reservations []upstream.ReservationRecord
	err          error

	createCalls   []string
	cancelCalls   []string
	confirmCalls  []string
	completeCalls []string
	listCalls     []*bool
}

func (s *stubReservationClient) CreateReservation(ctx context.Context, classID string) (upstream.ReservationRecord, error) {
	s.createCalls = append(s.createCalls, classID)
	if s.err != nil {
		return upstream.ReservationRecord{}, s.err
	}
	return s.record, nil
}

func (s *stubReservationClient) CancelReservation(ctx context.Context, reservationID string) error {
	s.cancelCalls = append(s.cancelCalls, reservationID)
	return s.err
}

func (s *stubReservationClient) ConfirmAttendance(ctx context.Context, reservationID string) error {
	s.confirmCalls = append(s.confirmCalls, reservationID)
	return s.err
}

func (s *stubReservationClient) CompleteReservation(ctx context.Context, reservationID string) error {
	s.completeCalls = append(s.completeCalls, reservationID)
	return s.err
}

func (s *stubReservationClient) MyReservations(ctx context.Context, completed *bool) ([]upstream.ReservationRecord, error) {
	s.listCalls = append(s.listCalls, completed)
	if s.err != nil {
		return nil, s.err
	}
	return s.reservations, nil
}

func seededCache(t *testing.T) *ResultCache {
	t.Helper()
	cache := NewResultCache(time.Minute, 0, time.Now)
	cache.Store("classes:0:10::", ClassPage{})
	cache.Store(myReservationsKey(nil), []Reservation{{ID: "res-1"}})
	cache.Store(dashboardSummaryKey, DashboardSummary{Total: 1})
	return cache
}

func TestReserveInvalidatesClassesAndReservations(t *testing.T) {
	t.Parallel()

	client := &stubReservationClient{record: upstream.ReservationRecord{
		ID:      "res-9",
		ClassID: "class-1",
		Status:  "reservada",
	}}
	cache := seededCache(t)
	service := NewReservationService(client, cache)

	reservation, err := service.Reserve(context.Background(), "class-1")
	if err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}
	if reservation.ID != "res-9" || reservation.Status != ReservationStatus("RESERVADA") {
		t.Errorf("unexpected reservation: %+v", reservation)
	}

	if _, ok := cache.Get("classes:0:10::"); ok {
		t.Errorf("expected class pages to be invalidated")
	}
	if _, ok := cache.Get(myReservationsKey(nil)); ok {
		t.Errorf("expected my-reservations to be invalidated")
	}
	if _, ok := cache.Get(dashboardSummaryKey); !ok {
		t.Errorf("expected the dashboard summary to survive a reserve")
	}
}

func TestReserveFailureLeavesCacheWarm(t *testing.T) {
	t.Parallel()

	rejection := &upstream.ValidationError{StatusCode: 409, Message: "No hay plazas disponibles en esta clase"}
	client := &stubReservationClient{err: rejection}
	cache := seededCache(t)
	service := NewReservationService(client, cache)

	_, err := service.Reserve(context.Background(), "class-1")
	var rejected *upstream.ValidationError
	if !errors.As(err, &rejected) || !rejected.Conflict() {
		t.Fatalf("expected the conflict to propagate, got %v", err)
	}

	if _, ok := cache.Get("classes:0:10::"); !ok {
		t.Errorf("a rejected reserve must not invalidate class pages")
	}
	if _, ok := cache.Get(myReservationsKey(nil)); !ok {
		t.Errorf("a rejected reserve must not invalidate reservations")
	}
}

func TestReserveRejectsEmptyClassIDLocally(t *testing.T) {
	t.Parallel()

	client := &stubReservationClient{}
	service := NewReservationService(client, NewResultCache(time.Minute, 0, time.Now))

	_, err := service.Reserve(context.Background(), "   ")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if len(client.createCalls) != 0 {
		t.Errorf("an empty class id must not reach the backend")
	}
}

func TestCancelInvalidatesClassesAndReservations(t *testing.T) {
	t.Parallel()

	client := &stubReservationClient{}
	cache := seededCache(t)
	service := NewReservationService(client, cache)

	if err := service.Cancel(context.Background(), "res-1"); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	if _, ok := cache.Get("classes:0:10::"); ok {
		t.Errorf("expected class pages to be invalidated")
	}
	if _, ok := cache.Get(myReservationsKey(nil)); ok {
		t.Errorf("expected my-reservations to be invalidated")
	}
	if len(client.cancelCalls) != 1 || client.cancelCalls[0] != "res-1" {
		t.Errorf("unexpected cancel calls: %+v", client.cancelCalls)
	}
}

func TestConfirmAttendanceInvalidatesOnlyReservations(t *testing.T) {
	t.Parallel()

	client := &stubReservationClient{}
	cache := seededCache(t)
	service := NewReservationService(client, cache)

	if err := service.ConfirmAttendance(context.Background(), "res-1"); err != nil {
		t.Fatalf("ConfirmAttendance failed: %v", err)
	}

	if _, ok := cache.Get(myReservationsKey(nil)); ok {
		t.Errorf("expected my-reservations to be invalidated")
	}
	if _, ok := cache.Get("classes:0:10::"); !ok {
		t.Errorf("confirming attendance must not touch class pages")
	}
	if _, ok := cache.Get(dashboardSummaryKey); !ok {
		t.Errorf("confirming attendance must not touch the dashboard summary")
	}
}

func TestCompleteInvalidatesReservationsAndSummary(t *testing.T) {
	t.Parallel()

	client := &stubReservationClient{}
	cache := seededCache(t)
	service := NewReservationService(client, cache)

	if err := service.Complete(context.Background(), "res-1"); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if _, ok := cache.Get(myReservationsKey(nil)); ok {
		t.Errorf("expected my-reservations to be invalidated")
	}
	if _, ok := cache.Get(dashboardSummaryKey); ok {
		t.Errorf("expected the dashboard summary to be invalidated")
	}
	if _, ok := cache.Get("classes:0:10::"); !ok {
		t.Errorf("completing must not touch class pages")
	}
}

func TestLifecycleErrorsLeaveCacheUntouched(t *testing.T) {
	t.Parallel()

	client := &stubReservationClient{err: &upstream.ConnectionError{Err: errors.New("refused")}}
	cache := seededCache(t)
	service := NewReservationService(client, cache)

	if err := service.Cancel(context.Background(), "res-1"); err == nil {
		t.Fatalf("expected cancel to fail")
	}
	if _, ok := cache.Get(myReservationsKey(nil)); !ok {
		t.Errorf("a failed transition must not invalidate anything")
	}
}

func TestMyReservationsCachesPerCompletedFilter(t *testing.T) {
	t.Parallel()

	client := &stubReservationClient{reservations: []upstream.ReservationRecord{
		{ID: "res-1", ClassID: "class-1", Status: "CONFIRMADA", ClassName: "Yoga"},
	}}
	service := NewReservationService(client, NewResultCache(time.Minute, 0, time.Now))

	completed := true
	if _, err := service.MyReservations(context.Background(), nil); err != nil {
		t.Fatalf("MyReservations failed: %v", err)
	}
	if _, err := service.MyReservations(context.Background(), nil); err != nil {
		t.Fatalf("MyReservations failed: %v", err)
	}
	if _, err := service.MyReservations(context.Background(), &completed); err != nil {
		t.Fatalf("MyReservations failed: %v", err)
	}

	// The repeated unfiltered call is a cache hit; the filtered one is not.
	if len(client.listCalls) != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", len(client.listCalls))
	}
}

func TestMyReservationsNormalizesStatus(t *testing.T) {
	t.Parallel()

	client := &stubReservationClient{reservations: []upstream.ReservationRecord{
		{ID: "res-1", Status: " completed "},
	}}
	service := NewReservationService(client, NewResultCache(time.Minute, 0, time.Now))

	reservations, err := service.MyReservations(context.Background(), nil)
	if err != nil {
		t.Fatalf("MyReservations failed: %v", err)
	}
	if len(reservations) != 1 || reservations[0].Status != ReservationCompleted {
		t.Errorf("unexpected reservations: %+v", reservations)
	}
}
