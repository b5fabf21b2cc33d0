package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/gym-class-booking/internal/upstream"
)

func TestSummaryCountsReservationsByStatus(t *testing.T) {
	t.Parallel()

	client := &stubReservationClient{reservations: []upstream.ReservationRecord{
		{ID: "r1", Status: "RESERVED"},
		{ID: "r2", Status: "CONFIRMED"},
		{ID: "r3", Status: "COMPLETED"},
		{ID: "r4", Status: "COMPLETED"},
		{ID: "r5", Status: "CANCELLED"},
	}}
	service := NewDashboardService(client, NewResultCache(time.Minute, 0, time.Now))

	summary, err := service.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	want := DashboardSummary{Total: 5, Upcoming: 2, Completed: 2, Cancelled: 1}
	if summary != want {
		t.Errorf("Summary = %+v, want %+v", summary, want)
	}
}

func TestSummaryIsCachedUntilCompletion(t *testing.T) {
	t.Parallel()

	client := &stubReservationClient{reservations: []upstream.ReservationRecord{
		{ID: "r1", Status: "CONFIRMED"},
	}}
	cache := NewResultCache(time.Minute, 0, time.Now)
	dashboard := NewDashboardService(client, cache)
	reservations := NewReservationService(client, cache)

	if _, err := dashboard.Summary(context.Background()); err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if _, err := dashboard.Summary(context.Background()); err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if len(client.listCalls) != 1 {
		t.Fatalf("expected the second summary to hit the cache, got %d upstream calls", len(client.listCalls))
	}

	if err := reservations.Complete(context.Background(), "r1"); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if _, err := dashboard.Summary(context.Background()); err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if len(client.listCalls) != 2 {
		t.Fatalf("expected completion to force a re-fetch, got %d upstream calls", len(client.listCalls))
	}
}

func TestSummaryPropagatesUpstreamErrors(t *testing.T) {
	t.Parallel()

	client := &stubReservationClient{err: &upstream.ConnectionError{Err: errors.New("refused")}}
	service := NewDashboardService(client, NewResultCache(time.Minute, 0, time.Now))

	_, err := service.Summary(context.Background())
	var connErr *upstream.ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected a connection error, got %v", err)
	}
}
