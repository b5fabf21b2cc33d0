package application

import (
	"context"
	"fmt"
	"log/slog"
)

// DashboardService derives the aggregate reservation counts shown on the
// dashboard. The summary is cached under its own key, which Complete
// invalidates since completion is the only transition that moves a
// reservation into the completed bucket.
type DashboardService struct {
	reservations ReservationClient
	cache        *ResultCache
	logger       *slog.Logger
}

// NewDashboardService wires the dashboard against the upstream client and the
// shared result cache.
func NewDashboardService(reservations ReservationClient, cache *ResultCache) *DashboardService {
	return NewDashboardServiceWithLogger(reservations, cache, nil)
}

// NewDashboardServiceWithLogger constructs a DashboardService with a specified logger.
func NewDashboardServiceWithLogger(reservations ReservationClient, cache *ResultCache, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		reservations: reservations,
		cache:        cache,
		logger:       defaultLogger(logger),
	}
}

// Summary counts the caller's reservations by lifecycle state.
func (s *DashboardService) Summary(ctx context.Context) (DashboardSummary, error) {
	if s == nil || s.reservations == nil {
		return DashboardSummary{}, fmt.Errorf("dashboard service not configured")
	}

	if cached, ok := s.cache.Get(dashboardSummaryKey); ok {
		if summary, ok := cached.(DashboardSummary); ok {
			return summary, nil
		}
	}

	records, err := s.reservations.MyReservations(ctx, nil)
	if err != nil {
		return DashboardSummary{}, err
	}

	var summary DashboardSummary
	for _, record := range records {
		summary.Total++
		switch toReservation(record).Status {
		case ReservationCompleted:
			summary.Completed++
		case ReservationCancelled:
			summary.Cancelled++
		case ReservationReserved, ReservationConfirmed:
			summary.Upcoming++
		}
	}

	s.cache.Store(dashboardSummaryKey, summary)
	return summary, nil
}
