package application

import "github.com/example/gym-class-booking/internal/schedule"

// ListClassesParams identifies one catalog query. Page and PageSize follow the
// backend's zero-based paging; Search and Date are optional filters. Together
// with the operation name these four values form the cache key of the query.
type ListClassesParams struct {
	Page     int
	PageSize int
	Search   string
	Date     string
}

// ClassPage is one page of bookable sessions together with pagination
// metadata. On the unfiltered path the metadata is the backend's own; on the
// filtered path it is recomputed from the locally filtered set.
type ClassPage struct {
	Sessions      []schedule.ClassSession
	Page          int
	PageSize      int
	TotalElements int
	TotalPages    int
	First         bool
	Last          bool
}

// ReservationStatus enumerates the lifecycle states mirrored from the backend.
type ReservationStatus string

const (
	// ReservationReserved is the initial state after a successful booking.
	ReservationReserved ReservationStatus = "RESERVED"
	// ReservationConfirmed means attendance has been confirmed.
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	// ReservationCompleted means the session took place and was attended.
	ReservationCompleted ReservationStatus = "COMPLETED"
	// ReservationCancelled means the reservation was cancelled.
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// Reservation mirrors a reservation owned by the backend. The engine never
// invents state transitions: it only reflects the calls it has issued and
// relies on cache invalidation to re-sync everything else.
type Reservation struct {
	ID          string
	ClassID     string
	Status      ReservationStatus
	ClassName   string
	ClassDate   string
	Schedule    string
	TrainerName string
}

// DashboardSummary aggregates the caller's reservations for the dashboard
// view. Upcoming counts reservations that are reserved or confirmed.
type DashboardSummary struct {
	Total     int
	Upcoming  int
	Completed int
	Cancelled int
}
