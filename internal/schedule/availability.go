package schedule

import (
	"strings"
	"time"
)

// Upstream status spelling is not contractually stable ("EN_PROCESO",
// "en curso", "COMPLETADA", "FINALIZED", ...), so classification matches by
// uppercase substring rather than equality. The markers live here and nowhere
// else; call sites must not grow their own string matching.
var (
	finishedMarkers   = []string{"COMPLET", "FINALIZ"}
	inProgressMarkers = []string{"PROGRES", "PROCES", "EN CURSO"}
)

// IsFinished reports whether the raw upstream status marks a session as
// finished. Finished sessions are excluded from catalog results entirely
// rather than being assigned an availability state, so Derive is normally
// never consulted for them.
func IsFinished(rawStatus string) bool {
	return containsAny(strings.ToUpper(rawStatus), finishedMarkers)
}

// Derive computes the bookable state of a session at the given instant. It is
// pure and total; the same session and instant always derive the same state
// and the session is never mutated. Precedence is significant:
//
//  1. an administratively withdrawn session is CANCELLED whatever the clock says;
//  2. an explicit in-progress status, or now falling inside the schedule
//     window, means IN_PROGRESS. The status string is trusted first and the
//     time window covers an absent or stale status. The temporal fact
//     dominates capacity because it better predicts whether a booking attempt
//     would succeed;
//  3. a session at or over capacity is FULL;
//  4. everything else is AVAILABLE.
func Derive(s ClassSession, now time.Time, loc *time.Location) Availability {
	if !s.Active {
		return AvailabilityCancelled
	}
	if containsAny(strings.ToUpper(s.RawStatus), inProgressMarkers) {
		return AvailabilityInProgress
	}
	start, end := SessionWindow(s, loc, now)
	if !now.Before(start) && !now.After(end) {
		return AvailabilityInProgress
	}
	if s.EnrolledCount >= s.MaxCapacity {
		return AvailabilityFull
	}
	return AvailabilityAvailable
}

func containsAny(value string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(value, marker) {
			return true
		}
	}
	return false
}
