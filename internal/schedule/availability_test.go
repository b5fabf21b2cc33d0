package schedule

import (
	"testing"
	"time"
)

// referenceSession mirrors the canonical full class used across the derivation
// tests: programmed for the morning of 2025-03-15 and at capacity.
func referenceSession() ClassSession {
	return ClassSession{
		ID:             "class-1",
		Name:           "Yoga",
		TrainerName:    "Lucía",
		LocationName:   "Sala 2",
		CalendarDate:   "15-03-2025",
		ScheduleWindow: "09:00 - 10:00",
		MaxCapacity:    10,
		EnrolledCount:  10,
		Active:         true,
		RawStatus:      "PROGRAMADA",
	}
}

func TestDerive_InactiveIsAlwaysCancelled(t *testing.T) {
	t.Parallel()

	session := referenceSession()
	session.Active = false

	instants := []time.Time{
		time.Date(2025, time.March, 15, 9, 30, 0, 0, time.UTC),
		time.Date(2025, time.March, 16, 9, 30, 0, 0, time.UTC),
		time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, now := range instants {
		if got := Derive(session, now, time.UTC); got != AvailabilityCancelled {
			t.Fatalf("expected CANCELLED at %v, got %s", now, got)
		}
	}
}

func TestDerive_StatusMarksInProgress(t *testing.T) {
	t.Parallel()

	// Outside the schedule window on purpose: the explicit status alone is
	// sufficient.
	now := time.Date(2025, time.March, 16, 9, 30, 0, 0, time.UTC)

	statuses := []string{"EN_PROCESO", "en curso", "IN PROGRESS", "In Progress", "procesando"}
	for _, status := range statuses {
		session := referenceSession()
		session.RawStatus = status
		if got := Derive(session, now, time.UTC); got != AvailabilityInProgress {
			t.Fatalf("expected status %q to derive IN_PROGRESS, got %s", status, got)
		}
	}
}

func TestDerive_TimeWindowMarksInProgress(t *testing.T) {
	t.Parallel()

	session := referenceSession()

	tests := []struct {
		name string
		now  time.Time
		want Availability
	}{
		{
			name: "mid window beats full capacity",
			now:  time.Date(2025, time.March, 15, 9, 30, 0, 0, time.UTC),
			want: AvailabilityInProgress,
		},
		{
			name: "window start is inclusive",
			now:  time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC),
			want: AvailabilityInProgress,
		},
		{
			name: "window end is inclusive",
			now:  time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC),
			want: AvailabilityInProgress,
		},
		{
			name: "one day later the capacity fact wins",
			now:  time.Date(2025, time.March, 16, 9, 30, 0, 0, time.UTC),
			want: AvailabilityFull,
		},
		{
			name: "just before start the capacity fact wins",
			now:  time.Date(2025, time.March, 15, 8, 59, 0, 0, time.UTC),
			want: AvailabilityFull,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := Derive(session, tc.now, time.UTC); got != tc.want {
				t.Fatalf("expected %s at %v, got %s", tc.want, tc.now, got)
			}
		})
	}
}

func TestDerive_FullAndAvailable(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)

	full := referenceSession()
	if got := Derive(full, now, time.UTC); got != AvailabilityFull {
		t.Fatalf("expected FULL for a class at capacity, got %s", got)
	}

	overbooked := referenceSession()
	overbooked.EnrolledCount = 12
	if got := Derive(overbooked, now, time.UTC); got != AvailabilityFull {
		t.Fatalf("expected FULL for an overbooked class, got %s", got)
	}

	open := referenceSession()
	open.EnrolledCount = 3
	if got := Derive(open, now, time.UTC); got != AvailabilityAvailable {
		t.Fatalf("expected AVAILABLE for an open class, got %s", got)
	}
}

func TestDerive_IsPureUnderRepeatedEvaluation(t *testing.T) {
	t.Parallel()

	session := referenceSession()
	now := time.Date(2025, time.March, 15, 9, 30, 0, 0, time.UTC)

	first := Derive(session, now, time.UTC)
	second := Derive(session, now, time.UTC)
	if first != second {
		t.Fatalf("expected identical derivations for identical inputs, got %s then %s", first, second)
	}
	if session != referenceSession() {
		t.Fatalf("expected Derive to leave the session untouched")
	}
}

func TestIsFinished(t *testing.T) {
	t.Parallel()

	finished := []string{"COMPLETADA", "completada", "FINALIZED", "finalizada", "CLASE COMPLETADA"}
	for _, status := range finished {
		if !IsFinished(status) {
			t.Fatalf("expected %q to be classified as finished", status)
		}
	}

	notFinished := []string{"PROGRAMADA", "EN_PROCESO", "", "cancelada"}
	for _, status := range notFinished {
		if IsFinished(status) {
			t.Fatalf("expected %q not to be classified as finished", status)
		}
	}
}
