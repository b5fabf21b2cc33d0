package testfixtures

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/example/gym-class-booking/internal/upstream"
)

// BackendHarness is an in-memory fake of the booking backend for
// integration-style client tests. It serves the paginated class listing and
// the reservation lifecycle, enforcing capacity the way the real backend does.
type BackendHarness struct {
	mu           sync.Mutex
	classes      []upstream.ClassRecord
	reservations map[string]upstream.ReservationRecord

	server *httptest.Server
}

// NewBackendHarness starts a fake backend preloaded with the given classes.
// The server is shut down automatically when the test finishes.
func NewBackendHarness(tb testing.TB, classes ...upstream.ClassRecord) *BackendHarness {
	tb.Helper()

	h := &BackendHarness{
		classes:      classes,
		reservations: make(map[string]upstream.ReservationRecord),
	}
	h.server = httptest.NewServer(http.HandlerFunc(h.route))
	tb.Cleanup(h.server.Close)
	return h
}

// URL returns the base URL of the fake backend.
func (h *BackendHarness) URL() string {
	return h.server.URL
}

// SetClasses replaces the class listing.
func (h *BackendHarness) SetClasses(classes ...upstream.ClassRecord) {
	h.mu.Lock()
	h.classes = classes
	h.mu.Unlock()
}

// Reservations returns a snapshot of the stored reservations.
func (h *BackendHarness) Reservations() []upstream.ReservationRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]upstream.ReservationRecord, 0, len(h.reservations))
	for _, record := range h.reservations {
		out = append(out, record)
	}
	return out
}

func (h *BackendHarness) route(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/classes/paginated":
		h.listClasses(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/reservations":
		h.createReservation(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/reservations/my":
		h.listReservations(w, r)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/reservations/"):
		h.transition(w, r, strings.TrimPrefix(r.URL.Path, "/reservations/"), "CANCELLED")
	case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/confirm"):
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/reservations/"), "/confirm")
		h.transition(w, r, id, "CONFIRMED")
	case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/complete"):
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/reservations/"), "/complete")
		h.transition(w, r, id, "COMPLETED")
	default:
		http.NotFound(w, r)
	}
}

func (h *BackendHarness) listClasses(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size <= 0 {
		size = 10
	}

	total := len(h.classes)
	totalPages := (total + size - 1) / size
	lo := page * size
	hi := lo + size
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}

	writeJSON(w, http.StatusOK, upstream.ClassPage{
		Content:       h.classes[lo:hi],
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page >= totalPages-1,
	})
}

func (h *BackendHarness) createReservation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClassID string `json:"classId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ClassID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Datos de reserva incorrectos"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for i, class := range h.classes {
		if class.ID != req.ClassID {
			continue
		}
		if class.EnrolledCount >= class.MaxCapacity {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "No hay plazas disponibles en esta clase"})
			return
		}
		h.classes[i].EnrolledCount++

		record := upstream.ReservationRecord{
			ID:          fmt.Sprintf("reservation-%d", len(h.reservations)+1),
			ClassID:     class.ID,
			Status:      "RESERVED",
			ClassName:   class.ClassName,
			ClassDate:   class.ClassDate,
			Schedule:    class.Schedule,
			TrainerName: class.TrainerName,
		}
		h.reservations[record.ID] = record
		writeJSON(w, http.StatusCreated, record)
		return
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"message": "La clase indicada no existe"})
}

func (h *BackendHarness) listReservations(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	filter := r.URL.Query().Get("completed")
	out := make([]upstream.ReservationRecord, 0, len(h.reservations))
	for _, record := range h.reservations {
		completed := record.Status == "COMPLETED"
		if filter == "true" && !completed {
			continue
		}
		if filter == "false" && completed {
			continue
		}
		out = append(out, record)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *BackendHarness) transition(w http.ResponseWriter, _ *http.Request, id, status string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	record, ok := h.reservations[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "La reserva indicada no existe"})
		return
	}
	record.Status = status
	h.reservations[id] = record
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
