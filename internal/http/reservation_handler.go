package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/gym-class-booking/internal/application"
)

type reservationService interface {
	Reserve(ctx context.Context, classID string) (application.Reservation, error)
	Cancel(ctx context.Context, reservationID string) error
	ConfirmAttendance(ctx context.Context, reservationID string) error
	Complete(ctx context.Context, reservationID string) error
	MyReservations(ctx context.Context, completed *bool) ([]application.Reservation, error)
}

type ReservationHandler struct {
	service   reservationService
	responder responder
	logger    *slog.Logger
}

func NewReservationHandler(service reservationService, logger *slog.Logger) *ReservationHandler {
	base := defaultLogger(logger)
	return &ReservationHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ReservationHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ReservationHandler", operation, attrs...)
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode reservation request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "class_id", req.ClassID)

	reservation, err := h.service.Reserve(r.Context(), req.ClassID)
	if err != nil {
		logger.ErrorContext(r.Context(), "reservation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("reservation_id", reservation.ID).InfoContext(r.Context(), "reservation created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, reservationResponse{Reservation: toReservationDTO(reservation)})
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "Cancel", func(ctx context.Context, id string) error {
		return h.service.Cancel(ctx, id)
	})
}

func (h *ReservationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "Confirm", func(ctx context.Context, id string) error {
		return h.service.ConfirmAttendance(ctx, id)
	})
}

func (h *ReservationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "Complete", func(ctx context.Context, id string) error {
		return h.service.Complete(ctx, id)
	})
}

// lifecycle is the shared shape of cancel, confirm, and complete: resolve the
// id from the path, delegate, answer 204 on success.
func (h *ReservationHandler) lifecycle(w http.ResponseWriter, r *http.Request, operation string, transition func(context.Context, string) error) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "reservationID"))
	if id == "" {
		h.log(r.Context(), operation, "error_kind", "bad_request").ErrorContext(r.Context(), "missing reservation id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidReservationID)
		return
	}

	logger := h.log(r.Context(), operation, "reservation_id", id)
	if err := transition(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "reservation transition failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "reservation transition applied")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	completed, err := completedFilter(r)
	if err != nil {
		h.log(r.Context(), "ListMine", "error_kind", "bad_request").ErrorContext(r.Context(), "invalid completed filter", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "ListMine")

	reservations, err := h.service.MyReservations(r.Context(), completed)
	if err != nil {
		logger.ErrorContext(r.Context(), "reservation list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(reservations)).InfoContext(r.Context(), "reservations listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listReservationsResponse{Reservations: toReservationDTOs(reservations)})
}

func completedFilter(r *http.Request) (*bool, error) {
	raw := r.URL.Query().Get("completed")
	switch raw {
	case "":
		return nil, nil
	case "true":
		value := true
		return &value, nil
	case "false":
		value := false
		return &value, nil
	default:
		return nil, errInvalidCompletedParam
	}
}

type createReservationRequest struct {
	ClassID string `json:"classId"`
}

type reservationResponse struct {
	Reservation reservationDTO `json:"reservation"`
}

type listReservationsResponse struct {
	Reservations []reservationDTO `json:"reservations"`
}

type reservationDTO struct {
	ID          string `json:"id"`
	ClassID     string `json:"classId"`
	Status      string `json:"status"`
	ClassName   string `json:"className,omitempty"`
	ClassDate   string `json:"classDate,omitempty"`
	Schedule    string `json:"schedule,omitempty"`
	TrainerName string `json:"trainerName,omitempty"`
}

func toReservationDTO(reservation application.Reservation) reservationDTO {
	return reservationDTO{
		ID:          reservation.ID,
		ClassID:     reservation.ClassID,
		Status:      string(reservation.Status),
		ClassName:   reservation.ClassName,
		ClassDate:   reservation.ClassDate,
		Schedule:    reservation.Schedule,
		TrainerName: reservation.TrainerName,
	}
}

func toReservationDTOs(reservations []application.Reservation) []reservationDTO {
	if len(reservations) == 0 {
		return nil
	}
	out := make([]reservationDTO, 0, len(reservations))
	for _, reservation := range reservations {
		out = append(out, toReservationDTO(reservation))
	}
	return out
}
