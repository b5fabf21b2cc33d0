package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/gym-class-booking/internal/application"
)

type dashboardService interface {
	Summary(ctx context.Context) (application.DashboardSummary, error)
}

type DashboardHandler struct {
	service   dashboardService
	responder responder
	logger    *slog.Logger
}

func NewDashboardHandler(service dashboardService, logger *slog.Logger) *DashboardHandler {
	base := defaultLogger(logger)
	return &DashboardHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := handlerLogger(r.Context(), h.logger, "DashboardHandler", "Summary")

	summary, err := h.service.Summary(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "summary failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "summary computed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, summaryResponse{Summary: summaryDTO{
		Total:     summary.Total,
		Upcoming:  summary.Upcoming,
		Completed: summary.Completed,
		Cancelled: summary.Cancelled,
	}})
}

type summaryResponse struct {
	Summary summaryDTO `json:"summary"`
}

type summaryDTO struct {
	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}
