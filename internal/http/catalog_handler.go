package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/example/gym-class-booking/internal/application"
	"github.com/example/gym-class-booking/internal/schedule"
)

type catalogService interface {
	ListClasses(ctx context.Context, params application.ListClassesParams) (application.ClassPage, error)
	Availability(session schedule.ClassSession) schedule.Availability
	CalendarEvents(sessions []schedule.ClassSession) []schedule.CalendarEvent
}

type refreshPolicy interface {
	NextRefresh(sessions []schedule.ClassSession) (time.Duration, bool)
}

type CatalogHandler struct {
	service   catalogService
	refresh   refreshPolicy
	responder responder
	logger    *slog.Logger
}

func NewCatalogHandler(service catalogService, refresh refreshPolicy, logger *slog.Logger) *CatalogHandler {
	base := defaultLogger(logger)
	return &CatalogHandler{service: service, refresh: refresh, responder: newResponder(base), logger: base}
}

func (h *CatalogHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "CatalogHandler", operation, attrs...)
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	params, err := buildListParams(r)
	if err != nil {
		h.log(r.Context(), "List", "error_kind", "bad_request").ErrorContext(r.Context(), "invalid list query", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "List", "page", params.Page, "search", params.Search, "date", params.Date)

	page, err := h.service.ListClasses(r.Context(), params)
	if err != nil {
		logger.ErrorContext(r.Context(), "class listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(page.Sessions)).InfoContext(r.Context(), "classes listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, h.toListResponse(page))
}

func (h *CatalogHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	params, err := buildListParams(r)
	if err != nil {
		h.log(r.Context(), "Calendar", "error_kind", "bad_request").ErrorContext(r.Context(), "invalid calendar query", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "Calendar", "page", params.Page, "date", params.Date)

	page, err := h.service.ListClasses(r.Context(), params)
	if err != nil {
		logger.ErrorContext(r.Context(), "calendar listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	events := h.service.CalendarEvents(page.Sessions)
	logger.With("result_count", len(events)).InfoContext(r.Context(), "calendar listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, calendarResponse{Events: toEventDTOs(events)})
}

func buildListParams(r *http.Request) (application.ListClassesParams, error) {
	query := r.URL.Query()
	params := application.ListClassesParams{
		Search: query.Get("search"),
		Date:   query.Get("date"),
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return application.ListClassesParams{}, errInvalidPageParam
		}
		params.Page = page
	}
	if raw := query.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return application.ListClassesParams{}, errInvalidPageParam
		}
		params.PageSize = size
	}
	return params, nil
}

func (h *CatalogHandler) toListResponse(page application.ClassPage) listClassesResponse {
	resp := listClassesResponse{
		Classes:       toClassDTOs(page.Sessions, h.service),
		Page:          page.Page,
		PageSize:      page.PageSize,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		First:         page.First,
		Last:          page.Last,
	}
	if h.refresh != nil {
		if interval, ok := h.refresh.NextRefresh(page.Sessions); ok {
			resp.RefreshAfterSeconds = int(interval / time.Second)
		}
	}
	return resp
}

type listClassesResponse struct {
	Classes       []classDTO `json:"classes"`
	Page          int        `json:"page"`
	PageSize      int        `json:"pageSize"`
	TotalElements int        `json:"totalElements"`
	TotalPages    int        `json:"totalPages"`
	First         bool       `json:"first"`
	Last          bool       `json:"last"`
	// RefreshAfterSeconds tells the client to re-poll this query after the
	// given delay. Zero means no periodic refresh is needed.
	RefreshAfterSeconds int `json:"refreshAfterSeconds,omitempty"`
}

type classDTO struct {
	ID            string `json:"id"`
	ClassName     string `json:"className"`
	TrainerName   string `json:"trainerName"`
	LocationName  string `json:"locationName"`
	Description   string `json:"description,omitempty"`
	ClassDate     string `json:"classDate"`
	Schedule      string `json:"schedule"`
	Duration      int    `json:"duration"`
	MaxCapacity   int    `json:"maxCapacity"`
	EnrolledCount int    `json:"enrolledCount"`
	Availability  string `json:"availability"`
}

func toClassDTOs(sessions []schedule.ClassSession, service catalogService) []classDTO {
	if len(sessions) == 0 {
		return nil
	}
	out := make([]classDTO, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, classDTO{
			ID:            session.ID,
			ClassName:     session.Name,
			TrainerName:   session.TrainerName,
			LocationName:  session.LocationName,
			Description:   session.Description,
			ClassDate:     session.CalendarDate,
			Schedule:      session.ScheduleWindow,
			Duration:      session.DurationMinutes,
			MaxCapacity:   session.MaxCapacity,
			EnrolledCount: session.EnrolledCount,
			Availability:  string(service.Availability(session)),
		})
	}
	return out
}

type calendarResponse struct {
	Events []eventDTO `json:"events"`
}

type eventDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location,omitempty"`
	Trainer  string `json:"trainer,omitempty"`
	Capacity int    `json:"capacity"`
	Active   bool   `json:"active"`
}

func toEventDTOs(events []schedule.CalendarEvent) []eventDTO {
	if len(events) == 0 {
		return nil
	}
	out := make([]eventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, eventDTO{
			ID:       event.ID,
			Title:    event.Title,
			Start:    event.Start.Format(time.RFC3339),
			End:      event.End.Format(time.RFC3339),
			Location: event.Location,
			Trainer:  event.Trainer,
			Capacity: event.Capacity,
			Active:   event.Active,
		})
	}
	return out
}
