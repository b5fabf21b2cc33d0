package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/gym-class-booking/internal/application"
	"github.com/example/gym-class-booking/internal/upstream"
)

var (
	errBadRequestBody        = errors.New("El formato de la petición no es válido.")
	errInvalidReservationID  = errors.New("El identificador de la reserva no es válido.")
	errInvalidCompletedParam = errors.New("El parámetro completed debe ser true o false.")
	errInvalidPageParam      = errors.New("Los parámetros de paginación no son válidos.")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := localizedStatusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleServiceError maps the service error taxonomy onto HTTP responses.
// Backend rejections keep their original status code and message verbatim so
// the caller sees exactly what the backend said.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	var vErr *application.ValidationError
	if errors.As(err, &vErr) {
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: "Los datos introducidos no son válidos.",
			Errors:  localizeValidationErrors(vErr),
		})
		return
	}

	var rejection *upstream.ValidationError
	if errors.As(err, &rejection) {
		status := rejection.StatusCode
		if status < http.StatusBadRequest || status > 499 {
			status = http.StatusUnprocessableEntity
		}
		r.writeJSON(ctx, w, status, errorResponse{Message: rejection.Message})
		return
	}

	var connection *upstream.ConnectionError
	if errors.As(err, &connection) {
		r.writeJSON(ctx, w, http.StatusBadGateway, errorResponse{Message: connection.Error()})
		return
	}

	r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: localizedStatusMessage(http.StatusInternalServerError)})
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "La petición no es correcta."
	case http.StatusNotFound:
		return "No se ha encontrado el recurso solicitado."
	case http.StatusConflict:
		return "La operación entra en conflicto con el estado actual."
	case http.StatusUnprocessableEntity:
		return "Los datos introducidos no son válidos."
	case http.StatusBadGateway:
		return "No se ha podido contactar con el servidor. Inténtalo de nuevo más tarde."
	default:
		return "Ha ocurrido un error inesperado. Inténtalo de nuevo más tarde."
	}
}

func localizeValidationErrors(vErr *application.ValidationError) map[string]string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return nil
	}

	translated := make(map[string]string, len(vErr.FieldErrors))
	for field, msg := range vErr.FieldErrors {
		translated[field] = translateValidationMessage(msg)
	}
	return translated
}

func translateValidationMessage(message string) string {
	switch message {
	case "class id is required":
		return "Debes indicar la clase que quieres reservar."
	case "reservation id is required":
		return "Debes indicar la reserva."
	default:
		return message
	}
}

type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}
