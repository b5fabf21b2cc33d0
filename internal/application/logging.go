package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/example/gym-class-booking/internal/logging"
	"github.com/example/gym-class-booking/internal/upstream"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func serviceLogger(ctx context.Context, base *slog.Logger, serviceName, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = base
	}
	if logger == nil {
		logger = slog.Default()
	}

	pairs := []any{"service", serviceName}
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	if len(attrs) > 0 {
		pairs = append(pairs, attrs...)
	}
	return logger.With(pairs...)
}

// ErrorKind maps the error taxonomy to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}

	var localValidation *ValidationError
	if errors.As(err, &localValidation) {
		return "validation"
	}

	var rejected *upstream.ValidationError
	if errors.As(err, &rejected) {
		if rejected.Conflict() {
			return "conflict"
		}
		return "rejected"
	}

	var connection *upstream.ConnectionError
	if errors.As(err, &connection) {
		return "connection"
	}

	return "unexpected"
}
