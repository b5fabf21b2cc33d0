package upstream

import "net/http"

// Generic localized messages shown when the backend gives us nothing better.
const (
	connectionErrorMessage = "No se pudo conectar con el servidor. Comprueba tu conexión e inténtalo de nuevo."
	unknownErrorMessage    = "Ha ocurrido un error inesperado. Inténtalo de nuevo más tarde."
)

// ValidationError carries a structured rejection from the backend: any 4xx
// response whose body includes a message field. The message is localized by
// the backend and surfaced to callers verbatim.
type ValidationError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e == nil || e.Message == "" {
		return unknownErrorMessage
	}
	return e.Message
}

// Conflict reports whether the backend rejected the request because it clashes
// with current state, e.g. reserving a class that is already full or already
// reserved.
func (e *ValidationError) Conflict() bool {
	return e != nil && e.StatusCode == http.StatusConflict
}

// ConnectionError indicates no response was received at all, whether from a
// network failure or a timeout.
type ConnectionError struct {
	Err error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string { return connectionErrorMessage }

// Unwrap exposes the transport error for errors.Is/As inspection.
func (e *ConnectionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UnknownError wraps any failure that is neither a structured rejection nor a
// transport failure: unexpected status codes, undecodable bodies, 4xx replies
// without a message.
type UnknownError struct {
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *UnknownError) Error() string { return unknownErrorMessage }

// Unwrap exposes the underlying cause for errors.Is/As inspection.
func (e *UnknownError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
