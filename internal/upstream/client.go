// Package upstream implements the HTTP/JSON client of the backend system of
// record for classes and reservations, together with the error taxonomy every
// caller dispatches on. The backend owns capacity and reservation state; this
// client only fetches snapshots and issues the transitions the caller
// explicitly requested.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Client talks to the backend over HTTP. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient validates the base URL and wires the transport. A nil httpClient
// falls back to http.DefaultClient, which carries no request deadline; callers
// wanting a bounded timeout configure it on the client they pass in.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("upstream base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid upstream base URL %q", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{baseURL: baseURL, http: httpClient, logger: logger}, nil
}

// ListClasses fetches one page of raw class records. search is forwarded when
// non-empty; the backend cannot combine it with any other filter, so combined
// filtering happens on our side of the boundary.
func (c *Client) ListClasses(ctx context.Context, page, size int, search string) (ClassPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	if search != "" {
		query.Set("search", search)
	}

	var out ClassPage
	if err := c.do(ctx, http.MethodGet, "/classes/paginated", query, nil, &out); err != nil {
		return ClassPage{}, err
	}
	return out, nil
}

// CreateReservation books a spot in the given class on behalf of the caller.
func (c *Client) CreateReservation(ctx context.Context, classID string) (ReservationRecord, error) {
	payload := map[string]string{"classId": classID}

	var out ReservationRecord
	if err := c.do(ctx, http.MethodPost, "/reservations", nil, payload, &out); err != nil {
		return ReservationRecord{}, err
	}
	return out, nil
}

// CancelReservation cancels an existing reservation.
func (c *Client) CancelReservation(ctx context.Context, reservationID string) error {
	return c.do(ctx, http.MethodDelete, "/reservations/"+url.PathEscape(reservationID), nil, nil, nil)
}

// ConfirmAttendance marks the caller as attending the reserved session.
func (c *Client) ConfirmAttendance(ctx context.Context, reservationID string) error {
	return c.do(ctx, http.MethodPut, "/reservations/"+url.PathEscape(reservationID)+"/confirm", nil, nil, nil)
}

// CompleteReservation marks a confirmed reservation as completed.
func (c *Client) CompleteReservation(ctx context.Context, reservationID string) error {
	return c.do(ctx, http.MethodPut, "/reservations/"+url.PathEscape(reservationID)+"/complete", nil, nil, nil)
}

// MyReservations lists the caller's reservations, optionally filtered by
// completion. A nil completed returns everything.
func (c *Client) MyReservations(ctx context.Context, completed *bool) ([]ReservationRecord, error) {
	query := url.Values{}
	if completed != nil {
		query.Set("completed", strconv.FormatBool(*completed))
	}

	var out []ReservationRecord
	if err := c.do(ctx, http.MethodGet, "/reservations/my", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do runs one request/response cycle and translates failures into the
// package's error taxonomy. Each request carries a fresh correlation id so
// backend logs can be matched to ours.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return &UnknownError{Err: fmt.Errorf("unable to encode request body: %w", err)}
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &UnknownError{Err: fmt.Errorf("unable to build request: %w", err)}
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "upstream request failed", "method", method, "path", path, "error", err)
		return &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &UnknownError{StatusCode: resp.StatusCode, Err: fmt.Errorf("unable to decode response: %w", err)}
		}
		return nil
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		return decodeRejection(resp)
	default:
		return &UnknownError{StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}
}

// decodeRejection extracts the structured message from a 4xx response. A 4xx
// without a message is not a validation failure we can surface and is treated
// as unknown.
func decodeRejection(resp *http.Response) error {
	var body struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || strings.TrimSpace(body.Message) == "" {
		return &UnknownError{StatusCode: resp.StatusCode, Err: fmt.Errorf("status %d without a structured message", resp.StatusCode)}
	}
	return &ValidationError{StatusCode: resp.StatusCode, Message: body.Message, Fields: body.Errors}
}
