// Package http provides the HTTP handlers and middleware of the booking API.
//
// The router exposes the following endpoints:
//   - GET /health: liveness probe, always 204.
//   - GET /classes: one page of bookable classes with derived availability.
//     Query parameters: page, size, search, date. The response carries the
//     `refreshAfterSeconds` hint when a listed class is currently in progress.
//   - GET /classes/calendar: the same query projected into calendar events
//     with absolute start and end instants.
//   - POST /reservations: books a class. Body: {"classId"}. Responds 201 with
//     the created reservation.
//   - GET /reservations/my: the caller's reservations, optionally filtered
//     with ?completed=true|false.
//   - DELETE /reservations/{id}: cancels a reservation. 204 on success.
//   - PUT /reservations/{id}/confirm, PUT /reservations/{id}/complete:
//     lifecycle transitions, 204 on success.
//   - GET /dashboard/summary: aggregate reservation counts.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth. Error payloads carry localized
// messages; rejections relayed from the booking backend keep their original
// status code and message.
package http
