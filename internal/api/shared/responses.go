// Package shared holds the request/response plumbing common to all API
// handlers: JSON encoding, validation, and trace ID propagation.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse defines the standard error response structure. Raw internal
// error strings are never placed in Error; callers pass a sanitized message.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response",
			slog.Any("error", err),
			slog.String("path", r.URL.Path))
	}
}

// RespondWithError writes a JSON error response carrying the request's trace
// ID. 5xx responses log the underlying error at ERROR level; 4xx at DEBUG.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string, cause error) {
	traceID := GetTraceID(r.Context())

	attrs := []any{
		slog.Int("status_code", status),
		slog.String("message", message),
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
	}
	if cause != nil {
		attrs = append(attrs, slog.String("error", cause.Error()))
	}
	if status >= 500 {
		slog.Error("request failed", attrs...)
	} else {
		slog.Debug("request rejected", attrs...)
	}

	RespondWithJSON(w, r, status, ErrorResponse{Error: message, TraceID: traceID})
}
