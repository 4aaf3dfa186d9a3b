// Package respond writes JSON responses in the {success, result|error} envelope.
// Error messages are sanitized before they leave the process.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"line-dispatch/internal/domain/entity"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, result any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Result: result})
}

// Fail writes a failure envelope with the sanitized error message.
func Fail(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}
	msg := SanitizeError(err)

	// 5xx はログにも残す
	if code >= http.StatusInternalServerError {
		slog.Default().Error("request failed",
			slog.String("status", http.StatusText(code)),
			slog.Int("code", code),
			slog.String("error", msg))
	}
	JSON(w, code, Envelope{Success: false, Error: msg})
}

// Error writes a failure envelope with the status derived from err.
func Error(w http.ResponseWriter, err error) {
	Fail(w, StatusFor(err), err)
}

// StatusFor maps domain errors to HTTP status codes. Caller mistakes are 400,
// missing records 404, oversized payloads 413 and everything else 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrValidationFailed),
		errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrUnsupportedMessageKind),
		errors.Is(err, entity.ErrMissingFileSource),
		errors.Is(err, entity.ErrMIMETypeNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
