package handler

// Every error response has the same shape:
//
//	{"error": "not_found", "message": "medication not found with id abc123"}
//
// so the web client can always read the message the same way, whatever the
// status code.

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sakif/healthtrack/internal/apperror"
)

// maxBodyBytes caps request bodies at 1 MiB.
const maxBodyBytes = 1 << 20

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable type, e.g. "not_found"
	Message string `json:"message"` // human-readable description
}

// MessageResponse acknowledges a write. ID is set on creates.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// writeJSON sends data as JSON with the given status code. Headers and
// status must be written before the body.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; all we can do is log.
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

func writeMessage(w http.ResponseWriter, status int, message, id string) {
	writeJSON(w, status, MessageResponse{Message: message, ID: id})
}

// writeError maps a domain error to its HTTP status and sends it.
//
// errors.Is walks the whole chain, so a service that wraps an AppError
// with fmt.Errorf("...: %w", err) still maps correctly.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			errorType = "unauthorized"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			errorType = "forbidden"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			errorType = "conflict"
		}

		writeJSON(w, status, ErrorResponse{Error: errorType, Message: appErr.Message})
		return
	}

	// Never expose raw storage errors: they can carry SQL and file paths.
	slog.Error("unhandled error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

var errInvalidBody = apperror.ValidationFailed("", "Invalid JSON body.")

// decodeBody reads a JSON object body, rewrites its alias keys to their
// canonical names and returns it. Numbers are kept as json.Number so the
// coerce helpers see exactly what the client sent.
func decodeBody(w http.ResponseWriter, r *http.Request) (body, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil, errInvalidBody
	}
	// Trailing garbage after the object is also malformed.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errInvalidBody
	}

	return body(normalizeKeys(raw)), nil
}
