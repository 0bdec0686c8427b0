package user

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"Postwall/internal/core/users"
)

// writeJSON writes body with the given status.
// Marshals JSON before writing headers to catch encoding errors
func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	responseBytes, err := json.Marshal(body)
	if err != nil {
		slog.Error("failed to marshal user response", slog.String("error", err.Error()))
		writeJSONError(w, http.StatusInternalServerError, "InternalServerError", "Failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, writeErr := w.Write(responseBytes); writeErr != nil {
		slog.Warn("failed to write user response", slog.String("error", writeErr.Error()))
	}
}

// writeJSONError writes a JSON error response
func writeJSONError(w http.ResponseWriter, statusCode int, errorType, message string) {
	responseBytes, err := json.Marshal(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
	if err != nil {
		// Fallback to plain text if JSON encoding fails (should never happen with simple strings)
		slog.Error("failed to marshal error response", slog.String("error", err.Error()))
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(message))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, writeErr := w.Write(responseBytes); writeErr != nil {
		slog.Warn("failed to write error response", slog.String("error", writeErr.Error()))
	}
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var fieldErr *users.InvalidFieldError

	switch {
	case errors.As(err, &fieldErr):
		writeJSONError(w, http.StatusBadRequest, "InvalidRequest", fieldErr.Error())

	case errors.Is(err, users.ErrUsernameTaken):
		writeJSONError(w, http.StatusConflict, "UsernameTaken", "Username is already registered")

	case errors.Is(err, users.ErrInvalidCredentials):
		writeJSONError(w, http.StatusUnauthorized, "InvalidCredentials", "Wrong username or password")

	case errors.Is(err, users.ErrUserNotFound):
		writeJSONError(w, http.StatusNotFound, "AccountNotFound", "Account not found")

	case errors.Is(err, context.DeadlineExceeded):
		writeJSONError(w, http.StatusServiceUnavailable, "Unavailable", "Request timed out")

	default:
		// Internal server error - don't leak details
		slog.Error("user request failed", slog.String("error", err.Error()))
		writeJSONError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}

// decodeBody reads a small JSON body into dst, writing a 400 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return false
	}
	return true
}
