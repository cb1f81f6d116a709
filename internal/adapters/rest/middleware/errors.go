package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/philly/emitter/internal/platform/apperror"
)

// Error codes used by the HTTP layer (lower_snake_case convention)
const (
	ErrorCodeUnauthorized        = "unauthorized"
	ErrorCodeNotFound            = "not_found"
	ErrorCodeValidationError     = "validation_error"
	ErrorCodeInvalidToken        = "invalid_token"
	ErrorCodeTokenExpired        = "token_expired"
	ErrorCodeInternalServerError = "internal_server_error"
)

// WriteJSONError writes a JSON error response with consistent format
func WriteJSONError(w http.ResponseWriter, code string, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]any{
		"error":   code,
		"message": message,
	}

	// Ignore encoding errors here as we're already in error handling
	_ = json.NewEncoder(w).Encode(errorResp)
}

// WriteJSONErrorWithDetails writes a JSON error response with additional details
func WriteJSONErrorWithDetails(w http.ResponseWriter, code string, message string, status int, details map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]any{
		"error":   code,
		"message": message,
	}

	// Add any additional details
	for k, v := range details {
		errorResp[k] = v
	}

	// Ignore encoding errors here as we're already in error handling
	_ = json.NewEncoder(w).Encode(errorResp)
}

// WriteAppError renders err using its AppError business code and status.
// Errors outside the apperror taxonomy become a generic 500.
func WriteAppError(w http.ResponseWriter, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		WriteJSONError(w, ErrorCodeInternalServerError, "internal server error", http.StatusInternalServerError)
		return
	}

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	WriteJSONError(w, strings.ToLower(string(appErr.BusinessCode)), appErr.Message, status)
}
