// Package respond provides utilities for sending HTTP responses in JSON format.
// Error responses never echo internal error text to clients.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes {"error": msg} with the given status code.
func Error(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, map[string]string{"error": msg})
}

// AppError is an error type that carries a user-facing message.
type AppError struct {
	UserMsg string // Message to display to users
	Err     error  // Internal error (logged for debugging)
	Code    int    // HTTP status code
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given parameters.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

var safeFragments = []string{
	"required",
	"invalid",
	"must be",
	"too long",
	"unsupported",
}

// SafeError writes an error response without leaking internals.
//
// An *AppError in the chain answers with its own code and user message, logging
// the wrapped cause. Other errors are returned verbatim only when they read like
// validation messages and code is below 500; everything else becomes
// "internal server error".
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			slog.Default().Warn("application error",
				slog.Int("code", appErr.Code),
				slog.String("user_message", appErr.UserMsg),
				slog.String("error", SanitizeError(appErr.Err)))
		}
		Error(w, appErr.Code, appErr.UserMsg)
		return
	}

	msg := err.Error()
	if code < 500 && isSafe(msg) {
		Error(w, code, msg)
		return
	}

	slog.Default().Error("internal server error",
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	Error(w, code, "internal server error")
}

func isSafe(msg string) bool {
	lower := strings.ToLower(msg)
	for _, f := range safeFragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}
