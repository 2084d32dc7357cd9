// Package respond writes JSON responses and keeps error bodies from leaking
// internal detail to API callers.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes v as a JSON body with the given status code. A nil v writes
// headers only.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// headers are already out, all we can do is log
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Error writes the error message verbatim as {"error": ...}.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// safeFragments mark validation-style messages that may be echoed to callers.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must be",
	"cannot be",
	"too long",
	"too short",
}

// SafeError echoes validation errors to the caller but replaces anything else
// with a generic message, logging the sanitized original. Errors sent with a
// 5xx code are always treated as internal.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	if code < 500 && isSafeMessage(msg) {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.Any("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}

func isSafeMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, frag := range safeFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// AppError pairs a user-facing message with an internal cause and status code.
type AppError struct {
	UserMsg string
	Err     error
	Code    int
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

// NewAppError builds an AppError. userMsg is what the caller sees, err is what
// gets logged.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

// SafeErrorV2 sends the AppError user message when err carries one, logging
// the internal cause, and otherwise falls back to SafeError.
func SafeErrorV2(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		SafeError(w, code, err)
		return
	}

	if appErr.Err != nil {
		slog.Default().Error("application error",
			slog.String("status", http.StatusText(appErr.Code)),
			slog.Int("code", appErr.Code),
			slog.String("user_message", appErr.UserMsg),
			slog.Any("error", SanitizeError(appErr.Err)))
	}
	JSON(w, appErr.Code, map[string]string{"error": appErr.UserMsg})
}
