// Package respond holds the JSON response helpers shared by the handler
// packages.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// FieldErrors reports per-field validation messages. Submission is
// rejected as a whole; nothing was written.
func FieldErrors(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fields})
}

// Error reports a single operator-visible error message.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// Internal hides the cause from the client and logs it server-side.
func Internal(w http.ResponseWriter, err error) {
	slog.Error("request failed", "error", err)
	Error(w, http.StatusInternalServerError, "internal error")
}
