package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lukewarren/csvault/internal/core"
	"github.com/lukewarren/csvault/internal/logging"
)

// writeJSON encodes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing to do but log.
		slog.Warn("json encode error", "error", err)
	}
}

// writeError writes a structured JSON error body.
func writeError(w http.ResponseWriter, status int, msg core.UserMessage) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// respondError logs the technical error and responds with its mapped
// user-facing message and an appropriate status code.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, core.ErrNotFound) {
		status = http.StatusNotFound
	} else if errors.Is(err, core.ErrTooManyUploads) {
		status = http.StatusServiceUnavailable
	}

	logging.FromContext(r.Context()).Error("request failed",
		"path", r.URL.Path, "status", status, "error", err)

	writeError(w, status, core.MapError(err))
}

// badRequest responds 400 with a direct message, for boundary
// validation failures the user can fix.
func badRequest(w http.ResponseWriter, message, action, code string) {
	writeError(w, http.StatusBadRequest, core.UserMessage{
		Message: message,
		Action:  action,
		Code:    code,
	})
}
