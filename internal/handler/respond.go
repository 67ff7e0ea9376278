// Package handler implements HTTP handlers for the repochat API.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/repochat/repochat/internal/model"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// writeError writes a standard error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, model.ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
