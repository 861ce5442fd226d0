// Package respond provides shared JSON response utilities for API handlers.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// InternalError is the only message a 500 ever carries.
const InternalError = "Internal server error"

// ErrorResponse is the error shape for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges an update.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON marshals v and writes it with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + InternalError + `"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// WriteError sends {"error": message}.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteMessage sends {"message": message}.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, MessageResponse{Message: message})
}
