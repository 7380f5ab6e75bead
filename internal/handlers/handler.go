package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/realsushi-official/barinsta/internal/direct"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	manager *direct.Manager
	logger  zerolog.Logger
}

// NewHandler creates a new Handler around the direct-message manager.
func NewHandler(manager *direct.Manager, logger zerolog.Logger) *Handler {
	return &Handler{manager: manager, logger: logger}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}
