// Package handler provides HTTP handlers for all API endpoints.
// Handlers decode and validate input, call one store method, and shape the
// JSON envelope. Business rules live in domain and store.
package handler

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/albapepper/courtside/internal/api/respond"
	"github.com/albapepper/courtside/internal/config"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	Stores
	cfg      *config.Config
	validate *validator.Validate
}

// New creates a Handler over st.
func New(st Stores, cfg *config.Config) *Handler {
	return &Handler{Stores: st, cfg: cfg, validate: newValidator()}
}

// Root serves API info at /.
// @Summary API root info
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"name":     "Courtside Basketball Analytics API",
		"version":  "1.0.0",
		"status":   "running",
		"docs":     "/docs/index.html",
		"groups":   []string{"basketball", "analytics", "strategy", "system", "auth"},
		"personas": []string{"superfan", "coach", "gm", "data-engineer"},
	})
}

// HealthCheck is the liveness probe. It never touches the database.
// @Summary Liveness probe
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
