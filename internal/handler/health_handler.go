package handler

import (
	"context"
	"net/http"
	"time"

	"cafe-pos/internal/repository"

	"github.com/rs/zerolog"
)

const healthTimeout = 3 * time.Second

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthHandler reports database connectivity.
type HealthHandler struct {
	db     repository.Pinger
	logger zerolog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db repository.Pinger, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger.With().Str("handler", "health").Logger(),
	}
}

// Check handles GET /health and GET /api/health requests.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error().Err(err).Msg("database ping failed")
		writeJSON(w, http.StatusInternalServerError, healthResponse{Status: "error", Message: "Database connection failed"})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Message: "Database connected"})
}
