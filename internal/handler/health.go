package handler

import (
	"net/http"
	"time"

	"vitalchat/internal/config"
	"vitalchat/internal/httputil"
)

// HealthHandler reports liveness and the configured model candidates
type HealthHandler struct {
	models config.ModelList
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(models config.ModelList) *HealthHandler {
	return &HealthHandler{models: models}
}

// Health returns the configured candidates and a timestamp
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":           true,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"primaryModel": h.models.Primary,
		"fallbacks":    h.models.Fallbacks,
	})
}
