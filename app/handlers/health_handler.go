package handlers

import (
	"net/http"

	"telemetry-hub/app/dto"
	"telemetry-hub/app/services"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	registry *services.RegistryService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(registry *services.RegistryService) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Health handles health check
func (h *HealthHandler) Health(c *gin.Context) {
	respondJSON(c, http.StatusOK, dto.HealthResponse{
		Status:          "ok",
		ConnectedAgents: h.registry.Count(),
	})
}

// Ready handles readiness check
func (h *HealthHandler) Ready(c *gin.Context) {
	respondJSON(c, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
