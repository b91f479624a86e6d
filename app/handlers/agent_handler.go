package handlers

import (
	"errors"
	"net/http"
	"time"

	"telemetry-hub/app/clients"
	"telemetry-hub/app/dto"
	"telemetry-hub/app/services"

	"github.com/gin-gonic/gin"
)

// respondJSON sends a JSON response
func respondJSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// respondError sends an error response
func respondError(c *gin.Context, status int, message string, details map[string]string) {
	c.JSON(status, dto.ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// AgentHandler handles agent listing and metrics endpoints
type AgentHandler struct {
	registry *services.RegistryService
	metrics  *services.MetricsService
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(registry *services.RegistryService, metrics *services.MetricsService) *AgentHandler {
	return &AgentHandler{
		registry: registry,
		metrics:  metrics,
	}
}

// ListAgents handles listing all connected agents
func (h *AgentHandler) ListAgents(c *gin.Context) {
	agents := h.registry.List()

	responses := make([]dto.AgentResponse, len(agents))
	for i, agent := range agents {
		responses[i] = dto.AgentResponse{
			AgentID:       agent.ID,
			Hostname:      agent.Hostname,
			OS:            agent.OS,
			Arch:          agent.Arch,
			Version:       agent.Version,
			ConnectedAt:   agent.ConnectedAt.Format(time.RFC3339),
			LastHeartbeat: agent.LastHeartbeat.Format(time.RFC3339),
		}
	}

	respondJSON(c, http.StatusOK, dto.ListAgentsResponse{Agents: responses, Count: len(responses)})
}

// GetAgentMetrics returns the latest cached metrics for one agent
func (h *AgentHandler) GetAgentMetrics(c *gin.Context) {
	agentID := c.Param("agentId")

	entry, err := h.metrics.Get(agentID)
	if err != nil {
		if errors.Is(err, clients.ErrAgentNotFound) {
			respondError(c, http.StatusNotFound, "agent not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to get metrics", nil)
		return
	}

	respondJSON(c, http.StatusOK, entry)
}

// GetAllMetrics returns the identity-to-metrics mapping for all agents
func (h *AgentHandler) GetAllMetrics(c *gin.Context) {
	respondJSON(c, http.StatusOK, dto.MetricsResponse(h.metrics.GetAll()))
}

// GetSummary returns cluster-wide aggregates
func (h *AgentHandler) GetSummary(c *gin.Context) {
	summary := h.metrics.ClusterSummary()
	respondJSON(c, http.StatusOK, dto.SummaryResponse{
		AgentCount:     summary.AgentCount,
		AvgCPUUsage:    summary.AvgCPUUsage,
		AvgMemoryUsage: summary.AvgMemoryUsage,
	})
}
