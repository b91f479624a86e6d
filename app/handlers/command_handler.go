package handlers

import (
	"errors"
	"net/http"

	"telemetry-hub/app/clients"
	"telemetry-hub/app/dto"
	"telemetry-hub/app/services"
	"telemetry-hub/app/utils"

	"github.com/gin-gonic/gin"
)

// CommandHandler handles remote command endpoints. Commands are addressed by
// hostname; success here means "handed to the transport", not "executed".
type CommandHandler struct {
	commands *services.CommandService
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(commands *services.CommandService) *CommandHandler {
	return &CommandHandler{commands: commands}
}

// RestartService handles service restart requests
func (h *CommandHandler) RestartService(c *gin.Context) {
	var req dto.ServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	h.respondDispatch(c, h.commands.RestartService(c.Param("hostname"), req.ServiceName),
		"service restart command sent")
}

// KillProcess handles process termination requests
func (h *CommandHandler) KillProcess(c *gin.Context) {
	var req dto.ProcessRequest
	if !bindAndValidate(c, &req) {
		return
	}

	h.respondDispatch(c, h.commands.KillProcess(c.Param("hostname"), req.PID, req.Target),
		"process kill command sent")
}

// RestartContainer handles container restart requests
func (h *CommandHandler) RestartContainer(c *gin.Context) {
	var req dto.DockerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	h.respondDispatch(c, h.commands.RestartContainer(c.Param("hostname"), req.ContainerName),
		"container restart command sent")
}

func (h *CommandHandler) respondDispatch(c *gin.Context, err error, okMessage string) {
	if err != nil {
		if errors.Is(err, clients.ErrAgentNotFound) {
			respondError(c, http.StatusNotFound, "agent not found", nil)
			return
		}
		respondJSON(c, http.StatusBadGateway, dto.CommandResponse{Success: false, Message: err.Error()})
		return
	}
	respondJSON(c, http.StatusOK, dto.CommandResponse{Success: true, Message: okMessage})
}

func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(c, http.StatusBadRequest, "validation failed", map[string]string{"error": err.Error()})
		return false
	}
	return true
}
