package handlers

import (
	"crypto/subtle"
	"net/http"

	"telemetry-hub/app/dto"
	"telemetry-hub/app/services"
	"telemetry-hub/app/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler issues agent connection tokens
type AuthHandler struct {
	jwtService      *services.JWTService
	registrationKey string
	expirationSec   int64
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(jwtService *services.JWTService, registrationKey string, expirationSec int64) *AuthHandler {
	return &AuthHandler{
		jwtService:      jwtService,
		registrationKey: registrationKey,
		expirationSec:   expirationSec,
	}
}

// IssueToken exchanges the registration key for a signed agent token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation failed", map[string]string{"error": err.Error()})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.RegistrationKey), []byte(h.registrationKey)) != 1 {
		respondError(c, http.StatusUnauthorized, "invalid registration key", nil)
		return
	}

	token, err := h.jwtService.GenerateToken(req.Hostname)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to generate token", nil)
		return
	}

	respondJSON(c, http.StatusOK, dto.TokenResponse{Token: token, ExpiresIn: h.expirationSec})
}
