package api

import (
	"errors"
	"net/http"

	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles login/logout endpoints
type AuthHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.services.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrAccountDisabled) {
			respondError(c, http.StatusUnauthorized, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("Login failed")
		respondError(c, http.StatusInternalServerError, "login failed")
		return
	}

	respondOK(c, result)
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.services.Auth.Logout(c.Request.Context(), token); err != nil {
		h.log.Error().Err(err).Msg("Logout failed")
		respondError(c, http.StatusInternalServerError, "logout failed")
		return
	}

	respondOK(c, gin.H{"message": "logged out"})
}
