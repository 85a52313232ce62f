package api

import (
	"net/http"

	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/service"
	"github.com/admin-console-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RoleHandler handles role management endpoints
type RoleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(services *service.Services, log zerolog.Logger) *RoleHandler {
	return &RoleHandler{
		services: services,
		log:      log.With().Str("handler", "role").Logger(),
	}
}

// List handles GET /v1/admin/roles
func (h *RoleHandler) List(c *gin.Context) {
	q := listQueryFromRequest(c, "ui_access")

	roles, total, err := h.services.Role.List(c.Request.Context(), q)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list roles")
		respondError(c, http.StatusInternalServerError, "failed to list roles")
		return
	}
	respondList(c, roles, q, total)
}

// Get handles GET /v1/admin/roles/:id
func (h *RoleHandler) Get(c *gin.Context) {
	role, err := h.services.Role.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get role")
		respondError(c, http.StatusInternalServerError, "failed to get role")
		return
	}
	if role == nil {
		respondError(c, http.StatusNotFound, "role not found")
		return
	}
	respondOK(c, role)
}

// Create handles POST /v1/admin/roles
func (h *RoleHandler) Create(c *gin.Context) {
	var role models.Role
	if err := c.ShouldBindJSON(&role); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validation.ValidateRole(&role); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	session, _ := SessionFromContext(c)
	if err := h.services.Role.Create(c.Request.Context(), session, &role); err != nil {
		h.log.Error().Err(err).Msg("Failed to create role")
		respondError(c, http.StatusInternalServerError, "failed to create role")
		return
	}
	respondCreated(c, role)
}

// Update handles PUT /v1/admin/roles/:id
func (h *RoleHandler) Update(c *gin.Context) {
	var role models.Role
	if err := c.ShouldBindJSON(&role); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	role.ID = c.Param("id")
	if errs := validation.ValidateRole(&role); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	session, _ := SessionFromContext(c)
	if err := h.services.Role.Update(c.Request.Context(), session, &role); err != nil {
		h.log.Error().Err(err).Msg("Failed to update role")
		respondError(c, http.StatusInternalServerError, "failed to update role")
		return
	}
	respondOK(c, role)
}

// Delete handles DELETE /v1/admin/roles/:id
func (h *RoleHandler) Delete(c *gin.Context) {
	session, _ := SessionFromContext(c)
	if err := h.services.Role.Delete(c.Request.Context(), session, c.Param("id")); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete role")
		respondError(c, http.StatusInternalServerError, "failed to delete role")
		return
	}
	respondOK(c, gin.H{"deleted": true})
}
