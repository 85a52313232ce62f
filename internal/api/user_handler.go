package api

import (
	"net/http"

	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/service"
	"github.com/admin-console-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserHandler handles console user management endpoints
type UserHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(services *service.Services, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		services: services,
		log:      log.With().Str("handler", "user").Logger(),
	}
}

type createUserRequest struct {
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Password string   `json:"password"`
	RoleIDs  []string `json:"role_ids"`
}

type updateUserRequest struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Active *bool  `json:"active"`
}

type setRolesRequest struct {
	RoleIDs []string `json:"role_ids"`
}

// List handles GET /v1/admin/users
func (h *UserHandler) List(c *gin.Context) {
	session, _ := SessionFromContext(c)
	q := listQueryFromRequest(c, "active")

	users, total, err := h.services.User.List(c.Request.Context(), session.User.TenantID, q)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list users")
		respondError(c, http.StatusInternalServerError, "failed to list users")
		return
	}
	respondList(c, users, q, total)
}

// Get handles GET /v1/admin/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.services.User.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get user")
		respondError(c, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	respondOK(c, user)
}

// Create handles POST /v1/admin/users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	session, _ := SessionFromContext(c)
	user := &models.User{
		TenantID: session.User.TenantID,
		Email:    req.Email,
		Name:     req.Name,
		Active:   true,
	}
	for _, id := range req.RoleIDs {
		user.Roles = append(user.Roles, models.Role{ID: id})
	}

	if errs := validation.ValidateNewUser(user, req.Password); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if err := h.services.User.Create(c.Request.Context(), session, user, req.Password); err != nil {
		h.log.Error().Err(err).Msg("Failed to create user")
		respondError(c, http.StatusInternalServerError, "failed to create user")
		return
	}
	respondCreated(c, user)
}

// Update handles PUT /v1/admin/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.services.User.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load user")
		respondError(c, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	session, _ := SessionFromContext(c)
	if err := h.services.User.Update(c.Request.Context(), session, user); err != nil {
		h.log.Error().Err(err).Msg("Failed to update user")
		respondError(c, http.StatusInternalServerError, "failed to update user")
		return
	}
	respondOK(c, user)
}

// SetRoles handles PUT /v1/admin/users/:id/roles. The order of role_ids is
// significant: the first entry becomes the user's primary role.
func (h *UserHandler) SetRoles(c *gin.Context) {
	var req setRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.RoleIDs) == 0 {
		respondError(c, http.StatusBadRequest, "role_ids must not be empty")
		return
	}

	session, _ := SessionFromContext(c)
	if err := h.services.User.SetRoles(c.Request.Context(), session, c.Param("id"), req.RoleIDs); err != nil {
		h.log.Error().Err(err).Msg("Failed to set roles")
		respondError(c, http.StatusInternalServerError, "failed to set roles")
		return
	}
	respondOK(c, gin.H{"role_ids": req.RoleIDs})
}

// Delete handles DELETE /v1/admin/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	session, _ := SessionFromContext(c)
	if err := h.services.User.Delete(c.Request.Context(), session, c.Param("id")); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete user")
		respondError(c, http.StatusInternalServerError, "failed to delete user")
		return
	}
	respondOK(c, gin.H{"deleted": true})
}
