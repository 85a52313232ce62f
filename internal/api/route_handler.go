package api

import (
	"net/http"

	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/service"
	"github.com/admin-console-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouteHandler handles delivery route and area planning endpoints
type RouteHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewRouteHandler creates a new RouteHandler
func NewRouteHandler(services *service.Services, log zerolog.Logger) *RouteHandler {
	return &RouteHandler{
		services: services,
		log:      log.With().Str("handler", "route").Logger(),
	}
}

// List handles GET /v1/warehouse/routes
func (h *RouteHandler) List(c *gin.Context) {
	session, _ := SessionFromContext(c)
	q := listQueryFromRequest(c, "status", "warehouse_id")

	routes, total, err := h.services.Route.List(c.Request.Context(), session.User.TenantID, q)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list routes")
		respondError(c, http.StatusInternalServerError, "failed to list routes")
		return
	}
	respondList(c, routes, q, total)
}

// Get handles GET /v1/warehouse/routes/:id. The route comes back with its
// ordered area sequence.
func (h *RouteHandler) Get(c *gin.Context) {
	route, err := h.services.Route.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get route")
		respondError(c, http.StatusInternalServerError, "failed to get route")
		return
	}
	if route == nil {
		respondError(c, http.StatusNotFound, "route not found")
		return
	}
	respondOK(c, route)
}

// Create handles POST /v1/warehouse/routes
func (h *RouteHandler) Create(c *gin.Context) {
	var input models.RouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validation.ValidateRoute(input); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	session, _ := SessionFromContext(c)
	route, err := h.services.Route.Create(c.Request.Context(), session, input)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create route")
		respondError(c, http.StatusInternalServerError, "failed to create route")
		return
	}
	respondCreated(c, route)
}

// Update handles PUT /v1/warehouse/routes/:id
func (h *RouteHandler) Update(c *gin.Context) {
	var input models.RouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validation.ValidateRoute(input); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	session, _ := SessionFromContext(c)
	route, err := h.services.Route.Update(c.Request.Context(), session, c.Param("id"), input)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to update route")
		respondError(c, http.StatusInternalServerError, "failed to update route")
		return
	}
	respondOK(c, route)
}

// Delete handles DELETE /v1/warehouse/routes/:id
func (h *RouteHandler) Delete(c *gin.Context) {
	session, _ := SessionFromContext(c)
	if err := h.services.Route.Delete(c.Request.Context(), session, c.Param("id")); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete route")
		respondError(c, http.StatusInternalServerError, "failed to delete route")
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

// AssignArea handles POST /v1/warehouse/routes/:id/areas
func (h *RouteHandler) AssignArea(c *gin.Context) {
	var input models.AreaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validation.ValidateArea(input); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	session, _ := SessionFromContext(c)
	area, err := h.services.Route.AssignArea(c.Request.Context(), session, c.Param("id"), input)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to assign area")
		respondError(c, http.StatusInternalServerError, "failed to assign area")
		return
	}
	respondCreated(c, area)
}

// RemoveArea handles DELETE /v1/warehouse/routes/:id/areas/:areaID
func (h *RouteHandler) RemoveArea(c *gin.Context) {
	session, _ := SessionFromContext(c)
	if err := h.services.Route.RemoveArea(c.Request.Context(), session, c.Param("id"), c.Param("areaID")); err != nil {
		h.log.Error().Err(err).Msg("Failed to remove area")
		respondError(c, http.StatusInternalServerError, "failed to remove area")
		return
	}
	respondOK(c, gin.H{"removed": true})
}
