package api

import (
	"net/http"

	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/service"
	"github.com/admin-console-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// VendorHandler handles vendor portal endpoints
type VendorHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(services *service.Services, log zerolog.Logger) *VendorHandler {
	return &VendorHandler{
		services: services,
		log:      log.With().Str("handler", "vendor").Logger(),
	}
}

// List handles GET /v1/vendor/vendors
func (h *VendorHandler) List(c *gin.Context) {
	session, _ := SessionFromContext(c)
	q := listQueryFromRequest(c, "status", "department")

	vendors, total, err := h.services.Vendor.List(c.Request.Context(), session.User.TenantID, q)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list vendors")
		respondError(c, http.StatusInternalServerError, "failed to list vendors")
		return
	}
	respondList(c, vendors, q, total)
}

// Get handles GET /v1/vendor/vendors/:id
func (h *VendorHandler) Get(c *gin.Context) {
	vendor, err := h.services.Vendor.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get vendor")
		respondError(c, http.StatusInternalServerError, "failed to get vendor")
		return
	}
	if vendor == nil {
		respondError(c, http.StatusNotFound, "vendor not found")
		return
	}
	respondOK(c, vendor)
}

// Create handles POST /v1/vendor/vendors
func (h *VendorHandler) Create(c *gin.Context) {
	var input models.VendorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validation.ValidateVendor(input); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	session, _ := SessionFromContext(c)
	vendor, err := h.services.Vendor.Create(c.Request.Context(), session, input)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create vendor")
		respondError(c, http.StatusInternalServerError, "failed to create vendor")
		return
	}
	respondCreated(c, vendor)
}

// Update handles PUT /v1/vendor/vendors/:id
func (h *VendorHandler) Update(c *gin.Context) {
	var input models.VendorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validation.ValidateVendor(input); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	session, _ := SessionFromContext(c)
	vendor, err := h.services.Vendor.Update(c.Request.Context(), session, c.Param("id"), input)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to update vendor")
		respondError(c, http.StatusInternalServerError, "failed to update vendor")
		return
	}
	respondOK(c, vendor)
}

// Delete handles DELETE /v1/vendor/vendors/:id
func (h *VendorHandler) Delete(c *gin.Context) {
	session, _ := SessionFromContext(c)
	if err := h.services.Vendor.Delete(c.Request.Context(), session, c.Param("id")); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete vendor")
		respondError(c, http.StatusInternalServerError, "failed to delete vendor")
		return
	}
	respondOK(c, gin.H{"deleted": true})
}
