package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/service"
	"github.com/admin-console-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// WarehouseHandler handles warehouse portal endpoints: warehouses, their
// layout bins, and stock movements.
type WarehouseHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(services *service.Services, log zerolog.Logger) *WarehouseHandler {
	return &WarehouseHandler{
		services: services,
		log:      log.With().Str("handler", "warehouse").Logger(),
	}
}

// List handles GET /v1/warehouse/warehouses
func (h *WarehouseHandler) List(c *gin.Context) {
	session, _ := SessionFromContext(c)
	q := listQueryFromRequest(c, "active")

	warehouses, total, err := h.services.Warehouse.List(c.Request.Context(), session.User.TenantID, q)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list warehouses")
		respondError(c, http.StatusInternalServerError, "failed to list warehouses")
		return
	}
	respondList(c, warehouses, q, total)
}

// Get handles GET /v1/warehouse/warehouses/:id
func (h *WarehouseHandler) Get(c *gin.Context) {
	wh, err := h.services.Warehouse.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get warehouse")
		respondError(c, http.StatusInternalServerError, "failed to get warehouse")
		return
	}
	if wh == nil {
		respondError(c, http.StatusNotFound, "warehouse not found")
		return
	}
	respondOK(c, wh)
}

// Create handles POST /v1/warehouse/warehouses
func (h *WarehouseHandler) Create(c *gin.Context) {
	var input models.WarehouseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validation.ValidateWarehouse(input); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	session, _ := SessionFromContext(c)
	wh, err := h.services.Warehouse.Create(c.Request.Context(), session, input)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create warehouse")
		respondError(c, http.StatusInternalServerError, "failed to create warehouse")
		return
	}
	respondCreated(c, wh)
}

// Update handles PUT /v1/warehouse/warehouses/:id
func (h *WarehouseHandler) Update(c *gin.Context) {
	var input models.WarehouseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validation.ValidateWarehouse(input); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	session, _ := SessionFromContext(c)
	wh, err := h.services.Warehouse.Update(c.Request.Context(), session, c.Param("id"), input)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to update warehouse")
		respondError(c, http.StatusInternalServerError, "failed to update warehouse")
		return
	}
	respondOK(c, wh)
}

// Delete handles DELETE /v1/warehouse/warehouses/:id
func (h *WarehouseHandler) Delete(c *gin.Context) {
	session, _ := SessionFromContext(c)
	if err := h.services.Warehouse.Delete(c.Request.Context(), session, c.Param("id")); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete warehouse")
		respondError(c, http.StatusInternalServerError, "failed to delete warehouse")
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

// ListBins handles GET /v1/warehouse/warehouses/:id/bins
func (h *WarehouseHandler) ListBins(c *gin.Context) {
	q := listQueryFromRequest(c, "status")

	bins, total, err := h.services.Warehouse.ListBins(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list bins")
		respondError(c, http.StatusInternalServerError, "failed to list bins")
		return
	}
	respondList(c, bins, q, total)
}

// CreateBin handles POST /v1/warehouse/warehouses/:id/bins
func (h *WarehouseHandler) CreateBin(c *gin.Context) {
	var input models.BinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validation.ValidateBin(input); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	session, _ := SessionFromContext(c)
	bin, err := h.services.Warehouse.CreateBin(c.Request.Context(), session, c.Param("id"), input)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create bin")
		respondError(c, http.StatusInternalServerError, "failed to create bin")
		return
	}
	respondCreated(c, bin)
}

// UpdateBin handles PUT /v1/warehouse/warehouses/:id/bins/:binID
func (h *WarehouseHandler) UpdateBin(c *gin.Context) {
	var input models.BinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validation.ValidateBin(input); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	session, _ := SessionFromContext(c)
	bin, err := h.services.Warehouse.UpdateBin(c.Request.Context(), session, c.Param("binID"), input)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to update bin")
		respondError(c, http.StatusInternalServerError, "failed to update bin")
		return
	}
	respondOK(c, bin)
}

// ListMovements handles GET /v1/warehouse/warehouses/:id/movements
func (h *WarehouseHandler) ListMovements(c *gin.Context) {
	q := listQueryFromRequest(c, "direction")

	movements, total, err := h.services.Warehouse.ListMovements(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list movements")
		respondError(c, http.StatusInternalServerError, "failed to list movements")
		return
	}
	respondList(c, movements, q, total)
}

// RecordMovement handles POST /v1/warehouse/warehouses/:id/movements
func (h *WarehouseHandler) RecordMovement(c *gin.Context) {
	var input models.MovementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validation.ValidateMovement(input); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	session, _ := SessionFromContext(c)
	mv, err := h.services.Warehouse.RecordMovement(c.Request.Context(), session, c.Param("id"), input)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to record movement")
		respondError(c, http.StatusInternalServerError, "failed to record movement")
		return
	}
	respondCreated(c, mv)
}

// StockSheet handles GET /v1/warehouse/warehouses/:id/stock-sheet. It streams
// the warehouse layout as a PDF attachment.
func (h *WarehouseHandler) StockSheet(c *gin.Context) {
	pdf, err := h.services.Report.StockSheetPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate stock sheet PDF")
		respondError(c, http.StatusInternalServerError, "failed to generate report")
		return
	}

	filename := fmt.Sprintf("stock-sheet-%s.pdf", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
