package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/admin-console-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuditHandler handles audit trail inspection endpoints
type AuditHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(services *service.Services, log zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		services: services,
		log:      log.With().Str("handler", "audit").Logger(),
	}
}

// List handles GET /v1/admin/audit-logs
func (h *AuditHandler) List(c *gin.Context) {
	session, _ := SessionFromContext(c)
	q := listQueryFromRequest(c, "entity_type", "action", "actor_id")

	entries, total, err := h.services.Audit.List(c.Request.Context(), session.User.TenantID, q)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list audit logs")
		respondError(c, http.StatusInternalServerError, "failed to list audit logs")
		return
	}
	respondList(c, entries, q, total)
}

// ExportPDF handles GET /v1/admin/audit-logs/export. It streams the current
// filter selection as a PDF attachment.
func (h *AuditHandler) ExportPDF(c *gin.Context) {
	session, _ := SessionFromContext(c)
	q := listQueryFromRequest(c, "entity_type", "action", "actor_id")

	pdf, err := h.services.Report.AuditTrailPDF(c.Request.Context(), session.User.TenantID, q)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate audit trail PDF")
		respondError(c, http.StatusInternalServerError, "failed to generate report")
		return
	}

	filename := fmt.Sprintf("audit-trail-%s.pdf", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
