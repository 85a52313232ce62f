package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/repository"
	"github.com/phpdave11/gofpdf"
	"github.com/rs/zerolog"
)

// reportExportLimit caps how many rows a PDF export pulls. Exports are for
// review sheets, not full data dumps.
const reportExportLimit = 500

// reportService is the concrete implementation of ReportService
type reportService struct {
	audit      repository.AuditRepository
	warehouses repository.WarehouseRepository
	log        zerolog.Logger
}

// newReportService creates a new ReportService
func newReportService(audit repository.AuditRepository, warehouses repository.WarehouseRepository, log zerolog.Logger) *reportService {
	return &reportService{
		audit:      audit,
		warehouses: warehouses,
		log:        log.With().Str("service", "report").Logger(),
	}
}

// AuditTrailPDF renders the filtered audit trail as a printable table
func (s *reportService) AuditTrailPDF(ctx context.Context, tenantID string, q models.ListQuery) ([]byte, error) {
	q.Page = 1
	q.PageSize = reportExportLimit

	logs, total, err := s.audit.List(ctx, tenantID, q)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit trail: %w", err)
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Audit Trail", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Audit Trail")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s - %d of %d records", time.Now().Format("2006-01-02 15:04"), len(logs), total))
	pdf.Ln(10)

	headers := []string{"Time", "Actor", "Entity", "Action", "Field"}
	widths := []float64{40, 60, 70, 30, 50}

	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, entry := range logs {
		row := []string{
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.ActorName,
			entry.EntityType + " " + entry.EntityID,
			string(entry.Action),
			entry.Field,
		}
		for i, col := range row {
			pdf.CellFormat(widths[i], 6, truncate(col, 45), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render audit trail PDF: %w", err)
	}

	s.log.Info().Int("records", len(logs)).Msg("Audit trail PDF generated")
	return buf.Bytes(), nil
}

// StockSheetPDF renders a warehouse's layout as a printable stock sheet
func (s *reportService) StockSheetPDF(ctx context.Context, warehouseID string) ([]byte, error) {
	wh, err := s.warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load warehouse: %w", err)
	}
	if wh == nil {
		return nil, fmt.Errorf("warehouse %s not found", warehouseID)
	}

	bins, total, err := s.warehouses.ListBins(ctx, warehouseID, models.ListQuery{Page: 1, PageSize: reportExportLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to load bins: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Stock Sheet", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Stock Sheet - %s (%s)", wh.Name, wh.Code))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s - %d bins", time.Now().Format("2006-01-02 15:04"), total))
	pdf.Ln(10)

	headers := []string{"Zone", "Rack", "Position", "SKU", "Qty", "Status"}
	widths := []float64{25, 25, 25, 50, 20, 30}

	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, bin := range bins {
		row := []string{bin.Zone, bin.Rack, bin.Position, bin.SKU, fmt.Sprintf("%d", bin.Quantity), bin.Status}
		for i, col := range row {
			pdf.CellFormat(widths[i], 6, truncate(col, 30), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render stock sheet PDF: %w", err)
	}

	s.log.Info().Str("warehouse_id", warehouseID).Int("bins", len(bins)).Msg("Stock sheet PDF generated")
	return buf.Bytes(), nil
}

// truncate shortens cell text to at most max runes so multi-byte characters
// are never split mid-sequence.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
