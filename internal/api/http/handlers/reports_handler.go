package handlers

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-tracker/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportsHandler streams Excel exports.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// StaffingWorkbook GET /api/reports/staffing.xlsx.
func (h *ReportsHandler) StaffingWorkbook(c *fiber.Ctx) error {
	buf, filename, err := h.service.StaffingWorkbook(c.Context())
	if err != nil {
		return err
	}
	return sendWorkbook(c, buf, filename)
}

// BillingWorkbook GET /api/reports/billing.xlsx.
func (h *ReportsHandler) BillingWorkbook(c *fiber.Ctx) error {
	buf, filename, err := h.service.BillingWorkbook(c.Context())
	if err != nil {
		return err
	}
	return sendWorkbook(c, buf, filename)
}

func sendWorkbook(c *fiber.Ctx, buf *bytes.Buffer, filename string) error {
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}
