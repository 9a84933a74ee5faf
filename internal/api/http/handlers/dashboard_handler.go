package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-tracker/internal/service"
	apperrors "github.com/spec-kit/staffing-tracker/pkg/util"
)

// DashboardHandler serves the landing-page summary and staffing heatmap.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// Summary GET /api/dashboard/summary.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// StaffingHeatmap GET /api/dashboard/heatmap.
func (h *DashboardHandler) StaffingHeatmap(c *fiber.Ctx) error {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		// An explicit zero must not fall through to the service default.
		if parseErr != nil || parsed == 0 {
			return apperrors.NewValidationError("days out of range", map[string]any{
				"days": raw, "min": service.HeatmapDaysMin, "max": service.HeatmapDaysMax,
			})
		}
		days = parsed
	}
	rows, err := h.service.StaffingHeatmap(c.Context(), days, c.Query("milestoneType"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"staffingHeatmap": rows})
}
