package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-tracker/internal/domain"
	"github.com/spec-kit/staffing-tracker/internal/service"
)

// ActivityHandler exposes the audit trail.
type ActivityHandler struct {
	service *service.ActivityService
}

// NewActivityHandler constructs handler.
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: activityService}
}

// ListRecent GET /api/activity.
func (h *ActivityHandler) ListRecent(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	entries, err := h.service.ListRecent(c.Context(), actor, queryInt(c, "limit", 100))
	if err != nil {
		return err
	}
	items := make([]fiber.Map, 0, len(entries))
	for i := range entries {
		items = append(items, activityResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func activityResponse(entry *domain.ActivityLog) fiber.Map {
	resp := fiber.Map{
		"id":          entry.ID,
		"action":      entry.Action,
		"entity_type": entry.EntityType,
		"created_at":  entry.CreatedAt,
	}
	if entry.UserID != nil {
		resp["user_id"] = *entry.UserID
	}
	if entry.EntityID != nil {
		resp["entity_id"] = *entry.EntityID
	}
	if entry.Detail != "" {
		resp["detail"] = entry.Detail
	}
	return resp
}
