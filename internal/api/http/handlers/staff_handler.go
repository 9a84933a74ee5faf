package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-tracker/internal/api/dto"
	"github.com/spec-kit/staffing-tracker/internal/domain"
	"github.com/spec-kit/staffing-tracker/internal/repository"
	"github.com/spec-kit/staffing-tracker/internal/service"
	apperrors "github.com/spec-kit/staffing-tracker/pkg/util"
)

// StaffHandler manages fee-earner roster endpoints.
type StaffHandler struct {
	service *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{service: staffService}
}

// CreateStaff POST /api/staff.
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.StaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}

	staff, err := h.service.CreateStaffMember(c.Context(), actor, staffFromRequest(&req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": staffResponse(staff)})
}

// ListStaff GET /api/staff.
func (h *StaffHandler) ListStaff(c *fiber.Ctx) error {
	filter := repository.StaffFilter{
		Position:   optionalQuery(c, "position"),
		Department: optionalQuery(c, "department"),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.StaffStatus(statusStr)
		filter.Status = &status
	}
	filter.Limit, filter.Offset = pagination(c)

	members, err := h.service.ListStaffMembers(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.StaffResponse, 0, len(members))
	for i := range members {
		items = append(items, staffResponse(&members[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetStaff GET /api/staff/:id.
func (h *StaffHandler) GetStaff(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	staff, err := h.service.GetStaffMemberByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(staff)})
}

// UpdateStaff PUT /api/staff/:id.
func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.StaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	staff := staffFromRequest(&req)
	staff.ID = id
	updated, err := h.service.UpdateStaffMember(c.Context(), actor, staff)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(updated)})
}

// DeleteStaff DELETE /api/staff/:id.
func (h *StaffHandler) DeleteStaff(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteStaffMember(c.Context(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func staffFromRequest(req *dto.StaffRequest) *domain.StaffMember {
	return &domain.StaffMember{
		Name:       req.Name,
		Position:   req.Position,
		Department: req.Department,
		Status:     domain.StaffStatus(req.Status),
		Notes:      req.Notes,
	}
}

func staffResponse(staff *domain.StaffMember) dto.StaffResponse {
	return dto.StaffResponse{
		ID:         staff.ID,
		Name:       staff.Name,
		Position:   staff.Position,
		Department: staff.Department,
		Status:     string(staff.Status),
		Notes:      staff.Notes,
		CreatedAt:  staff.CreatedAt,
		UpdatedAt:  staff.UpdatedAt,
	}
}
