package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-tracker/internal/api/dto"
	"github.com/spec-kit/staffing-tracker/internal/domain"
	"github.com/spec-kit/staffing-tracker/internal/repository"
	"github.com/spec-kit/staffing-tracker/internal/service"
	apperrors "github.com/spec-kit/staffing-tracker/pkg/util"
)

// AssignmentsHandler manages project staffing assignments.
type AssignmentsHandler struct {
	service *service.AssignmentService
}

// NewAssignmentsHandler constructs handler.
func NewAssignmentsHandler(assignmentService *service.AssignmentService) *AssignmentsHandler {
	return &AssignmentsHandler{service: assignmentService}
}

// CreateAssignment POST /api/assignments.
func (h *AssignmentsHandler) CreateAssignment(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ProjectID <= 0 || req.StaffID <= 0 {
		return apperrors.NewValidationError("project_id and staff_id required", nil)
	}

	assignment := &domain.Assignment{
		ProjectID:    req.ProjectID,
		StaffID:      req.StaffID,
		Jurisdiction: req.Jurisdiction,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}
	created, err := h.service.CreateAssignment(c.Context(), actor, assignment)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": assignmentResponse(created)})
}

// ListAssignments GET /api/assignments.
func (h *AssignmentsHandler) ListAssignments(c *fiber.Ctx) error {
	filter := repository.AssignmentFilter{}
	if raw := c.Query("project_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.ProjectID = &id
		}
	}
	if raw := c.Query("staff_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.StaffID = &id
		}
	}
	filter.Limit, filter.Offset = pagination(c)

	assignments, err := h.service.ListAssignments(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		items = append(items, assignmentResponse(&assignments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// DeleteAssignment DELETE /api/assignments/:id.
func (h *AssignmentsHandler) DeleteAssignment(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteAssignment(c.Context(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func assignmentResponse(assignment *domain.Assignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:           assignment.ID,
		ProjectID:    assignment.ProjectID,
		StaffID:      assignment.StaffID,
		Jurisdiction: assignment.Jurisdiction,
		StartDate:    assignment.StartDate,
		EndDate:      assignment.EndDate,
		CreatedAt:    assignment.CreatedAt,
	}
}
