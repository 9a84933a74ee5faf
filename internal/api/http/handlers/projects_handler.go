package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-tracker/internal/api/dto"
	"github.com/spec-kit/staffing-tracker/internal/domain"
	"github.com/spec-kit/staffing-tracker/internal/repository"
	"github.com/spec-kit/staffing-tracker/internal/service"
	apperrors "github.com/spec-kit/staffing-tracker/pkg/util"
)

// ProjectsHandler manages deal project endpoints.
type ProjectsHandler struct {
	service *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: projectService}
}

// CreateProject POST /api/projects.
func (h *ProjectsHandler) CreateProject(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}

	project, err := h.service.CreateProject(c.Context(), actor, projectFromRequest(&req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": projectResponse(project)})
}

// ListProjects GET /api/projects.
func (h *ProjectsHandler) ListProjects(c *fiber.Ctx) error {
	filter := parseProjectQuery(c)
	projects, err := h.service.ListProjects(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, projectResponse(&projects[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetProject GET /api/projects/:id.
func (h *ProjectsHandler) GetProject(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	project, err := h.service.GetProjectByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projectResponse(project)})
}

// UpdateProject PUT /api/projects/:id.
func (h *ProjectsHandler) UpdateProject(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	project := projectFromRequest(&req)
	project.ID = id
	updated, err := h.service.UpdateProject(c.Context(), actor, project)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projectResponse(updated)})
}

// DeleteProject DELETE /api/projects/:id.
func (h *ProjectsHandler) DeleteProject(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteProject(c.Context(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseProjectQuery(c *fiber.Ctx) repository.ProjectFilter {
	filter := repository.ProjectFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.ProjectStatus(strings.TrimSpace(part)))
		}
	}
	filter.Category = optionalQuery(c, "category")
	filter.SearchTerm = optionalQuery(c, "search")
	filter.Limit, filter.Offset = pagination(c)
	return filter
}

func projectFromRequest(req *dto.ProjectRequest) *domain.Project {
	return &domain.Project{
		Name:        req.Name,
		Category:    req.Category,
		Status:      domain.ProjectStatus(req.Status),
		Side:        req.Side,
		Sector:      req.Sector,
		Priority:    req.Priority,
		Notes:       req.Notes,
		FilingDate:  req.FilingDate,
		ListingDate: req.ListingDate,
	}
}

func projectResponse(project *domain.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Category:    project.Category,
		Status:      string(project.Status),
		Side:        project.Side,
		Sector:      project.Sector,
		Priority:    project.Priority,
		Notes:       project.Notes,
		FilingDate:  project.FilingDate,
		ListingDate: project.ListingDate,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}
