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

// BillingHandler manages billing matter and fee milestone endpoints.
type BillingHandler struct {
	service *service.BillingService
}

// NewBillingHandler constructs handler.
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{service: billingService}
}

// CreateMatter POST /api/billing/matters.
func (h *BillingHandler) CreateMatter(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.MatterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	matter, err := h.service.CreateMatter(c.Context(), actor, matterFromRequest(&req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": matterResponse(matter)})
}

// ListMatters GET /api/billing/matters.
func (h *BillingHandler) ListMatters(c *fiber.Ctx) error {
	filter := repository.MatterFilter{
		AttorneyInCharge: optionalQuery(c, "attorney"),
		ClientName:       optionalQuery(c, "client"),
		SearchTerm:       optionalQuery(c, "search"),
		Unlinked:         c.QueryBool("unlinked"),
	}
	filter.Limit, filter.Offset = pagination(c)

	matters, err := h.service.ListMatters(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.MatterResponse, 0, len(matters))
	for i := range matters {
		items = append(items, matterResponse(&matters[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetMatter GET /api/billing/matters/:id.
func (h *BillingHandler) GetMatter(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	matter, err := h.service.GetMatterByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": matterResponse(matter)})
}

// UpdateMatter PUT /api/billing/matters/:id.
func (h *BillingHandler) UpdateMatter(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.MatterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	matter := matterFromRequest(&req)
	matter.ID = id
	updated, err := h.service.UpdateMatter(c.Context(), actor, matter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": matterResponse(updated)})
}

// ListMilestones GET /api/billing/matters/:id/milestones.
func (h *BillingHandler) ListMilestones(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	milestones, err := h.service.ListMilestones(c.Context(), id)
	if err != nil {
		return err
	}
	items := make([]dto.MilestoneResponse, 0, len(milestones))
	for i := range milestones {
		items = append(items, milestoneResponse(&milestones[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateMilestone POST /api/billing/matters/:id/milestones.
func (h *BillingHandler) CreateMilestone(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	matterID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.MilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	milestone := milestoneFromRequest(&req)
	milestone.MatterID = matterID
	milestone.Ordinal = req.Ordinal
	created, err := h.service.CreateMilestone(c.Context(), actor, milestone)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": milestoneResponse(created)})
}

// UpdateMilestone PUT /api/billing/matters/:id/milestones/:milestoneId.
func (h *BillingHandler) UpdateMilestone(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	matterID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	milestoneID, err := idParam(c, "milestoneId")
	if err != nil {
		return err
	}
	var req dto.MilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	milestone := milestoneFromRequest(&req)
	milestone.ID = milestoneID
	milestone.MatterID = matterID
	updated, err := h.service.UpdateMilestone(c.Context(), actor, milestone)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": milestoneResponse(updated)})
}

// ProjectCandidates GET /api/billing/matters/:id/project-candidates.
func (h *BillingHandler) ProjectCandidates(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	matches, err := h.service.ProjectCandidates(c.Context(), id)
	if err != nil {
		return err
	}
	items := make([]dto.ProjectMatchResponse, 0, len(matches))
	for _, match := range matches {
		items = append(items, dto.ProjectMatchResponse{
			ProjectID:  match.ProjectID,
			Name:       match.Name,
			Status:     string(match.Status),
			Similarity: match.Similarity,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// LinkProject POST /api/billing/matters/:id/link-project.
func (h *BillingHandler) LinkProject(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.LinkProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ProjectID <= 0 {
		return apperrors.NewValidationError("project_id required", nil)
	}

	if err := h.service.LinkProject(c.Context(), actor, id, req.ProjectID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"matter_id": id, "project_id": req.ProjectID}})
}

// Summary GET /api/billing/summary.
func (h *BillingHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.Context())
	if err != nil {
		return err
	}
	byAttorney := make([]fiber.Map, 0, len(summary.ByAttorney))
	for _, rollup := range summary.ByAttorney {
		byAttorney = append(byAttorney, fiber.Map{
			"attorney_in_charge":  rollup.AttorneyInCharge,
			"matter_count":        rollup.MatterCount,
			"total_billed_usd":    rollup.TotalBilledUSD,
			"total_collected_usd": rollup.TotalCollectedUSD,
			"total_ubt_usd":       rollup.TotalUBTUSD,
		})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"matter_count":        summary.MatterCount,
		"total_fees_usd":      summary.TotalFeesUSD,
		"total_billed_usd":    summary.TotalBilledUSD,
		"total_collected_usd": summary.TotalCollectedUSD,
		"total_ubt_usd":       summary.TotalUBTUSD,
		"total_ar_usd":        summary.TotalARUSD,
		"by_attorney":         byAttorney,
	}})
}

func matterFromRequest(req *dto.MatterRequest) *domain.BillingMatter {
	return &domain.BillingMatter{
		CMNumber:         req.CMNumber,
		Name:             req.Name,
		ClientName:       req.ClientName,
		AttorneyInCharge: req.AttorneyInCharge,
		SCA:              req.SCA,
		FeesUSD:          req.FeesUSD,
		BilledUSD:        req.BilledUSD,
		CollectedUSD:     req.CollectedUSD,
		BillingCreditUSD: req.BillingCreditUSD,
		UBTUSD:           req.UBTUSD,
		ARUSD:            req.ARUSD,
		BillingCreditCNY: req.BillingCreditCNY,
		UBTCNY:           req.UBTCNY,
		FinanceComment:   req.FinanceComment,
		Remarks:          req.Remarks,
		LongStopDate:     req.LongStopDate,
	}
}

func matterResponse(matter *domain.BillingMatter) dto.MatterResponse {
	return dto.MatterResponse{
		ID:               matter.ID,
		CMNumber:         matter.CMNumber,
		Name:             matter.Name,
		ClientName:       matter.ClientName,
		AttorneyInCharge: matter.AttorneyInCharge,
		SCA:              matter.SCA,
		ProjectID:        matter.ProjectID,
		FeesUSD:          matter.FeesUSD,
		BilledUSD:        matter.BilledUSD,
		CollectedUSD:     matter.CollectedUSD,
		BillingCreditUSD: matter.BillingCreditUSD,
		UBTUSD:           matter.UBTUSD,
		ARUSD:            matter.ARUSD,
		BillingCreditCNY: matter.BillingCreditCNY,
		UBTCNY:           matter.UBTCNY,
		FinanceComment:   matter.FinanceComment,
		Remarks:          matter.Remarks,
		LongStopDate:     matter.LongStopDate,
		UpdatedAt:        matter.UpdatedAt,
	}
}

func milestoneFromRequest(req *dto.MilestoneRequest) *domain.FeeMilestone {
	return &domain.FeeMilestone{
		Title:          req.Title,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Completed:      req.Completed,
		DueDate:        req.DueDate,
		CompletionDate: req.CompletionDate,
	}
}

func milestoneResponse(milestone *domain.FeeMilestone) dto.MilestoneResponse {
	return dto.MilestoneResponse{
		ID:             milestone.ID,
		MatterID:       milestone.MatterID,
		Ordinal:        milestone.Ordinal,
		Title:          milestone.Title,
		Amount:         milestone.Amount,
		Currency:       milestone.Currency,
		Completed:      milestone.Completed,
		DueDate:        milestone.DueDate,
		CompletionDate: milestone.CompletionDate,
	}
}
