package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/staffing-tracker/internal/domain"
	"github.com/spec-kit/staffing-tracker/internal/events"
	"github.com/spec-kit/staffing-tracker/internal/repository"
	apperrors "github.com/spec-kit/staffing-tracker/pkg/util"
)

// Minimum trigram similarity for a project-name match suggestion.
const matchThreshold = 0.3

// BillingService owns billing matters, fee milestones and the
// matter-to-project linking flow.
type BillingService struct {
	billing    repository.BillingRepository
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
}

// NewBillingService constructs the service.
func NewBillingService(billing repository.BillingRepository, projects repository.ProjectRepository, dispatcher events.Dispatcher) *BillingService {
	return &BillingService{billing: billing, projects: projects, dispatcher: dispatcher}
}

// CreateMatter validates and persists a billing matter.
func (s *BillingService) CreateMatter(ctx context.Context, actor *domain.User, matter *domain.BillingMatter) (*domain.BillingMatter, error) {
	if matter.CMNumber == "" || matter.Name == "" {
		return nil, apperrors.NewValidationError("cm_number and name required", nil)
	}
	if existing, err := s.billing.GetMatterByCMNumber(ctx, matter.CMNumber); err == nil && existing != nil {
		return nil, apperrors.NewConflict("cm_number already exists", map[string]any{"cm_number": matter.CMNumber})
	}
	if err := s.billing.CreateMatter(ctx, matter); err != nil {
		return nil, apperrors.MapError(err)
	}
	return matter, nil
}

// GetMatterByID fetches one matter.
func (s *BillingService) GetMatterByID(ctx context.Context, id int64) (*domain.BillingMatter, error) {
	matter, err := s.billing.GetMatterByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return matter, nil
}

// ListMatters lists matters with filters.
func (s *BillingService) ListMatters(ctx context.Context, filter repository.MatterFilter) ([]domain.BillingMatter, error) {
	matters, err := s.billing.ListMatters(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return matters, nil
}

// UpdateMatter applies financial or descriptive edits.
func (s *BillingService) UpdateMatter(ctx context.Context, actor *domain.User, matter *domain.BillingMatter) (*domain.BillingMatter, error) {
	if err := s.billing.UpdateMatter(ctx, matter); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventMatterUpdated, actor, matter.ID, nil)
	return matter, nil
}

// ListMilestones returns a matter's fee milestones in ordinal order.
func (s *BillingService) ListMilestones(ctx context.Context, matterID int64) ([]domain.FeeMilestone, error) {
	if _, err := s.billing.GetMatterByID(ctx, matterID); err != nil {
		return nil, apperrors.MapError(err)
	}
	milestones, err := s.billing.ListMilestones(ctx, matterID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return milestones, nil
}

// CreateMilestone appends a fee milestone to a matter.
func (s *BillingService) CreateMilestone(ctx context.Context, actor *domain.User, milestone *domain.FeeMilestone) (*domain.FeeMilestone, error) {
	if milestone.Ordinal == "" {
		return nil, apperrors.NewValidationError("ordinal required", nil)
	}
	if _, err := s.billing.GetMatterByID(ctx, milestone.MatterID); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.billing.CreateMilestone(ctx, milestone); err != nil {
		return nil, apperrors.MapError(err)
	}
	return milestone, nil
}

// UpdateMilestone edits a milestone, emitting an event when it flips to
// completed.
func (s *BillingService) UpdateMilestone(ctx context.Context, actor *domain.User, milestone *domain.FeeMilestone) (*domain.FeeMilestone, error) {
	if err := s.billing.UpdateMilestone(ctx, milestone); err != nil {
		return nil, apperrors.MapError(err)
	}
	if milestone.Completed {
		s.publish(ctx, events.EventMilestoneCompleted, actor, milestone.ID, nil)
	}
	return milestone, nil
}

// ProjectCandidates suggests staffing projects whose names resemble the
// matter name, ranked by trigram similarity.
func (s *BillingService) ProjectCandidates(ctx context.Context, matterID int64) ([]domain.ProjectMatch, error) {
	matter, err := s.billing.GetMatterByID(ctx, matterID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	matches, err := s.billing.MatchProjects(ctx, matter.Name, matchThreshold, 5)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return matches, nil
}

// LinkProject records the matter-to-project link after verifying the
// project exists.
func (s *BillingService) LinkProject(ctx context.Context, actor *domain.User, matterID, projectID int64) error {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.billing.LinkProject(ctx, matterID, projectID); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.EventMatterLinked, actor, matterID, events.MatterLinkedPayload{ProjectID: projectID})
	return nil
}

// Summary returns the billing dashboard aggregates.
func (s *BillingService) Summary(ctx context.Context) (*domain.BillingSummary, error) {
	summary, err := s.billing.Summary(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return summary, nil
}

func (s *BillingService) publish(ctx context.Context, typ events.EventType, actor *domain.User, entityID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	var actorID *int64
	if actor != nil {
		actorID = &actor.ID
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Type:        typ,
		EntityType:  "billing_matter",
		EntityID:    entityID,
		ActorUserID: actorID,
		Timestamp:   time.Now(),
		Payload:     payload,
	})
}
