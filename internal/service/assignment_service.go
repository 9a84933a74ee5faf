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

// AssignmentService manages the staff-to-project join entity.
type AssignmentService struct {
	assignments repository.AssignmentRepository
	projects    repository.ProjectRepository
	staff       repository.StaffRepository
	dispatcher  events.Dispatcher
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	AssignmentRepo repository.AssignmentRepository
	ProjectRepo    repository.ProjectRepository
	StaffRepo      repository.StaffRepository
	Dispatcher     events.Dispatcher
}

// NewAssignmentService constructs the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		assignments: deps.AssignmentRepo,
		projects:    deps.ProjectRepo,
		staff:       deps.StaffRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// CreateAssignment links a staff member to a project team after checking
// both ends exist and the project still takes staffing.
func (s *AssignmentService) CreateAssignment(ctx context.Context, actor *domain.User, assignment *domain.Assignment) (*domain.Assignment, error) {
	project, err := s.projects.GetByID(ctx, assignment.ProjectID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !project.InStaffingScope() {
		return nil, apperrors.NewConflict("project not in staffing scope", map[string]any{
			"project_id": project.ID,
			"status":     project.Status,
		})
	}
	staff, err := s.staff.GetByID(ctx, assignment.StaffID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if staff.Status == domain.StaffStatusInactive {
		return nil, apperrors.NewConflict("staff member inactive", map[string]any{"staff_id": staff.ID})
	}

	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventAssignmentCreated, actor, assignment)
	return assignment, nil
}

// ListAssignments lists assignments with filters.
func (s *AssignmentService) ListAssignments(ctx context.Context, filter repository.AssignmentFilter) ([]domain.Assignment, error) {
	assignments, err := s.assignments.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return assignments, nil
}

// DeleteAssignment removes a staff member from a project team.
func (s *AssignmentService) DeleteAssignment(ctx context.Context, actor *domain.User, id int64) error {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.assignments.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.EventAssignmentDeleted, actor, assignment)
	return nil
}

func (s *AssignmentService) publish(ctx context.Context, typ events.EventType, actor *domain.User, assignment *domain.Assignment) {
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
		EntityType:  "assignment",
		EntityID:    assignment.ID,
		ActorUserID: actorID,
		Timestamp:   time.Now(),
		Payload: events.AssignmentPayload{
			ProjectID:    assignment.ProjectID,
			StaffID:      assignment.StaffID,
			Jurisdiction: assignment.Jurisdiction,
		},
	})
}
