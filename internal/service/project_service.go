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

// ProjectService owns project lifecycle rules.
type ProjectService struct {
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
}

// NewProjectService constructs the service.
func NewProjectService(projects repository.ProjectRepository, dispatcher events.Dispatcher) *ProjectService {
	return &ProjectService{projects: projects, dispatcher: dispatcher}
}

// CreateProject validates and persists a new project.
func (s *ProjectService) CreateProject(ctx context.Context, actor *domain.User, project *domain.Project) (*domain.Project, error) {
	if project.Name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if project.Status == "" {
		project.Status = domain.ProjectStatusActive
	}
	if !domain.ValidProjectStatus(project.Status) {
		return nil, apperrors.NewValidationError("unknown project status", map[string]any{"status": project.Status})
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventProjectCreated, actor, project.ID, nil)
	return project, nil
}

// GetProjectByID fetches one project.
func (s *ProjectService) GetProjectByID(ctx context.Context, id int64) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return project, nil
}

// ListProjects lists projects with filters.
func (s *ProjectService) ListProjects(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	for _, status := range filter.Statuses {
		if !domain.ValidProjectStatus(status) {
			return nil, apperrors.NewValidationError("unknown project status", map[string]any{"status": status})
		}
	}
	projects, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

// UpdateProject applies edits, emitting a status-change event when the
// lifecycle state moved.
func (s *ProjectService) UpdateProject(ctx context.Context, actor *domain.User, project *domain.Project) (*domain.Project, error) {
	if !domain.ValidProjectStatus(project.Status) {
		return nil, apperrors.NewValidationError("unknown project status", map[string]any{"status": project.Status})
	}
	existing, err := s.projects.GetByID(ctx, project.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}

	if existing.Status != project.Status {
		s.publish(ctx, events.EventProjectStatusChanged, actor, project.ID, events.StatusChangedPayload{
			OldStatus: string(existing.Status),
			NewStatus: string(project.Status),
		})
	} else {
		s.publish(ctx, events.EventProjectUpdated, actor, project.ID, nil)
	}
	return project, nil
}

// DeleteProject removes a project and its assignments (FK cascade).
func (s *ProjectService) DeleteProject(ctx context.Context, actor *domain.User, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.EventProjectDeleted, actor, id, nil)
	return nil
}

func (s *ProjectService) publish(ctx context.Context, typ events.EventType, actor *domain.User, entityID int64, payload interface{}) {
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
		EntityType:  "project",
		EntityID:    entityID,
		ActorUserID: actorID,
		Timestamp:   time.Now(),
		Payload:     payload,
	})
}
