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

// StaffService manages the fee-earner roster.
type StaffService struct {
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
}

// NewStaffService constructs the service.
func NewStaffService(staff repository.StaffRepository, dispatcher events.Dispatcher) *StaffService {
	return &StaffService{staff: staff, dispatcher: dispatcher}
}

func validStaffStatus(s domain.StaffStatus) bool {
	switch s {
	case domain.StaffStatusActive, domain.StaffStatusLeaving, domain.StaffStatusInactive:
		return true
	}
	return false
}

// CreateStaffMember adds a staff member to the roster.
func (s *StaffService) CreateStaffMember(ctx context.Context, actor *domain.User, staff *domain.StaffMember) (*domain.StaffMember, error) {
	if staff.Name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if staff.Status == "" {
		staff.Status = domain.StaffStatusActive
	}
	if !validStaffStatus(staff.Status) {
		return nil, apperrors.NewValidationError("unknown staff status", map[string]any{"status": staff.Status})
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventStaffCreated, actor, staff.ID)
	return staff, nil
}

// GetStaffMemberByID fetches one roster entry.
func (s *StaffService) GetStaffMemberByID(ctx context.Context, id int64) (*domain.StaffMember, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// ListStaffMembers lists roster entries with filters.
func (s *StaffService) ListStaffMembers(ctx context.Context, filter repository.StaffFilter) ([]domain.StaffMember, error) {
	if filter.Status != nil && !validStaffStatus(*filter.Status) {
		return nil, apperrors.NewValidationError("unknown staff status", map[string]any{"status": *filter.Status})
	}
	staff, err := s.staff.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// UpdateStaffMember applies roster edits.
func (s *StaffService) UpdateStaffMember(ctx context.Context, actor *domain.User, staff *domain.StaffMember) (*domain.StaffMember, error) {
	if !validStaffStatus(staff.Status) {
		return nil, apperrors.NewValidationError("unknown staff status", map[string]any{"status": staff.Status})
	}
	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventStaffUpdated, actor, staff.ID)
	return staff, nil
}

// DeleteStaffMember removes a roster entry. Admin only; assignments
// cascade.
func (s *StaffService) DeleteStaffMember(ctx context.Context, actor *domain.User, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return apperrors.MapError(s.staff.Delete(ctx, id))
}

func (s *StaffService) publish(ctx context.Context, typ events.EventType, actor *domain.User, entityID int64) {
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
		EntityType:  "staff",
		EntityID:    entityID,
		ActorUserID: actorID,
		Timestamp:   time.Now(),
	})
}
