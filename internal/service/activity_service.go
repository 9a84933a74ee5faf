package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-tracker/internal/domain"
	"github.com/spec-kit/staffing-tracker/internal/events"
	"github.com/spec-kit/staffing-tracker/internal/repository"
	apperrors "github.com/spec-kit/staffing-tracker/pkg/util"
)

// ActivityService persists an audit entry for every domain event.
type ActivityService struct {
	dispatcher events.Dispatcher
	log        repository.ActivityLogRepository
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, log repository.ActivityLogRepository, logger *zap.Logger) *ActivityService {
	return &ActivityService{dispatcher: dispatcher, log: log, logger: logger}
}

// RegisterHandlers subscribes the audit writer to all event types.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, typ := range []events.EventType{
		events.EventProjectCreated,
		events.EventProjectUpdated,
		events.EventProjectStatusChanged,
		events.EventProjectDeleted,
		events.EventStaffCreated,
		events.EventStaffUpdated,
		events.EventAssignmentCreated,
		events.EventAssignmentDeleted,
		events.EventMatterUpdated,
		events.EventMatterLinked,
		events.EventMilestoneCompleted,
	} {
		a.dispatcher.Subscribe(typ, a.record)
	}
}

// record writes one audit row. Failures are logged, never surfaced: the
// triggering request must not fail because auditing did.
func (a *ActivityService) record(ctx context.Context, event events.Event) error {
	detail := ""
	if event.Payload != nil {
		if raw, err := json.Marshal(event.Payload); err == nil {
			detail = string(raw)
		}
	}

	entityID := event.EntityID
	entry := &domain.ActivityLog{
		UserID:     event.ActorUserID,
		Action:     string(event.Type),
		EntityType: event.EntityType,
		EntityID:   &entityID,
		Detail:     detail,
	}
	if err := a.log.Create(ctx, entry); err != nil {
		a.logger.Warn("activity log write failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
	return nil
}

// ListRecent returns the newest audit entries. Admin only.
func (a *ActivityService) ListRecent(ctx context.Context, actor *domain.User, limit int) ([]domain.ActivityLog, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	entries, err := a.log.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}
