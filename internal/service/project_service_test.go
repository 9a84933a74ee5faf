package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staffing-tracker/internal/domain"
	"github.com/spec-kit/staffing-tracker/internal/events"
	"github.com/spec-kit/staffing-tracker/internal/repository"
	apperrors "github.com/spec-kit/staffing-tracker/pkg/util"
)

type capturingDispatcher struct {
	published []events.Event
}

func (d *capturingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func newProjectFixture() (*ProjectService, *fakeProjectRepo, *capturingDispatcher) {
	repo := &fakeProjectRepo{projects: map[int64]*domain.Project{
		1: {ID: 1, Name: "Project Dragon", Status: domain.ProjectStatusActive},
	}}
	dispatcher := &capturingDispatcher{}
	return NewProjectService(repo, dispatcher), repo, dispatcher
}

func TestCreateProjectDefaultsStatus(t *testing.T) {
	svc, repo, dispatcher := newProjectFixture()

	created, err := svc.CreateProject(context.Background(), nil, &domain.Project{Name: "Project Willow"})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusActive, created.Status)
	assert.Len(t, repo.projects, 2)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventProjectCreated, dispatcher.published[0].Type)
}

func TestCreateProjectRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newProjectFixture()

	_, err := svc.CreateProject(context.Background(), nil, &domain.Project{Name: "X", Status: "Paused"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestCreateProjectRequiresName(t *testing.T) {
	svc, _, _ := newProjectFixture()

	_, err := svc.CreateProject(context.Background(), nil, &domain.Project{})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUpdateProjectEmitsStatusChange(t *testing.T) {
	svc, _, dispatcher := newProjectFixture()

	_, err := svc.UpdateProject(context.Background(), nil, &domain.Project{
		ID: 1, Name: "Project Dragon", Status: domain.ProjectStatusSuspended,
	})
	require.NoError(t, err)

	require.Len(t, dispatcher.published, 1)
	event := dispatcher.published[0]
	assert.Equal(t, events.EventProjectStatusChanged, event.Type)
	payload, ok := event.Payload.(events.StatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, "Active", payload.OldStatus)
	assert.Equal(t, "Suspended", payload.NewStatus)
}

func TestUpdateProjectSameStatusEmitsUpdated(t *testing.T) {
	svc, _, dispatcher := newProjectFixture()

	_, err := svc.UpdateProject(context.Background(), nil, &domain.Project{
		ID: 1, Name: "Project Dragon Redux", Status: domain.ProjectStatusActive,
	})
	require.NoError(t, err)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventProjectUpdated, dispatcher.published[0].Type)
}

func TestListProjectsValidatesStatusFilter(t *testing.T) {
	svc, _, _ := newProjectFixture()

	_, err := svc.ListProjects(context.Background(), repository.ProjectFilter{
		Statuses: []domain.ProjectStatus{"Bogus"},
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestDeleteProjectRequiresAdmin(t *testing.T) {
	svc, repo, _ := newProjectFixture()

	editor := &domain.User{ID: 5, Role: domain.UserRoleEditor}
	err := svc.DeleteProject(context.Background(), editor, 1)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
	assert.Len(t, repo.projects, 1)

	admin := &domain.User{ID: 6, Role: domain.UserRoleAdmin}
	require.NoError(t, svc.DeleteProject(context.Background(), admin, 1))
	assert.Empty(t, repo.projects)
}
