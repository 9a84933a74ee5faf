package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staffing-tracker/internal/domain"
	"github.com/spec-kit/staffing-tracker/internal/events"
	"github.com/spec-kit/staffing-tracker/internal/repository"
	apperrors "github.com/spec-kit/staffing-tracker/pkg/util"
)

type fakeProjectRepo struct {
	projects map[int64]*domain.Project
}

func (f *fakeProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	p.ID = int64(len(f.projects) + 1)
	f.projects[p.ID] = p
	return nil
}

func (f *fakeProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	if _, ok := f.projects[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.projects[p.ID] = p
	return nil
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (f *fakeProjectRepo) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.projects[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectRepo) CountByStatus(ctx context.Context) (map[domain.ProjectStatus]int64, error) {
	counts := make(map[domain.ProjectStatus]int64)
	for _, p := range f.projects {
		counts[p.Status]++
	}
	return counts, nil
}

type fakeStaffRepo struct {
	members map[int64]*domain.StaffMember
}

func (f *fakeStaffRepo) Create(ctx context.Context, s *domain.StaffMember) error {
	s.ID = int64(len(f.members) + 1)
	f.members[s.ID] = s
	return nil
}

func (f *fakeStaffRepo) Update(ctx context.Context, s *domain.StaffMember) error {
	if _, ok := f.members[s.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.members[s.ID] = s
	return nil
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id int64) (*domain.StaffMember, error) {
	s, ok := f.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

func (f *fakeStaffRepo) List(ctx context.Context, filter repository.StaffFilter) ([]domain.StaffMember, error) {
	out := make([]domain.StaffMember, 0, len(f.members))
	for _, s := range f.members {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStaffRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.members[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.members, id)
	return nil
}

func (f *fakeStaffRepo) CountByStatus(ctx context.Context) (map[domain.StaffStatus]int64, error) {
	counts := make(map[domain.StaffStatus]int64)
	for _, s := range f.members {
		counts[s.Status]++
	}
	return counts, nil
}

type fakeAssignmentRepo struct {
	assignments map[int64]*domain.Assignment
	nextID      int64
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	f.nextID++
	a.ID = f.nextID
	f.assignments[a.ID] = a
	return nil
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, id int64) (*domain.Assignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return a, nil
}

func (f *fakeAssignmentRepo) List(ctx context.Context, filter repository.AssignmentFilter) ([]domain.Assignment, error) {
	out := make([]domain.Assignment, 0, len(f.assignments))
	for _, a := range f.assignments {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.assignments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.assignments, id)
	return nil
}

func (f *fakeAssignmentRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.assignments)), nil
}

func newAssignmentFixture() (*AssignmentService, *fakeProjectRepo, *fakeStaffRepo, *fakeAssignmentRepo) {
	projects := &fakeProjectRepo{projects: map[int64]*domain.Project{
		1: {ID: 1, Name: "Project Dragon", Status: domain.ProjectStatusActive},
		2: {ID: 2, Name: "Project Phoenix", Status: domain.ProjectStatusTerminated},
		3: {ID: 3, Name: "Project Willow", Status: domain.ProjectStatusSlowdown},
	}}
	staff := &fakeStaffRepo{members: map[int64]*domain.StaffMember{
		1: {ID: 1, Name: "Alice Chen", Status: domain.StaffStatusActive},
		2: {ID: 2, Name: "Bob Li", Status: domain.StaffStatusInactive},
	}}
	assignments := &fakeAssignmentRepo{assignments: map[int64]*domain.Assignment{}}
	svc := NewAssignmentService(AssignmentDependencies{
		AssignmentRepo: assignments,
		ProjectRepo:    projects,
		StaffRepo:      staff,
		Dispatcher:     events.NewInMemoryDispatcher(),
	})
	return svc, projects, staff, assignments
}

func TestCreateAssignment(t *testing.T) {
	svc, _, _, repo := newAssignmentFixture()

	created, err := svc.CreateAssignment(context.Background(), nil, &domain.Assignment{ProjectID: 1, StaffID: 1})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Len(t, repo.assignments, 1)
}

func TestCreateAssignmentSlowdownProjectAllowed(t *testing.T) {
	svc, _, _, _ := newAssignmentFixture()

	_, err := svc.CreateAssignment(context.Background(), nil, &domain.Assignment{ProjectID: 3, StaffID: 1})
	assert.NoError(t, err)
}

func TestCreateAssignmentRejectsOutOfScopeProject(t *testing.T) {
	svc, _, _, repo := newAssignmentFixture()

	_, err := svc.CreateAssignment(context.Background(), nil, &domain.Assignment{ProjectID: 2, StaffID: 1})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
	assert.Empty(t, repo.assignments)
}

func TestCreateAssignmentRejectsInactiveStaff(t *testing.T) {
	svc, _, _, repo := newAssignmentFixture()

	_, err := svc.CreateAssignment(context.Background(), nil, &domain.Assignment{ProjectID: 1, StaffID: 2})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
	assert.Empty(t, repo.assignments)
}

func TestCreateAssignmentUnknownProject(t *testing.T) {
	svc, _, _, _ := newAssignmentFixture()

	_, err := svc.CreateAssignment(context.Background(), nil, &domain.Assignment{ProjectID: 99, StaffID: 1})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestDeleteAssignment(t *testing.T) {
	svc, _, _, repo := newAssignmentFixture()
	created, err := svc.CreateAssignment(context.Background(), nil, &domain.Assignment{ProjectID: 1, StaffID: 1})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAssignment(context.Background(), nil, created.ID))
	assert.Empty(t, repo.assignments)

	err = svc.DeleteAssignment(context.Background(), nil, created.ID)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
