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

type fakeBillingRepo struct {
	matters    map[int64]*domain.BillingMatter
	milestones map[int64]*domain.FeeMilestone
}

func (f *fakeBillingRepo) CreateMatter(ctx context.Context, matter *domain.BillingMatter) error {
	matter.ID = int64(len(f.matters) + 1)
	f.matters[matter.ID] = matter
	return nil
}

func (f *fakeBillingRepo) UpdateMatter(ctx context.Context, matter *domain.BillingMatter) error {
	if _, ok := f.matters[matter.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.matters[matter.ID] = matter
	return nil
}

func (f *fakeBillingRepo) GetMatterByID(ctx context.Context, id int64) (*domain.BillingMatter, error) {
	matter, ok := f.matters[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return matter, nil
}

func (f *fakeBillingRepo) GetMatterByCMNumber(ctx context.Context, cmNumber string) (*domain.BillingMatter, error) {
	for _, matter := range f.matters {
		if matter.CMNumber == cmNumber {
			return matter, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeBillingRepo) ListMatters(ctx context.Context, filter repository.MatterFilter) ([]domain.BillingMatter, error) {
	var out []domain.BillingMatter
	for _, matter := range f.matters {
		out = append(out, *matter)
	}
	return out, nil
}

func (f *fakeBillingRepo) LinkProject(ctx context.Context, matterID, projectID int64) error {
	matter, ok := f.matters[matterID]
	if !ok {
		return pgx.ErrNoRows
	}
	matter.ProjectID = &projectID
	return nil
}

func (f *fakeBillingRepo) ListMilestones(ctx context.Context, matterID int64) ([]domain.FeeMilestone, error) {
	var out []domain.FeeMilestone
	for _, milestone := range f.milestones {
		if milestone.MatterID == matterID {
			out = append(out, *milestone)
		}
	}
	return out, nil
}

func (f *fakeBillingRepo) CreateMilestone(ctx context.Context, milestone *domain.FeeMilestone) error {
	milestone.ID = int64(len(f.milestones) + 1)
	f.milestones[milestone.ID] = milestone
	return nil
}

// UpdateMilestone mirrors the SQL contract: the row must match on both the
// milestone id and the owning matter id.
func (f *fakeBillingRepo) UpdateMilestone(ctx context.Context, milestone *domain.FeeMilestone) error {
	existing, ok := f.milestones[milestone.ID]
	if !ok || existing.MatterID != milestone.MatterID {
		return pgx.ErrNoRows
	}
	f.milestones[milestone.ID] = milestone
	return nil
}

func (f *fakeBillingRepo) Summary(ctx context.Context) (*domain.BillingSummary, error) {
	return &domain.BillingSummary{}, nil
}

func (f *fakeBillingRepo) MatchProjects(ctx context.Context, matterName string, threshold float64, limit int) ([]domain.ProjectMatch, error) {
	return nil, nil
}

func newBillingFixture() (*BillingService, *fakeBillingRepo, *capturingDispatcher) {
	repo := &fakeBillingRepo{
		matters: map[int64]*domain.BillingMatter{
			1: {ID: 1, CMNumber: "C1001", Name: "Dragon Restructuring"},
			2: {ID: 2, CMNumber: "C1002", Name: "Phoenix Arbitration"},
		},
		milestones: map[int64]*domain.FeeMilestone{
			10: {ID: 10, MatterID: 1, Ordinal: "first", Title: "Engagement signed"},
		},
	}
	dispatcher := &capturingDispatcher{}
	projects := &fakeProjectRepo{projects: map[int64]*domain.Project{}}
	return NewBillingService(repo, projects, dispatcher), repo, dispatcher
}

func billingActor() *domain.User {
	return &domain.User{ID: 1, Role: domain.UserRoleEditor}
}

func TestUpdateMilestoneScopedToMatter(t *testing.T) {
	svc, repo, _ := newBillingFixture()

	// Milestone 10 belongs to matter 1; editing it under matter 2 must 404.
	_, err := svc.UpdateMilestone(context.Background(), billingActor(), &domain.FeeMilestone{
		ID: 10, MatterID: 2, Title: "Hijacked",
	})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, "Engagement signed", repo.milestones[10].Title)
}

func TestUpdateMilestoneSameMatter(t *testing.T) {
	svc, repo, dispatcher := newBillingFixture()

	updated, err := svc.UpdateMilestone(context.Background(), billingActor(), &domain.FeeMilestone{
		ID: 10, MatterID: 1, Title: "Engagement signed", Completed: true,
	})
	require.NoError(t, err)
	assert.True(t, repo.milestones[10].Completed)
	assert.True(t, updated.Completed)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventMilestoneCompleted, dispatcher.published[0].Type)
}
