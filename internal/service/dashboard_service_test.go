package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staffing-tracker/internal/heatmap"
	apperrors "github.com/spec-kit/staffing-tracker/pkg/util"
)

type fakeHeatmapRepo struct {
	roster   []heatmap.RosterEntry
	events   []heatmap.Event
	calls    int
	lastFrom time.Time
	lastTo   time.Time
	lastType heatmap.MilestoneType
}

func (f *fakeHeatmapRepo) ActiveRoster(ctx context.Context) ([]heatmap.RosterEntry, error) {
	f.calls++
	return f.roster, nil
}

func (f *fakeHeatmapRepo) MilestoneEvents(ctx context.Context, start, end time.Time, mt heatmap.MilestoneType) ([]heatmap.Event, error) {
	f.calls++
	f.lastFrom = start
	f.lastTo = end
	f.lastType = mt
	return f.events, nil
}

func newHeatmapService(repo *fakeHeatmapRepo) *DashboardService {
	return NewDashboardService(DashboardDependencies{HeatmapRepo: repo}, time.UTC, 0)
}

func TestStaffingHeatmapDefaultRange(t *testing.T) {
	when := time.Now().UTC().AddDate(0, 0, 3)
	repo := &fakeHeatmapRepo{
		roster: []heatmap.RosterEntry{
			{StaffID: 1, Name: "Alice Chen", Position: "Partner"},
			{StaffID: 2, Name: "Bob Li", Position: "Associate"},
		},
		events: []heatmap.Event{{StaffID: 1, FilingDate: &when}},
	}

	rows, err := newHeatmapService(repo).StaffingHeatmap(context.Background(), 0, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Default 30-day window buckets into five 7-day periods.
	assert.Len(t, rows[0].Weeks, 5)
	assert.Equal(t, heatmap.MilestoneBoth, repo.lastType)

	total := 0
	for _, row := range rows {
		for _, cell := range row.Weeks {
			total += cell.Count
		}
	}
	assert.Equal(t, 1, total)
}

func TestStaffingHeatmapQuerySpansFullLastPeriod(t *testing.T) {
	repo := &fakeHeatmapRepo{}
	_, err := newHeatmapService(repo).StaffingHeatmap(context.Background(), 30, "filing")
	require.NoError(t, err)

	assert.Equal(t, heatmap.MilestoneFiling, repo.lastType)
	// The query upper bound is the clamped end of the final period, so a
	// milestone on the last calendar day is still fetched.
	assert.Equal(t, 23, repo.lastTo.Hour())
	assert.True(t, repo.lastTo.After(repo.lastFrom))
}

func TestStaffingHeatmapRejectsInvalidMilestoneType(t *testing.T) {
	repo := &fakeHeatmapRepo{}
	_, err := newHeatmapService(repo).StaffingHeatmap(context.Background(), 30, "quarterly")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Zero(t, repo.calls, "validation must precede data access")
}

func TestStaffingHeatmapRejectsDaysOutOfRange(t *testing.T) {
	repo := &fakeHeatmapRepo{}
	svc := newHeatmapService(repo)

	for _, days := range []int{-1, 366, 1000} {
		_, err := svc.StaffingHeatmap(context.Background(), days, "")
		require.Error(t, err, "days=%d", days)
		assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	}
	assert.Zero(t, repo.calls)

	_, err := svc.StaffingHeatmap(context.Background(), 1, "")
	assert.NoError(t, err)
	_, err = svc.StaffingHeatmap(context.Background(), 365, "")
	assert.NoError(t, err)
}

func TestStaffingHeatmapIdempotent(t *testing.T) {
	when := time.Now().UTC().AddDate(0, 0, 10)
	repo := &fakeHeatmapRepo{
		roster: []heatmap.RosterEntry{{StaffID: 1, Name: "Alice Chen"}},
		events: []heatmap.Event{{StaffID: 1, ListingDate: &when}},
	}
	svc := newHeatmapService(repo)

	first, err := svc.StaffingHeatmap(context.Background(), 60, "listing")
	require.NoError(t, err)
	second, err := svc.StaffingHeatmap(context.Background(), 60, "listing")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
