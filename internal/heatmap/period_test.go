package heatmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPlanPeriodsThirtyDays(t *testing.T) {
	start := date(2025, time.January, 1)
	end := start.AddDate(0, 0, 30)

	periods, err := PlanPeriods(start, end, time.UTC)
	require.NoError(t, err)
	require.Len(t, periods, 5)

	assert.Equal(t, "2025-01-01", periods[0].Key)
	assert.Equal(t, "2025-01-08", periods[1].Key)
	assert.Equal(t, "2025-01-15", periods[2].Key)
	assert.Equal(t, "2025-01-22", periods[3].Key)
	assert.Equal(t, "2025-01-29", periods[4].Key)

	// Final period is clamped to the requested end, not a full width.
	last := periods[4]
	assert.Equal(t, date(2025, time.January, 29), last.Start)
	assert.Equal(t,
		time.Date(2025, time.January, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC),
		last.End)
}

func TestPlanPeriodsIntervalWidths(t *testing.T) {
	cases := []struct {
		days         int
		wantInterval int
	}{
		{7, 7},
		{40, 7},
		{41, 10},
		{70, 10},
		{71, 15},
		{100, 15},
		{101, 20},
		{365, 20},
	}
	start := date(2025, time.March, 1)
	for _, tc := range cases {
		periods, err := PlanPeriods(start, start.AddDate(0, 0, tc.days), time.UTC)
		require.NoError(t, err, "days=%d", tc.days)
		require.NotEmpty(t, periods)

		width := int(periods[0].End.Sub(periods[0].Start).Hours()/24) + 1
		assert.Equal(t, tc.wantInterval, width, "days=%d", tc.days)

		wantCount := (tc.days + tc.wantInterval - 1) / tc.wantInterval
		assert.Len(t, periods, wantCount, "days=%d", tc.days)
	}
}

func TestPlanPeriodsTileWithoutGaps(t *testing.T) {
	start := date(2025, time.June, 10)
	end := start.AddDate(0, 0, 93)

	periods, err := PlanPeriods(start, end, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, start, periods[0].Start)
	for i := 1; i < len(periods); i++ {
		gap := periods[i].Start.Sub(periods[i-1].End)
		assert.Equal(t, time.Millisecond, gap, "period %d", i)
	}
	assert.Equal(t,
		time.Date(2025, time.September, 11, 23, 59, 59, int(999*time.Millisecond), time.UTC),
		periods[len(periods)-1].End)
}

func TestPlanPeriodsRejectsEmptyRange(t *testing.T) {
	start := date(2025, time.January, 1)

	_, err := PlanPeriods(start, start, time.UTC)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = PlanPeriods(start, start.AddDate(0, 0, -1), time.UTC)
	assert.ErrorIs(t, err, ErrInvalidRange)

	// Same calendar day truncates to an empty range.
	_, err = PlanPeriods(start.Add(2*time.Hour), start.Add(20*time.Hour), time.UTC)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestPlanPeriodsHonorsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	// 22:00 UTC on Jan 1 is already Jan 2 in UTC+8.
	start := time.Date(2025, time.January, 1, 22, 0, 0, 0, time.UTC)

	periods, err := PlanPeriods(start, start.AddDate(0, 0, 14), loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02", periods[0].Key)
	assert.Equal(t, loc, periods[0].Start.Location())
}

func TestPeriodContains(t *testing.T) {
	periods, err := PlanPeriods(date(2025, time.January, 1), date(2025, time.January, 8), time.UTC)
	require.NoError(t, err)
	require.Len(t, periods, 1)

	p := periods[0]
	assert.True(t, p.Contains(p.Start))
	assert.True(t, p.Contains(p.End))
	assert.True(t, p.Contains(date(2025, time.January, 5)))
	assert.False(t, p.Contains(p.Start.Add(-time.Millisecond)))
	assert.False(t, p.Contains(p.End.Add(time.Millisecond)))
}
