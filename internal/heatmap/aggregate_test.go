package heatmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(t time.Time) *time.Time { return &t }

func TestParseMilestoneType(t *testing.T) {
	cases := []struct {
		in   string
		want MilestoneType
		ok   bool
	}{
		{"", MilestoneBoth, true},
		{"filing", MilestoneFiling, true},
		{"listing", MilestoneListing, true},
		{"both", MilestoneBoth, true},
		{"Filing", "", false},
		{"all", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseMilestoneType(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestEventDates(t *testing.T) {
	filing := date(2025, time.January, 3)
	listing := date(2025, time.January, 20)
	ev := Event{StaffID: 1, FilingDate: ptr(filing), ListingDate: ptr(listing)}

	assert.Equal(t, []time.Time{filing}, ev.Dates(MilestoneFiling))
	assert.Equal(t, []time.Time{listing}, ev.Dates(MilestoneListing))
	assert.Equal(t, []time.Time{filing, listing}, ev.Dates(MilestoneBoth))

	assert.Empty(t, Event{StaffID: 2}.Dates(MilestoneBoth))
}

func TestAggregateBucketsByPeriod(t *testing.T) {
	periods, err := PlanPeriods(date(2025, time.January, 1), date(2025, time.January, 31), time.UTC)
	require.NoError(t, err)

	events := []Event{
		{StaffID: 1, FilingDate: ptr(date(2025, time.January, 2)), ListingDate: ptr(date(2025, time.January, 9))},
		{StaffID: 1, FilingDate: ptr(date(2025, time.January, 3))},
		{StaffID: 2, ListingDate: ptr(date(2025, time.January, 16))},
		// Outside the planned range; must be skipped.
		{StaffID: 2, FilingDate: ptr(date(2025, time.March, 1))},
	}

	counts := Aggregate(periods, events, MilestoneBoth)
	assert.Equal(t, 2, counts[1]["2025-01-01"])
	assert.Equal(t, 1, counts[1]["2025-01-08"])
	assert.Equal(t, 1, counts[2]["2025-01-15"])

	total := 0
	for _, byPeriod := range counts {
		for _, n := range byPeriod {
			total += n
		}
	}
	assert.Equal(t, 4, total)
}

func TestAggregateFiltersMilestoneType(t *testing.T) {
	periods, err := PlanPeriods(date(2025, time.January, 1), date(2025, time.January, 31), time.UTC)
	require.NoError(t, err)

	events := []Event{
		{StaffID: 1, FilingDate: ptr(date(2025, time.January, 2)), ListingDate: ptr(date(2025, time.January, 9))},
	}

	filing := Aggregate(periods, events, MilestoneFiling)
	assert.Equal(t, 1, filing[1]["2025-01-01"])
	assert.Zero(t, filing[1]["2025-01-08"])

	listing := Aggregate(periods, events, MilestoneListing)
	assert.Zero(t, listing[1]["2025-01-01"])
	assert.Equal(t, 1, listing[1]["2025-01-08"])
}

func TestAggregateFirstContainingPeriodWins(t *testing.T) {
	// Hand-built overlapping periods; the scan order decides.
	periods := []Period{
		{Key: "a", Start: date(2025, time.January, 1), End: endOfDay(date(2025, time.January, 10))},
		{Key: "b", Start: date(2025, time.January, 5), End: endOfDay(date(2025, time.January, 20))},
	}
	events := []Event{{StaffID: 1, FilingDate: ptr(date(2025, time.January, 7))}}

	counts := Aggregate(periods, events, MilestoneFiling)
	assert.Equal(t, 1, counts[1]["a"])
	assert.Zero(t, counts[1]["b"])
}

func TestAggregateFinalDayBoundary(t *testing.T) {
	periods, err := PlanPeriods(date(2025, time.January, 1), date(2025, time.January, 31), time.UTC)
	require.NoError(t, err)
	lastKey := periods[len(periods)-1].Key

	late := time.Date(2025, time.January, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	counts := Aggregate(periods, []Event{{StaffID: 7, FilingDate: ptr(late)}}, MilestoneFiling)
	assert.Equal(t, 1, counts[7][lastKey])
}

func TestAssembleZeroFillsRosterInOrder(t *testing.T) {
	periods, err := PlanPeriods(date(2025, time.January, 1), date(2025, time.January, 31), time.UTC)
	require.NoError(t, err)

	roster := []RosterEntry{
		{StaffID: 3, Name: "Alice Chen", Position: "Partner"},
		{StaffID: 1, Name: "Bob Li", Position: "Associate"},
		{StaffID: 2, Name: "Carol Wu", Position: "Counsel"},
	}
	events := []Event{{StaffID: 1, FilingDate: ptr(date(2025, time.January, 2))}}

	rows := Build(periods, roster, events, MilestoneBoth)
	require.Len(t, rows, 3)

	// Roster order is preserved, not re-sorted.
	assert.Equal(t, int64(3), rows[0].StaffID)
	assert.Equal(t, int64(1), rows[1].StaffID)
	assert.Equal(t, int64(2), rows[2].StaffID)

	for _, row := range rows {
		require.Len(t, row.Weeks, len(periods))
		for i, cell := range row.Weeks {
			assert.Equal(t, periods[i].Key, cell.Week)
		}
	}

	// Staff without events keep all-zero cells.
	for _, cell := range rows[0].Weeks {
		assert.Zero(t, cell.Count)
	}
	assert.Equal(t, 1, rows[1].Weeks[0].Count)
}

func TestBuildEmptyRoster(t *testing.T) {
	periods, err := PlanPeriods(date(2025, time.January, 1), date(2025, time.January, 31), time.UTC)
	require.NoError(t, err)

	rows := Build(periods, nil, []Event{{StaffID: 1, FilingDate: ptr(date(2025, time.January, 2))}}, MilestoneBoth)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
}
