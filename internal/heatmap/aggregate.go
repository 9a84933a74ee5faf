package heatmap

import "time"

// MilestoneType selects which project milestone dates count toward the
// heatmap.
type MilestoneType string

const (
	MilestoneFiling  MilestoneType = "filing"
	MilestoneListing MilestoneType = "listing"
	MilestoneBoth    MilestoneType = "both"
)

// ParseMilestoneType validates a query-string value, defaulting to both.
func ParseMilestoneType(s string) (MilestoneType, bool) {
	switch MilestoneType(s) {
	case "":
		return MilestoneBoth, true
	case MilestoneFiling, MilestoneListing, MilestoneBoth:
		return MilestoneType(s), true
	}
	return "", false
}

// RosterEntry is one active staff member eligible for a heatmap row.
type RosterEntry struct {
	StaffID  int64
	Name     string
	Position string
}

// Event is one assignment joined to its project's milestone dates. A
// single event contributes up to two dates when both milestones are set.
type Event struct {
	StaffID     int64
	FilingDate  *time.Time
	ListingDate *time.Time
}

// Dates returns the event's qualifying milestone dates for mt.
func (e Event) Dates(mt MilestoneType) []time.Time {
	var out []time.Time
	if (mt == MilestoneFiling || mt == MilestoneBoth) && e.FilingDate != nil {
		out = append(out, *e.FilingDate)
	}
	if (mt == MilestoneListing || mt == MilestoneBoth) && e.ListingDate != nil {
		out = append(out, *e.ListingDate)
	}
	return out
}

// WeekCount is one period cell of a heatmap row.
type WeekCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

// Row is the heatmap output for one staff member.
type Row struct {
	StaffID  int64       `json:"staffId"`
	Name     string      `json:"name"`
	Position string      `json:"position"`
	Weeks    []WeekCount `json:"weeks"`
}

// Aggregate buckets every qualifying event date into the period that
// contains it, counting per staff member and period key. Periods are
// scanned in order and the first containing period wins; dates outside
// every period are skipped.
func Aggregate(periods []Period, events []Event, mt MilestoneType) map[int64]map[string]int {
	counts := make(map[int64]map[string]int)
	for _, ev := range events {
		for _, d := range ev.Dates(mt) {
			key, ok := locate(periods, d)
			if !ok {
				continue
			}
			byPeriod := counts[ev.StaffID]
			if byPeriod == nil {
				byPeriod = make(map[string]int, len(periods))
				counts[ev.StaffID] = byPeriod
			}
			byPeriod[key]++
		}
	}
	return counts
}

func locate(periods []Period, t time.Time) (string, bool) {
	for _, p := range periods {
		if p.Contains(t) {
			return p.Key, true
		}
	}
	return "", false
}

// Assemble produces one row per roster member in roster order, with one
// cell per period in planner order. Staff absent from counts get all
// zeros; roster completeness is the invariant dashboards rely on.
func Assemble(roster []RosterEntry, periods []Period, counts map[int64]map[string]int) []Row {
	rows := make([]Row, 0, len(roster))
	for _, member := range roster {
		weeks := make([]WeekCount, 0, len(periods))
		for _, p := range periods {
			weeks = append(weeks, WeekCount{Week: p.Key, Count: counts[member.StaffID][p.Key]})
		}
		rows = append(rows, Row{
			StaffID:  member.StaffID,
			Name:     member.Name,
			Position: member.Position,
			Weeks:    weeks,
		})
	}
	return rows
}

// Build runs aggregation and assembly in one step.
func Build(periods []Period, roster []RosterEntry, events []Event, mt MilestoneType) []Row {
	return Assemble(roster, periods, Aggregate(periods, events, mt))
}
