package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-tracker/internal/domain"
	"github.com/spec-kit/staffing-tracker/internal/heatmap"
)

// HeatmapRepository provides the two read queries behind the staffing
// heatmap: the active roster and the assignment/milestone events. Both are
// read-only; a failure of either fails the whole heatmap request.
type HeatmapRepository interface {
	ActiveRoster(ctx context.Context) ([]heatmap.RosterEntry, error)
	MilestoneEvents(ctx context.Context, start, end time.Time, mt heatmap.MilestoneType) ([]heatmap.Event, error)
}

type heatmapRepository struct {
	pool *pgxpool.Pool
}

// NewHeatmapRepository instantiates repository.
func NewHeatmapRepository(pool *pgxpool.Pool) HeatmapRepository {
	return &heatmapRepository{pool: pool}
}

func (r *heatmapRepository) ActiveRoster(ctx context.Context) ([]heatmap.RosterEntry, error) {
	const query = `
        SELECT id, name, position
        FROM staff_members
        WHERE status=$1
        ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, domain.StaffStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []heatmap.RosterEntry
	for rows.Next() {
		var entry heatmap.RosterEntry
		if err := rows.Scan(&entry.StaffID, &entry.Name, &entry.Position); err != nil {
			return nil, err
		}
		roster = append(roster, entry)
	}
	return roster, rows.Err()
}

// MilestoneEvents returns one event per assignment whose project is still
// in staffing scope and has at least one qualifying milestone date inside
// [start, end]. The type filter is applied again in the aggregator; here
// it prunes the result set.
func (r *heatmapRepository) MilestoneEvents(ctx context.Context, start, end time.Time, mt heatmap.MilestoneType) ([]heatmap.Event, error) {
	base := `
        SELECT a.staff_id, p.filing_date, p.listing_date
        FROM assignments a
        JOIN projects p ON p.id = a.project_id
        WHERE p.status IN ($1,$2)`

	args := []any{domain.ProjectStatusActive, domain.ProjectStatusSlowdown, start, end}
	var dateClause string
	switch mt {
	case heatmap.MilestoneFiling:
		dateClause = ` AND p.filing_date BETWEEN $3 AND $4`
	case heatmap.MilestoneListing:
		dateClause = ` AND p.listing_date BETWEEN $3 AND $4`
	default:
		dateClause = ` AND (p.filing_date BETWEEN $3 AND $4 OR p.listing_date BETWEEN $3 AND $4)`
	}

	rows, err := r.pool.Query(ctx, base+dateClause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []heatmap.Event
	for rows.Next() {
		var event heatmap.Event
		if err := rows.Scan(&event.StaffID, &event.FilingDate, &event.ListingDate); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
