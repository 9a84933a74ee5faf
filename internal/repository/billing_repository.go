package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-tracker/internal/domain"
)

// MatterFilter narrows billing matter listings.
type MatterFilter struct {
	AttorneyInCharge *string
	ClientName       *string
	SearchTerm       *string
	Unlinked         bool
	Limit            int
	Offset           int
}

// BillingRepository encapsulates billing matter and milestone persistence
// plus the dashboard aggregation and fuzzy project-matching queries.
type BillingRepository interface {
	CreateMatter(ctx context.Context, matter *domain.BillingMatter) error
	UpdateMatter(ctx context.Context, matter *domain.BillingMatter) error
	GetMatterByID(ctx context.Context, id int64) (*domain.BillingMatter, error)
	GetMatterByCMNumber(ctx context.Context, cmNumber string) (*domain.BillingMatter, error)
	ListMatters(ctx context.Context, filter MatterFilter) ([]domain.BillingMatter, error)
	LinkProject(ctx context.Context, matterID, projectID int64) error

	ListMilestones(ctx context.Context, matterID int64) ([]domain.FeeMilestone, error)
	CreateMilestone(ctx context.Context, milestone *domain.FeeMilestone) error
	UpdateMilestone(ctx context.Context, milestone *domain.FeeMilestone) error

	Summary(ctx context.Context) (*domain.BillingSummary, error)
	MatchProjects(ctx context.Context, matterName string, threshold float64, limit int) ([]domain.ProjectMatch, error)
}

type billingRepository struct {
	pool *pgxpool.Pool
}

// NewBillingRepository instantiates repository.
func NewBillingRepository(pool *pgxpool.Pool) BillingRepository {
	return &billingRepository{pool: pool}
}

const matterColumns = `id, cm_number, name, client_name, attorney_in_charge, sca, project_id,
               fees_usd, billed_usd, collected_usd, billing_credit_usd, ubt_usd, ar_usd,
               billing_credit_cny, ubt_cny, finance_comment, remarks, long_stop_date,
               created_at, updated_at`

func (r *billingRepository) CreateMatter(ctx context.Context, matter *domain.BillingMatter) error {
	const query = `
        INSERT INTO billing_matters (cm_number, name, client_name, attorney_in_charge, sca, project_id,
            fees_usd, billed_usd, collected_usd, billing_credit_usd, ubt_usd, ar_usd,
            billing_credit_cny, ubt_cny, finance_comment, remarks, long_stop_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		matter.CMNumber,
		matter.Name,
		matter.ClientName,
		matter.AttorneyInCharge,
		matter.SCA,
		matter.ProjectID,
		matter.FeesUSD,
		matter.BilledUSD,
		matter.CollectedUSD,
		matter.BillingCreditUSD,
		matter.UBTUSD,
		matter.ARUSD,
		matter.BillingCreditCNY,
		matter.UBTCNY,
		matter.FinanceComment,
		matter.Remarks,
		matter.LongStopDate,
	).Scan(&matter.ID, &matter.CreatedAt, &matter.UpdatedAt)
}

func (r *billingRepository) UpdateMatter(ctx context.Context, matter *domain.BillingMatter) error {
	const query = `
        UPDATE billing_matters SET cm_number=$1, name=$2, client_name=$3, attorney_in_charge=$4,
            sca=$5, project_id=$6, fees_usd=$7, billed_usd=$8, collected_usd=$9,
            billing_credit_usd=$10, ubt_usd=$11, ar_usd=$12, billing_credit_cny=$13,
            ubt_cny=$14, finance_comment=$15, remarks=$16, long_stop_date=$17, updated_at=NOW()
        WHERE id=$18`
	cmd, err := r.pool.Exec(ctx, query,
		matter.CMNumber,
		matter.Name,
		matter.ClientName,
		matter.AttorneyInCharge,
		matter.SCA,
		matter.ProjectID,
		matter.FeesUSD,
		matter.BilledUSD,
		matter.CollectedUSD,
		matter.BillingCreditUSD,
		matter.UBTUSD,
		matter.ARUSD,
		matter.BillingCreditCNY,
		matter.UBTCNY,
		matter.FinanceComment,
		matter.Remarks,
		matter.LongStopDate,
		matter.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *billingRepository) GetMatterByID(ctx context.Context, id int64) (*domain.BillingMatter, error) {
	return r.fetchMatter(ctx, `SELECT `+matterColumns+` FROM billing_matters WHERE id=$1`, id)
}

func (r *billingRepository) GetMatterByCMNumber(ctx context.Context, cmNumber string) (*domain.BillingMatter, error) {
	return r.fetchMatter(ctx, `SELECT `+matterColumns+` FROM billing_matters WHERE cm_number=$1`, cmNumber)
}

func (r *billingRepository) fetchMatter(ctx context.Context, query string, arg any) (*domain.BillingMatter, error) {
	var matter domain.BillingMatter
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&matter.ID,
		&matter.CMNumber,
		&matter.Name,
		&matter.ClientName,
		&matter.AttorneyInCharge,
		&matter.SCA,
		&matter.ProjectID,
		&matter.FeesUSD,
		&matter.BilledUSD,
		&matter.CollectedUSD,
		&matter.BillingCreditUSD,
		&matter.UBTUSD,
		&matter.ARUSD,
		&matter.BillingCreditCNY,
		&matter.UBTCNY,
		&matter.FinanceComment,
		&matter.Remarks,
		&matter.LongStopDate,
		&matter.CreatedAt,
		&matter.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &matter, nil
}

func (r *billingRepository) ListMatters(ctx context.Context, filter MatterFilter) ([]domain.BillingMatter, error) {
	base := `SELECT ` + matterColumns + ` FROM billing_matters`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AttorneyInCharge != nil {
		args = append(args, *filter.AttorneyInCharge)
		clauses = append(clauses, fmt.Sprintf("attorney_in_charge=$%d", len(args)))
	}
	if filter.ClientName != nil {
		args = append(args, *filter.ClientName)
		clauses = append(clauses, fmt.Sprintf("client_name=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE %s OR LOWER(cm_number) LIKE %s)", placeholder, placeholder))
	}
	if filter.Unlinked {
		clauses = append(clauses, "project_id IS NULL")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY cm_number ASC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BillingMatter
	for rows.Next() {
		var matter domain.BillingMatter
		if err := rows.Scan(
			&matter.ID,
			&matter.CMNumber,
			&matter.Name,
			&matter.ClientName,
			&matter.AttorneyInCharge,
			&matter.SCA,
			&matter.ProjectID,
			&matter.FeesUSD,
			&matter.BilledUSD,
			&matter.CollectedUSD,
			&matter.BillingCreditUSD,
			&matter.UBTUSD,
			&matter.ARUSD,
			&matter.BillingCreditCNY,
			&matter.UBTCNY,
			&matter.FinanceComment,
			&matter.Remarks,
			&matter.LongStopDate,
			&matter.CreatedAt,
			&matter.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, matter)
	}
	return result, rows.Err()
}

func (r *billingRepository) LinkProject(ctx context.Context, matterID, projectID int64) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE billing_matters SET project_id=$1, updated_at=NOW() WHERE id=$2`,
		projectID, matterID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const milestoneColumns = `id, matter_id, ordinal, title, amount, currency, completed,
               due_date, completion_date, created_at, updated_at`

func (r *billingRepository) ListMilestones(ctx context.Context, matterID int64) ([]domain.FeeMilestone, error) {
	const query = `SELECT ` + milestoneColumns + ` FROM fee_milestones WHERE matter_id=$1 ORDER BY ordinal ASC`
	rows, err := r.pool.Query(ctx, query, matterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FeeMilestone
	for rows.Next() {
		var ms domain.FeeMilestone
		if err := rows.Scan(
			&ms.ID,
			&ms.MatterID,
			&ms.Ordinal,
			&ms.Title,
			&ms.Amount,
			&ms.Currency,
			&ms.Completed,
			&ms.DueDate,
			&ms.CompletionDate,
			&ms.CreatedAt,
			&ms.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ms)
	}
	return result, rows.Err()
}

func (r *billingRepository) CreateMilestone(ctx context.Context, milestone *domain.FeeMilestone) error {
	const query = `
        INSERT INTO fee_milestones (matter_id, ordinal, title, amount, currency, completed, due_date, completion_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		milestone.MatterID,
		milestone.Ordinal,
		milestone.Title,
		milestone.Amount,
		milestone.Currency,
		milestone.Completed,
		milestone.DueDate,
		milestone.CompletionDate,
	).Scan(&milestone.ID, &milestone.CreatedAt, &milestone.UpdatedAt)
}

func (r *billingRepository) UpdateMilestone(ctx context.Context, milestone *domain.FeeMilestone) error {
	const query = `
        UPDATE fee_milestones SET title=$1, amount=$2, currency=$3, completed=$4,
            due_date=$5, completion_date=$6, updated_at=NOW()
        WHERE id=$7 AND matter_id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		milestone.Title,
		milestone.Amount,
		milestone.Currency,
		milestone.Completed,
		milestone.DueDate,
		milestone.CompletionDate,
		milestone.ID,
		milestone.MatterID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Summary aggregates matter financials for the billing dashboard.
func (r *billingRepository) Summary(ctx context.Context) (*domain.BillingSummary, error) {
	const totalsQuery = `
        SELECT COUNT(*),
               COALESCE(SUM(fees_usd),0),
               COALESCE(SUM(billed_usd),0),
               COALESCE(SUM(collected_usd),0),
               COALESCE(SUM(ubt_usd),0),
               COALESCE(SUM(ar_usd),0)
        FROM billing_matters`

	var summary domain.BillingSummary
	if err := r.pool.QueryRow(ctx, totalsQuery).Scan(
		&summary.MatterCount,
		&summary.TotalFeesUSD,
		&summary.TotalBilledUSD,
		&summary.TotalCollectedUSD,
		&summary.TotalUBTUSD,
		&summary.TotalARUSD,
	); err != nil {
		return nil, err
	}

	const attorneyQuery = `
        SELECT attorney_in_charge, COUNT(*),
               COALESCE(SUM(billed_usd),0),
               COALESCE(SUM(collected_usd),0),
               COALESCE(SUM(ubt_usd),0)
        FROM billing_matters
        WHERE attorney_in_charge <> ''
        GROUP BY attorney_in_charge
        ORDER BY SUM(billed_usd) DESC`

	rows, err := r.pool.Query(ctx, attorneyQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rollup domain.AttorneyRollup
		if err := rows.Scan(
			&rollup.AttorneyInCharge,
			&rollup.MatterCount,
			&rollup.TotalBilledUSD,
			&rollup.TotalCollectedUSD,
			&rollup.TotalUBTUSD,
		); err != nil {
			return nil, err
		}
		summary.ByAttorney = append(summary.ByAttorney, rollup)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &summary, nil
}

// MatchProjects ranks staffing projects by trigram similarity to a matter
// name. Relies on the pg_trgm extension installed by migrations.
func (r *billingRepository) MatchProjects(ctx context.Context, matterName string, threshold float64, limit int) ([]domain.ProjectMatch, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `
        SELECT id, name, status, similarity(name, $1) AS sim
        FROM projects
        WHERE similarity(name, $1) >= $2
        ORDER BY sim DESC, name ASC
        LIMIT $3`

	rows, err := r.pool.Query(ctx, query, matterName, threshold, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProjectMatch
	for rows.Next() {
		var match domain.ProjectMatch
		if err := rows.Scan(&match.ProjectID, &match.Name, &match.Status, &match.Similarity); err != nil {
			return nil, err
		}
		result = append(result, match)
	}
	return result, rows.Err()
}
