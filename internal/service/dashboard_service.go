package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/staffing-tracker/internal/domain"
	"github.com/spec-kit/staffing-tracker/internal/heatmap"
	"github.com/spec-kit/staffing-tracker/internal/observability"
	"github.com/spec-kit/staffing-tracker/internal/repository"
	apperrors "github.com/spec-kit/staffing-tracker/pkg/util"
)

const (
	// Bounds on the heatmap range, in days.
	HeatmapDaysDefault = 30
	HeatmapDaysMin     = 1
	HeatmapDaysMax     = 365

	summaryCacheKey = "dashboard:summary"
)

// DashboardSummary aggregates tracker-wide counts for the landing page.
type DashboardSummary struct {
	ProjectsByStatus map[domain.ProjectStatus]int64 `json:"projectsByStatus"`
	StaffByStatus    map[domain.StaffStatus]int64   `json:"staffByStatus"`
	AssignmentCount  int64                          `json:"assignmentCount"`
	GeneratedAt      time.Time                      `json:"generatedAt"`
}

// DashboardDependencies bundles what the dashboard reads.
type DashboardDependencies struct {
	HeatmapRepo    repository.HeatmapRepository
	ProjectRepo    repository.ProjectRepository
	StaffRepo      repository.StaffRepository
	AssignmentRepo repository.AssignmentRepository
	Cache          *redis.Client
	Metrics        *observability.Metrics
	Logger         *zap.Logger
}

// DashboardService computes the staffing heatmap and summary counts.
type DashboardService struct {
	heatmaps    repository.HeatmapRepository
	projects    repository.ProjectRepository
	staff       repository.StaffRepository
	assignments repository.AssignmentRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	loc         *time.Location
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// NewDashboardService constructs the service. loc fixes the calendar used
// for heatmap day boundaries.
func NewDashboardService(deps DashboardDependencies, loc *time.Location, cacheTTL time.Duration) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		heatmaps:    deps.HeatmapRepo,
		projects:    deps.ProjectRepo,
		staff:       deps.StaffRepo,
		assignments: deps.AssignmentRepo,
		cache:       deps.Cache,
		cacheTTL:    cacheTTL,
		loc:         loc,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
	}
}

// StaffingHeatmap builds the heatmap for [today, today+days]. A zero days
// means the caller omitted the parameter and gets the default window.
// Validation happens before any data access; the two reads then run
// concurrently and either failure fails the whole request.
func (s *DashboardService) StaffingHeatmap(ctx context.Context, days int, milestoneType string) ([]heatmap.Row, error) {
	if days == 0 {
		days = HeatmapDaysDefault
	}
	if days < HeatmapDaysMin || days > HeatmapDaysMax {
		return nil, apperrors.NewValidationError("days out of range", map[string]any{
			"days": days, "min": HeatmapDaysMin, "max": HeatmapDaysMax,
		})
	}
	mt, ok := heatmap.ParseMilestoneType(milestoneType)
	if !ok {
		return nil, apperrors.NewValidationError("invalid milestoneType", map[string]any{
			"milestoneType": milestoneType,
		})
	}

	now := time.Now().In(s.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 0, days)

	periods, err := heatmap.PlanPeriods(start, end, s.loc)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	var (
		roster []heatmap.RosterEntry
		events []heatmap.Event
	)
	rangeEnd := periods[len(periods)-1].End
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = s.heatmaps.ActiveRoster(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.heatmaps.MilestoneEvents(gctx, start, rangeEnd, mt)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.metrics.RecordHeatmapBuild()
	return heatmap.Build(periods, roster, events, mt), nil
}

// Summary returns tracker-wide counts, served from redis when fresh.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	if cached := s.cachedSummary(ctx); cached != nil {
		return cached, nil
	}

	var summary DashboardSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary.ProjectsByStatus, err = s.projects.CountByStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		summary.StaffByStatus, err = s.staff.CountByStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		summary.AssignmentCount, err = s.assignments.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	summary.GeneratedAt = time.Now().In(s.loc)

	s.storeSummary(ctx, &summary)
	return &summary, nil
}

func (s *DashboardService) cachedSummary(ctx context.Context) *DashboardSummary {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil
	}
	raw, err := s.cache.Get(ctx, summaryCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var summary DashboardSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil
	}
	s.metrics.RecordCacheHit()
	return &summary
}

func (s *DashboardService) storeSummary(ctx context.Context, summary *DashboardSummary) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, summaryCacheKey, raw, s.cacheTTL).Err(); err != nil && s.logger != nil {
		s.logger.Warn("dashboard summary cache write failed", zap.Error(err))
	}
}
