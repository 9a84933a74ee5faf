package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spec-kit/staffing-tracker/internal/export"
	"github.com/spec-kit/staffing-tracker/internal/repository"
	apperrors "github.com/spec-kit/staffing-tracker/pkg/util"
)

// ReportService renders Excel exports of tracker data.
type ReportService struct {
	projects    repository.ProjectRepository
	staff       repository.StaffRepository
	assignments repository.AssignmentRepository
	billing     repository.BillingRepository
}

// ReportDependencies bundles what reports read.
type ReportDependencies struct {
	ProjectRepo    repository.ProjectRepository
	StaffRepo      repository.StaffRepository
	AssignmentRepo repository.AssignmentRepository
	BillingRepo    repository.BillingRepository
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		projects:    deps.ProjectRepo,
		staff:       deps.StaffRepo,
		assignments: deps.AssignmentRepo,
		billing:     deps.BillingRepo,
	}
}

// StaffingWorkbook exports projects, roster and assignments as one
// workbook with a sheet per entity.
func (s *ReportService) StaffingWorkbook(ctx context.Context) (*bytes.Buffer, string, error) {
	projects, err := s.projects.List(ctx, repository.ProjectFilter{Limit: 10000})
	if err != nil {
		return nil, "", apperrors.MapError(err)
	}
	staff, err := s.staff.List(ctx, repository.StaffFilter{Limit: 10000})
	if err != nil {
		return nil, "", apperrors.MapError(err)
	}
	assignments, err := s.assignments.List(ctx, repository.AssignmentFilter{Limit: 10000})
	if err != nil {
		return nil, "", apperrors.MapError(err)
	}

	staffNames := make(map[int64]string, len(staff))
	for _, m := range staff {
		staffNames[m.ID] = m.Name
	}
	projectNames := make(map[int64]string, len(projects))
	for _, p := range projects {
		projectNames[p.ID] = p.Name
	}

	projectRows := make([][]string, 0, len(projects))
	for _, p := range projects {
		projectRows = append(projectRows, []string{
			p.Name, p.Category, string(p.Status), p.Side, p.Sector,
			formatDate(p.FilingDate), formatDate(p.ListingDate),
		})
	}
	staffRows := make([][]string, 0, len(staff))
	for _, m := range staff {
		staffRows = append(staffRows, []string{m.Name, m.Position, m.Department, string(m.Status)})
	}
	assignmentRows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		assignmentRows = append(assignmentRows, []string{
			projectNames[a.ProjectID], staffNames[a.StaffID], a.Jurisdiction,
			formatDate(a.StartDate), formatDate(a.EndDate),
		})
	}

	buf, err := export.BuildWorkbook([]export.SheetSpec{
		{
			Title:  "Projects",
			Header: []string{"Project", "Category", "Status", "Side", "Sector", "Filing Date", "Listing Date"},
			Rows:   projectRows,
		},
		{
			Title:  "Staff",
			Header: []string{"Name", "Position", "Department", "Status"},
			Rows:   staffRows,
		},
		{
			Title:  "Assignments",
			Header: []string{"Project", "Staff", "Jurisdiction", "Start", "End"},
			Rows:   assignmentRows,
		},
	})
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}
	return buf, reportFilename("staffing"), nil
}

// BillingWorkbook exports matters and their milestones.
func (s *ReportService) BillingWorkbook(ctx context.Context) (*bytes.Buffer, string, error) {
	matters, err := s.billing.ListMatters(ctx, repository.MatterFilter{Limit: 10000})
	if err != nil {
		return nil, "", apperrors.MapError(err)
	}

	matterRows := make([][]string, 0, len(matters))
	milestoneRows := make([][]string, 0, len(matters))
	for _, m := range matters {
		matterRows = append(matterRows, []string{
			m.CMNumber, m.Name, m.ClientName, m.AttorneyInCharge, m.SCA,
			formatMoney(m.FeesUSD), formatMoney(m.BilledUSD), formatMoney(m.CollectedUSD),
			formatMoney(m.UBTUSD), formatMoney(m.ARUSD), m.FinanceComment,
		})

		milestones, err := s.billing.ListMilestones(ctx, m.ID)
		if err != nil {
			return nil, "", apperrors.MapError(err)
		}
		for _, ms := range milestones {
			milestoneRows = append(milestoneRows, []string{
				m.CMNumber, ms.Ordinal, ms.Title, formatMoney(ms.Amount), ms.Currency,
				strconv.FormatBool(ms.Completed), formatDate(ms.DueDate), formatDate(ms.CompletionDate),
			})
		}
	}

	buf, err := export.BuildWorkbook([]export.SheetSpec{
		{
			Title: "Matters",
			Header: []string{"C/M No", "Matter", "Client", "Attorney", "SCA",
				"Fees USD", "Billed USD", "Collected USD", "UBT USD", "A/R USD", "Finance Comment"},
			Rows: matterRows,
		},
		{
			Title:  "Milestones",
			Header: []string{"C/M No", "Ordinal", "Title", "Amount", "Currency", "Completed", "Due", "Completed On"},
			Rows:   milestoneRows,
		},
	})
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}
	return buf, reportFilename("billing"), nil
}

func reportFilename(kind string) string {
	return fmt.Sprintf("%s_%s.xlsx", kind, time.Now().Format("2006-01-02"))
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
