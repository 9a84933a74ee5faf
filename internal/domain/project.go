package domain

import "time"

// ProjectStatus enumerates lifecycle states for deal projects.
type ProjectStatus string

const (
	ProjectStatusActive     ProjectStatus = "Active"
	ProjectStatusSlowdown   ProjectStatus = "Slow-down"
	ProjectStatusSuspended  ProjectStatus = "Suspended"
	ProjectStatusTerminated ProjectStatus = "Terminated"
	ProjectStatusClosed     ProjectStatus = "Closed"
)

// ValidProjectStatus reports whether s is a known lifecycle state.
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectStatusActive, ProjectStatusSlowdown, ProjectStatusSuspended,
		ProjectStatusTerminated, ProjectStatusClosed:
		return true
	}
	return false
}

// Project is the aggregate for a deal the firm staffs.
// FilingDate and ListingDate are the regulatory milestones the
// staffing heatmap buckets over.
type Project struct {
	ID          int64
	Name        string
	Category    string
	Status      ProjectStatus
	Side        string
	Sector      string
	Priority    string
	Notes       string
	FilingDate  *time.Time
	ListingDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InStaffingScope reports whether the project still generates staffing load.
func (p *Project) InStaffingScope() bool {
	return p.Status == ProjectStatusActive || p.Status == ProjectStatusSlowdown
}
