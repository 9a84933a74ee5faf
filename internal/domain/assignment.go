package domain

import "time"

// Assignment links one staff member to one project team.
// The same pair may appear once per jurisdiction.
type Assignment struct {
	ID           int64
	ProjectID    int64
	StaffID      int64
	Jurisdiction string
	StartDate    *time.Time
	EndDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
