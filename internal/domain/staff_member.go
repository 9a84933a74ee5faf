package domain

import "time"

// StaffStatus enumerates roster states for fee earners.
type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "active"
	StaffStatusLeaving  StaffStatus = "leaving"
	StaffStatusInactive StaffStatus = "inactive"
)

// StaffMember models a fee earner tracked by the staffing side.
// Staff do not log in; application accounts live on User.
type StaffMember struct {
	ID         int64
	Name       string
	Position   string
	Department string
	Status     StaffStatus
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
