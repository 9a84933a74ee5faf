package dto

import "time"

// StaffRequest payload for create/update.
type StaffRequest struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
}

// StaffResponse shape returned to clients.
type StaffResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Position   string    `json:"position"`
	Department string    `json:"department,omitempty"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AssignmentRequest payload for creating an assignment.
type AssignmentRequest struct {
	ProjectID    int64      `json:"project_id"`
	StaffID      int64      `json:"staff_id"`
	Jurisdiction string     `json:"jurisdiction"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

// AssignmentResponse shape returned to clients.
type AssignmentResponse struct {
	ID           int64      `json:"id"`
	ProjectID    int64      `json:"project_id"`
	StaffID      int64      `json:"staff_id"`
	Jurisdiction string     `json:"jurisdiction,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
