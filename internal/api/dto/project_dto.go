package dto

import "time"

// ProjectRequest payload for create/update.
type ProjectRequest struct {
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	Side        string     `json:"side"`
	Sector      string     `json:"sector"`
	Priority    string     `json:"priority"`
	Notes       string     `json:"notes"`
	FilingDate  *time.Time `json:"filing_date"`
	ListingDate *time.Time `json:"listing_date"`
}

// ProjectResponse shape returned to clients.
type ProjectResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	Side        string     `json:"side,omitempty"`
	Sector      string     `json:"sector,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	FilingDate  *time.Time `json:"filing_date,omitempty"`
	ListingDate *time.Time `json:"listing_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
