package domain

import "time"

// ActivityLog is a single audit-trail entry.
type ActivityLog struct {
	ID         int64
	UserID     *int64
	Action     string
	EntityType string
	EntityID   *int64
	Detail     string
	CreatedAt  time.Time
}
