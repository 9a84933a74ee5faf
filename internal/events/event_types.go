package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProjectCreated       EventType = "project_created"
	EventProjectUpdated       EventType = "project_updated"
	EventProjectStatusChanged EventType = "project_status_changed"
	EventProjectDeleted       EventType = "project_deleted"
	EventStaffCreated         EventType = "staff_created"
	EventStaffUpdated         EventType = "staff_updated"
	EventAssignmentCreated    EventType = "assignment_created"
	EventAssignmentDeleted    EventType = "assignment_deleted"
	EventMatterUpdated        EventType = "matter_updated"
	EventMatterLinked         EventType = "matter_linked"
	EventMilestoneCompleted   EventType = "milestone_completed"
)

// Event represents a domain event emitted by services. EntityType/EntityID
// identify the record acted on; ActorUserID is nil for system actions.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	EntityType  string      `json:"entity_type"`
	EntityID    int64       `json:"entity_id"`
	ActorUserID *int64      `json:"actor_user_id,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload,omitempty"`
}

// StatusChangedPayload records an enum transition.
type StatusChangedPayload struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// AssignmentPayload records the linked pair for assignment events.
type AssignmentPayload struct {
	ProjectID    int64  `json:"project_id"`
	StaffID      int64  `json:"staff_id"`
	Jurisdiction string `json:"jurisdiction,omitempty"`
}

// MatterLinkedPayload records a billing matter to project link.
type MatterLinkedPayload struct {
	ProjectID int64 `json:"project_id"`
}
