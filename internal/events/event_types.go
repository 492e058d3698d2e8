package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDepartmentCreated EventType = "department_created"
	EventDepartmentUpdated EventType = "department_updated"
	EventDepartmentDeleted EventType = "department_deleted"
)

// Event represents a change made through the department operations.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	DepartmentID int64       `json:"department_id"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current UTC time.
func NewEvent(eventType EventType, departmentID int64, payload interface{}) Event {
	return Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		DepartmentID: departmentID,
		Timestamp:    time.Now().UTC(),
		Payload:      payload,
	}
}

// DepartmentCreatedPayload payload.
type DepartmentCreatedPayload struct {
	Name string `json:"name"`
}

// DepartmentUpdatedPayload payload.
type DepartmentUpdatedPayload struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}
