package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStressCreated EventType = "stress_created"
	EventGripeAdded    EventType = "gripe_added"
	EventStressDeleted EventType = "stress_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StressCreatedPayload payload.
type StressCreatedPayload struct {
	StressID string `json:"stress_id"`
	Name     string `json:"name"`
}

// GripeAddedPayload payload.
type GripeAddedPayload struct {
	StressID    string `json:"stress_id"`
	StressName  string `json:"stress_name"`
	GripeNumber int    `json:"gripe_number"`
	TextPreview string `json:"text_preview"`
}

// StressDeletedPayload payload.
type StressDeletedPayload struct {
	Name       string `json:"name"`
	GripeCount int    `json:"gripe_count"`
}
