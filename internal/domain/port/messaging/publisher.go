package messaging

import (
	"context"
	"time"
)

// Event is the envelope published for every domain event
type Event struct {
	EventType string         `json:"event_type"`
	Payload   map[string]any `json:"payload"`
	IssuedAt  time.Time      `json:"issued_at"`
}

// EventPublisher publishes domain events to the message broker. Publishing
// happens after the owning unit of work has committed; a publish failure
// must not undo the transaction.
type EventPublisher interface {
	// Publish sends the event; key selects the broker partition/subject
	Publish(ctx context.Context, key string, event Event) error

	// Close releases the broker connection
	Close() error
}
