package messaging

import (
	"context"

	"github.com/avesta-dev/backend-template/internal/domain/port/messaging"
)

// NoopPublisher discards all events. Used when messaging is disabled.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that does nothing
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// Publish discards the event
func (p *NoopPublisher) Publish(_ context.Context, _ string, _ messaging.Event) error {
	return nil
}

// Close does nothing
func (p *NoopPublisher) Close() error {
	return nil
}
