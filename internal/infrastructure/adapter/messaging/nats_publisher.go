package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	coreport "github.com/avesta-dev/backend-template/internal/domain/port/core"
	"github.com/avesta-dev/backend-template/internal/domain/port/messaging"
	"github.com/avesta-dev/backend-template/internal/infrastructure/config"
	"github.com/nats-io/nats.go"
)

// NatsPublisher implements messaging.EventPublisher on top of a NATS
// connection. Events are JSON encoded and published on subject.key.
type NatsPublisher struct {
	conn    *nats.Conn
	subject string
	logger  coreport.Logger
}

// NewNatsPublisher connects to the broker and returns a publisher
func NewNatsPublisher(cfg *config.MessagingConfig, logger coreport.Logger) (*NatsPublisher, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS connection lost", map[string]any{
					"error": err.Error(),
				})
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS connection restored", map[string]any{
				"url": c.ConnectedUrl(),
			})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats at %s: %w", cfg.URL, err)
	}

	logger.Info("Connected to NATS", map[string]any{
		"url":     cfg.URL,
		"subject": cfg.Subject,
	})
	return &NatsPublisher{
		conn:    conn,
		subject: cfg.Subject,
		logger:  logger,
	}, nil
}

// Publish sends the event on subject.key, or the bare subject when key is
// empty
func (p *NatsPublisher) Publish(ctx context.Context, key string, event messaging.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.EventType, err)
	}

	subject := p.subject
	if key != "" {
		subject = fmt.Sprintf("%s.%s", p.subject, key)
	}

	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.EventType, err)
	}

	p.logger.Debug("Published event", map[string]any{
		"subject":    subject,
		"event_type": event.EventType,
	})
	return nil
}

// Close drains the connection, delivering buffered messages first
func (p *NatsPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		return fmt.Errorf("failed to drain nats connection: %w", err)
	}
	return nil
}
