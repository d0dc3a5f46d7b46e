package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/docutrack/internal/config"
	"github.com/iliyamo/docutrack/internal/queue"
)

// AMQPPublisher publishes certificate events to a durable RabbitMQ queue.
// Each Publish dials its own connection.
type AMQPPublisher struct {
	url   string
	queue string
}

// NewEventPublisher returns an AMQP publisher when the queue is enabled and
// a no-op publisher otherwise.
func NewEventPublisher(cfg config.QueueConfig) EventPublisher {
	if !cfg.Enabled {
		return NoopPublisher{}
	}
	return &AMQPPublisher{url: cfg.URL, queue: cfg.Queue}
}

// Publish sends ev as a persistent JSON message via the default exchange.
func (p *AMQPPublisher) Publish(ctx context.Context, ev queue.CertificateEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(3 * time.Second)})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Event,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, queue.CertificateEvent) error { return nil }
