package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/crm/backend/internal/domain/shared"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// RabbitMQPublisher implements shared.EventPublisher on an AMQP channel.
// Queues are declared durable on first use; messages are published
// persistent so events survive a broker restart.
type RabbitMQPublisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *zap.Logger

	mu       sync.Mutex
	declared map[string]bool
}

// PublisherOption configures the publisher
type PublisherOption func(*RabbitMQPublisher)

// WithPublisherLogger sets the logger for publish operations
func WithPublisherLogger(logger *zap.Logger) PublisherOption {
	return func(p *RabbitMQPublisher) {
		p.logger = logger
	}
}

// NewRabbitMQPublisher dials the broker and opens a channel.
func NewRabbitMQPublisher(url string, opts ...PublisherOption) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	p := &RabbitMQPublisher{
		conn:     conn,
		ch:       ch,
		logger:   zap.NewNop(),
		declared: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Publish sends the event to the named queue as a persistent JSON message.
func (p *RabbitMQPublisher) Publish(ctx context.Context, queue string, event shared.DomainEvent) error {
	if err := p.ensureQueue(queue); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key = queue name
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queue, err)
	}

	p.logger.Debug("event published",
		zap.String("queue", queue),
		zap.String("event_type", event.EventType),
	)
	return nil
}

// ensureQueue declares the durable queue once per process.
func (p *RabbitMQPublisher) ensureQueue(queue string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.declared[queue] {
		return nil
	}

	_, err := p.ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	p.declared[queue] = true
	return nil
}

// Close releases the channel and connection.
func (p *RabbitMQPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.logger.Warn("failed to close rabbitmq channel", zap.Error(err))
	}
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("failed to close rabbitmq connection: %w", err)
	}
	return nil
}

// Ensure RabbitMQPublisher implements shared.EventPublisher
var _ shared.EventPublisher = (*RabbitMQPublisher)(nil)
