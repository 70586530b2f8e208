package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/infrastructure/config"
)

// Publisher enqueues import jobs on a durable RabbitMQ queue.
type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	queue   string
	logger  *zap.Logger
}

// NewPublisher connects to RabbitMQ and declares the import queue.
func NewPublisher(cfg config.QueueConfig, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// Durable queue so pending imports survive a broker restart.
	if _, err := channel.QueueDeclare(cfg.ImportQueue, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", cfg.ImportQueue, err)
	}

	return &Publisher{
		conn:    conn,
		channel: channel,
		queue:   cfg.ImportQueue,
		logger:  logger,
	}, nil
}

// PublishImport enqueues one import job. The caller gets an error only
// when the broker refuses the message; execution is asynchronous.
func (p *Publisher) PublishImport(ctx context.Context, job ImportJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal import job: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish import job: %w", err)
	}

	p.logger.Info("Import job enqueued",
		zap.String("user_id", job.UserID.String()),
		zap.String("file_ref", job.FileRef))
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
