package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/infrastructure/config"
)

// JobHandler processes one import job. Returning an error rejects the
// delivery without requeueing it; imports are idempotent, so a retry
// would hit the same failure.
type JobHandler func(ctx context.Context, job ImportJob) error

// Consumer pulls import jobs from RabbitMQ and feeds them to a handler
// one at a time.
type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	queue   string
	logger  *zap.Logger
}

// NewConsumer connects to RabbitMQ, declares the import queue and sets
// the prefetch window.
func NewConsumer(cfg config.QueueConfig, logger *zap.Logger) (*Consumer, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := channel.QueueDeclare(cfg.ImportQueue, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", cfg.ImportQueue, err)
	}

	prefetch := cfg.PrefetchCount
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := channel.Qos(prefetch, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	return &Consumer{
		conn:    conn,
		channel: channel,
		queue:   cfg.ImportQueue,
		logger:  logger,
	}, nil
}

// Run consumes deliveries until the context is canceled or the channel
// closes. Deliveries are acked manually after the handler returns.
func (c *Consumer) Run(ctx context.Context, handler JobHandler) error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.logger.Info("Waiting for import jobs", zap.String("queue", c.queue))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			c.handle(ctx, delivery, handler)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, delivery amqp091.Delivery, handler JobHandler) {
	var job ImportJob
	if err := json.Unmarshal(delivery.Body, &job); err != nil {
		c.logger.Error("Dropping undecodable job", zap.Error(err))
		// Requeueing a malformed payload would loop forever.
		if err := delivery.Nack(false, false); err != nil {
			c.logger.Error("Failed to nack delivery", zap.Error(err))
		}
		return
	}

	if err := handler(ctx, job); err != nil {
		c.logger.Error("Import job failed",
			zap.String("user_id", job.UserID.String()),
			zap.String("file_ref", job.FileRef),
			zap.Error(err))
		if err := delivery.Nack(false, false); err != nil {
			c.logger.Error("Failed to nack delivery", zap.Error(err))
		}
		return
	}

	if err := delivery.Ack(false); err != nil {
		c.logger.Error("Failed to ack delivery", zap.Error(err))
	}
}

// Close releases the channel and connection.
func (c *Consumer) Close() error {
	if err := c.channel.Close(); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}
