package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/fedorhub/ms-go-notifications/app/event"
	"github.com/fedorhub/ms-go-notifications/app/handler"
	"github.com/fedorhub/ms-go-notifications/app/lock"
	"github.com/fedorhub/ms-go-notifications/app/metrics"
)

// How long a delivery's dedup key stays claimed. Long enough to outlive the
// handler timeout.
const dedupTTL = 2 * time.Minute

// Consumer binds one durable queue to its handler. Each delivery is decoded
// once, dispatched under a timeout, and then acknowledged or rejected.
// Rejection never requeues: losing a poison message beats redelivering it
// forever.
type Consumer struct {
	channel *amqp091.Channel
	queue   string
	handler handler.Handler
	locker  lock.Locker
	metrics *metrics.Metrics
	timeout time.Duration
	log     *logrus.Entry
}

func NewConsumer(ch *amqp091.Channel, queueName string, h handler.Handler, locker lock.Locker, m *metrics.Metrics, timeout time.Duration, log *logrus.Logger) *Consumer {
	return &Consumer{
		channel: ch,
		queue:   queueName,
		handler: h,
		locker:  locker,
		metrics: m,
		timeout: timeout,
		log:     log.WithField("queue", queueName),
	}
}

// Run declares the queue and consumes deliveries until the context is
// cancelled or the channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	if _, err := c.channel.QueueDeclare(
		c.queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("declare queue %s: %w", c.queue, err)
	}

	deliveries, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // autoAck: we ack/reject per outcome
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume queue %s: %w", c.queue, err)
	}

	c.log.Info("consumer started")
	for {
		select {
		case <-ctx.Done():
			c.log.Info("consumer shutting down")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				c.log.Warn("delivery channel closed")
				return nil
			}
			c.process(ctx, d)
		}
	}
}

// process handles one delivery end to end and settles it with the broker.
func (c *Consumer) process(ctx context.Context, d amqp091.Delivery) {
	if c.locker != nil && d.MessageId != "" {
		key := "notifications:event:" + d.MessageId
		err := c.locker.Acquire(ctx, key, dedupTTL)
		switch {
		case err == nil:
			defer func() { _ = c.locker.Release(context.Background(), key) }()
		case errors.Is(err, lock.ErrNotAcquired):
			// Another worker already owns this delivery.
			c.log.WithField("message_id", d.MessageId).Info("duplicate delivery acknowledged")
			c.ack(d, "duplicate")
			return
		default:
			// With the lock backend down, a duplicate email is the lesser
			// evil compared to dropping the event.
			c.log.WithError(err).Warn("dedup lock unavailable, processing anyway")
		}
	}

	ev, err := event.Decode(d.Body)
	if err != nil {
		c.log.WithError(err).Error("rejecting undecodable message")
		c.reject(d)
		return
	}

	if err := c.dispatch(ctx, ev); err != nil {
		c.log.WithError(err).WithField("type", ev.EventType()).Error("rejecting message after handler failure")
		c.reject(d)
		return
	}

	c.ack(d, "acked")
}

// dispatch invokes the handler under the per-message timeout. A panicking
// handler counts as a failure, not a crashed consumer.
func (c *Consumer) dispatch(ctx context.Context, ev event.Event) (err error) {
	hctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	return c.handler.Handle(hctx, ev)
}

func (c *Consumer) ack(d amqp091.Delivery, outcome string) {
	if err := d.Ack(false); err != nil {
		c.log.WithError(err).Error("ack failed")
		return
	}
	c.metrics.EventsConsumed.WithLabelValues(c.queue, outcome).Inc()
}

// reject drops the delivery without requeue.
func (c *Consumer) reject(d amqp091.Delivery) {
	if err := d.Nack(false, false); err != nil {
		c.log.WithError(err).Error("nack failed")
		return
	}
	c.metrics.EventsConsumed.WithLabelValues(c.queue, "rejected").Inc()
}
