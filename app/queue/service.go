package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/fedorhub/ms-go-notifications/app/handler"
	"github.com/fedorhub/ms-go-notifications/app/lock"
	"github.com/fedorhub/ms-go-notifications/app/metrics"
)

// Service owns the broker connection and channel, binds each queue to its
// handler, and runs all consumers until shutdown.
type Service struct {
	conn      *amqp091.Connection
	channel   *amqp091.Channel
	consumers []*Consumer
	locker    lock.Locker
	metrics   *metrics.Metrics
	timeout   time.Duration
	log       *logrus.Logger
}

// NewService dials the broker and opens the shared channel.
func NewService(url string, locker lock.Locker, m *metrics.Metrics, timeout time.Duration, log *logrus.Logger) (*Service, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	return &Service{
		conn:    conn,
		channel: ch,
		locker:  locker,
		metrics: m,
		timeout: timeout,
		log:     log,
	}, nil
}

// Bind subscribes a handler to a durable queue. Call before Run.
func (s *Service) Bind(queueName string, h handler.Handler) {
	s.consumers = append(s.consumers, NewConsumer(s.channel, queueName, h, s.locker, s.metrics, s.timeout, s.log))
}

// Run starts every bound consumer and blocks until all of them stop. The
// first consumer error, if any, is returned.
func (s *Service) Run(ctx context.Context) error {
	errCh := make(chan error, len(s.consumers))

	var wg sync.WaitGroup
	for _, c := range s.consumers {
		wg.Add(1)
		go func(c *Consumer) {
			defer wg.Done()
			if err := c.Run(ctx); err != nil {
				errCh <- err
			}
		}(c)
	}
	wg.Wait()
	close(errCh)
	return <-errCh
}

// Close tears down the channel and connection, stopping all consumers.
func (s *Service) Close() {
	if s.channel != nil {
		_ = s.channel.Close()
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}
