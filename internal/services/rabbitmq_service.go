package services

import (
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// RequestQueue is the durable queue the platform publishes new requests to
type RequestQueue struct {
	name    string
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewRequestQueue dials the broker and declares the queue with a prefetch of one
func NewRequestQueue(url, name string) (*RequestQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	q := &RequestQueue{name: name, conn: conn}
	if q.channel, err = conn.Channel(); err != nil {
		q.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := q.channel.QueueDeclare(name, true, false, false, false, nil); err != nil {
		q.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	if err := q.channel.Qos(1, 0, false); err != nil {
		q.Close()
		return nil, fmt.Errorf("failed to set prefetch: %w", err)
	}

	logrus.Infof("Request queue %s declared", name)
	return q, nil
}

// Name returns the queue name
func (q *RequestQueue) Name() string {
	return q.name
}

// Deliveries registers a consumer. Every delivery must be acked or nacked.
func (q *RequestQueue) Deliveries(consumer string) (<-chan amqp.Delivery, error) {
	msgs, err := q.channel.Consume(q.name, consumer, false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register consumer %s: %w", consumer, err)
	}
	return msgs, nil
}

// Close releases channel and connection
func (q *RequestQueue) Close() error {
	var errs []error
	if q.channel != nil {
		errs = append(errs, q.channel.Close())
	}
	if q.conn != nil && !q.conn.IsClosed() {
		errs = append(errs, q.conn.Close())
	}
	err := errors.Join(errs...)
	if err != nil {
		logrus.WithError(err).Warn("Error closing request queue")
	}
	return err
}
