// Package amqp publishes push notifications to RabbitMQ for the device
// gateway to deliver.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"routehub/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultQueue = "routehub.push"

type pushMessage struct {
	Address string    `json:"address"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

// PushPublisher implements ports.PushSender. It keeps one connection and one
// channel; the channel is not safe for concurrent publishing, so Send
// serializes on mu.
type PushPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	now   func() time.Time

	mu sync.Mutex
}

func NewPushPublisher(url, queue string) (*PushPublisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// durable, not auto-deleted, not exclusive
	if _, err = ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	return &PushPublisher{
		conn:  conn,
		ch:    ch,
		queue: queue,
		now:   time.Now,
	}, nil
}

func (p *PushPublisher) Send(ctx context.Context, n ports.PushNotification) error {
	publishing, err := encode(n, p.now())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, publishing); err != nil {
		return fmt.Errorf("publish push: %w", err)
	}
	return nil
}

func (p *PushPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	chErr := p.ch.Close()
	connErr := p.conn.Close()
	if chErr != nil {
		return chErr
	}
	return connErr
}

func encode(n ports.PushNotification, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(pushMessage{
		Address: n.Address,
		Title:   n.Title,
		Body:    n.Body,
		SentAt:  now.UTC(),
	})
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode push: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}
