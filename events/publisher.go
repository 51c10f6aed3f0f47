// Package events publishes order lifecycle events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"foodieride-api/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RoutingKeyOrderAccepted is used on the topic exchange for acceptances.
const RoutingKeyOrderAccepted = "order.accepted"

type OrderAccepted struct {
	OrderID    uint      `json:"order_id"`
	CustomerID uint      `json:"customer_id"`
	RiderID    uint      `json:"rider_id"`
	Message    string    `json:"message"`
	AcceptedAt time.Time `json:"accepted_at"`
}

type Publisher interface {
	PublishOrderAccepted(ctx context.Context, msg OrderAccepted) error
	Close() error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishOrderAccepted(context.Context, OrderAccepted) error { return nil }
func (Nop) Close() error                                              { return nil }

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	exchange string
}

// DialRabbit connects to the broker and declares the durable topic exchange.
func DialRabbit(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	p, err := newRabbitPublisher(ch, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	logger.Get().Info().Str("exchange", exchange).Msg("connected to RabbitMQ")
	return p, nil
}

func newRabbitPublisher(ch channel, exchange string) (*RabbitPublisher, error) {
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &RabbitPublisher{ch: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) PublishOrderAccepted(ctx context.Context, msg OrderAccepted) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal order accepted event: %w", err)
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, RoutingKeyOrderAccepted, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    msg.AcceptedAt,
		Body:         body,
	}); err != nil {
		return fmt.Errorf("publish order accepted event: %w", err)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	if p.ch != nil {
		firstErr = p.ch.Close()
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.ch, p.conn = nil, nil
	return firstErr
}
