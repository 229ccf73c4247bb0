// Package rabbitmq publishes campaign lifecycle events to a topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Event is the envelope published for every lifecycle change.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// Publisher sends events to a durable topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *slog.Logger

	mu sync.Mutex
}

// NewPublisher dials the broker and declares the exchange.
func NewPublisher(logger *slog.Logger, amqpURL, exchange string) (*Publisher, error) {
	cleanURL, err := sanitizeURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp.DialConfig(cleanURL, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}

	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		log:      logger.With("adapter", "rabbitmq"),
	}, nil
}

// Publish sends data under routingKey. amqp channels are not safe for
// concurrent publishing, so calls are serialized.
func (p *Publisher) Publish(ctx context.Context, routingKey string, data any) error {
	payload, err := json.Marshal(Event{Type: routingKey, OccurredAt: time.Now().UTC(), Data: data})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", routingKey, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         payload,
	}); err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	p.log.DebugContext(ctx, "event published",
		slog.String("exchange", p.exchange),
		slog.String("routing_key", routingKey),
	)
	return nil
}

// Close releases channel and connection resources.
func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// NoopPublisher is used when no broker is configured. Events are only logged.
type NoopPublisher struct {
	log *slog.Logger
}

func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	return &NoopPublisher{log: logger.With("adapter", "events-noop")}
}

func (p *NoopPublisher) Publish(ctx context.Context, routingKey string, _ any) error {
	p.log.DebugContext(ctx, "event dropped, no broker configured", slog.String("routing_key", routingKey))
	return nil
}

func (p *NoopPublisher) Close() {}

func sanitizeURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	parsed, err := url.Parse(clean)
	if err != nil {
		return "", fmt.Errorf("parse amqp url: %w", err)
	}
	if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}
