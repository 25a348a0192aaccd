package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher emits booking events on a topic exchange, routed by event kind
// (booking.created, booking.cancelled, ...).
type Publisher struct {
	conn     *amqp.Connection
	ch       publishChannel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *Publisher) Name() string { return "amqp" }

func (p *Publisher) Send(ctx context.Context, n domain.Notification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, string(n.Kind), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(n.Kind),
		Body:         b,
	})
}

func (p *Publisher) Close() error {
	if c, ok := p.ch.(*amqp.Channel); ok && c != nil {
		_ = c.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
