package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPSender publishes confirmations to a topic exchange for downstream consumers.
type AMQPSender struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	pub        publisher
	exchange   string
	routingKey string
}

type ConfirmationEvent struct {
	Recipient string    `json:"recipient"`
	Message   string    `json:"message"`
	SentAt    time.Time `json:"sent_at"`
}

func NewAMQPSender(url, exchange, routingKey string) (*AMQPSender, error) {
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

	return &AMQPSender{
		conn:       conn,
		ch:         ch,
		pub:        ch,
		exchange:   exchange,
		routingKey: routingKey,
	}, nil
}

func (s *AMQPSender) Send(ctx context.Context, recipient, message string) error {
	body, err := json.Marshal(ConfirmationEvent{
		Recipient: recipient,
		Message:   message,
		SentAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode confirmation: %w", err)
	}

	err = s.pub.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish confirmation: %w", err)
	}

	return nil
}

func (s *AMQPSender) Close() error {
	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
