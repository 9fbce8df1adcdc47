package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	err      error
	exchange string
	key      string
	msgs     []amqp.Publishing
}

func (p *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	p.exchange = exchange
	p.key = key
	p.msgs = append(p.msgs, msg)
	return p.err
}

func TestAMQPSenderPublishesJSON(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	s := &AMQPSender{pub: pub, exchange: "booking.exchange", routingKey: "booking.created"}

	require.NoError(t, s.Send(context.Background(), "alice@example.com", "You have booked office 1"))

	assert.Equal(t, "booking.exchange", pub.exchange)
	assert.Equal(t, "booking.created", pub.key)
	require.Len(t, pub.msgs, 1)

	msg := pub.msgs[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.NotEmpty(t, msg.MessageId)

	var event ConfirmationEvent
	require.NoError(t, json.Unmarshal(msg.Body, &event))
	assert.Equal(t, "alice@example.com", event.Recipient)
	assert.Equal(t, "You have booked office 1", event.Message)
	assert.False(t, event.SentAt.IsZero())
}

func TestAMQPSenderPublishFailure(t *testing.T) {
	t.Parallel()

	errClosed := errors.New("channel closed")
	s := &AMQPSender{pub: &fakePublisher{err: errClosed}}

	err := s.Send(context.Background(), "alice@example.com", "msg")

	assert.ErrorIs(t, err, errClosed)
	assert.NoError(t, s.Close())
}
