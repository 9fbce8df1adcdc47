package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"officeBooker/internal/lib/logger/sl"
	"officeBooker/internal/models"
)

// Sender delivers one message to one recipient.
type Sender interface {
	Send(ctx context.Context, recipient, message string) error
}

// Channel binds a Sender to the booking field that addresses it.
type Channel struct {
	Name      string
	Sender    Sender
	Recipient func(b models.Booking) string
}

func EmailChannel(s Sender) Channel {
	return Channel{
		Name:      "email",
		Sender:    s,
		Recipient: func(b models.Booking) string { return b.UserEmail },
	}
}

func SMSChannel(s Sender) Channel {
	return Channel{
		Name:      "sms",
		Sender:    s,
		Recipient: func(b models.Booking) string { return b.UserPhone },
	}
}

type Dispatcher struct {
	log      *slog.Logger
	channels []Channel
}

func NewDispatcher(log *slog.Logger, channels ...Channel) *Dispatcher {
	return &Dispatcher{
		log:      log,
		channels: channels,
	}
}

func ConfirmationMessage(b models.Booking) string {
	return fmt.Sprintf("You have booked office %d from %s to %s",
		b.OfficeNumber,
		b.StartTime.Format(models.TimeLayout),
		b.EndTime.Format(models.TimeLayout),
	)
}

// SendBookingConfirmation sends the same message through every channel in
// registration order. A failing channel is logged and does not stop the
// others; the joined failures are returned for callers that care.
func (d *Dispatcher) SendBookingConfirmation(ctx context.Context, b models.Booking) error {
	const op = "notification.SendBookingConfirmation"

	log := d.log.With(slog.String("op", op), slog.Int("office_number", b.OfficeNumber))

	message := ConfirmationMessage(b)

	var failures []error
	for _, ch := range d.channels {
		if err := ch.Sender.Send(ctx, ch.Recipient(b), message); err != nil {
			log.Error("failed to send booking confirmation", slog.String("channel", ch.Name), sl.Err(err))
			failures = append(failures, fmt.Errorf("%s: %w", ch.Name, err))
			continue
		}

		log.Debug("booking confirmation sent", slog.String("channel", ch.Name))
	}

	return errors.Join(failures...)
}
