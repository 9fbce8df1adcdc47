package notification

import (
	"fmt"
	"log/slog"

	"officeBooker/internal/config"
	"officeBooker/internal/models"
)

func AMQPChannel(s Sender) Channel {
	return Channel{
		Name:      "amqp",
		Sender:    s,
		Recipient: func(b models.Booking) string { return b.UserEmail },
	}
}

// FromConfig builds a dispatcher with the enabled channels. The returned
// close func releases the broker connection, if any.
func FromConfig(log *slog.Logger, cfg config.Notifications) (*Dispatcher, func() error, error) {
	const op = "notification.FromConfig"

	var channels []Channel

	if cfg.Email {
		channels = append(channels, EmailChannel(NewEmailSender(log)))
	}
	if cfg.SMS {
		channels = append(channels, SMSChannel(NewSMSSender(log)))
	}

	closeFn := func() error { return nil }

	if cfg.AMQP.URL != "" {
		sender, err := NewAMQPSender(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}

		channels = append(channels, AMQPChannel(sender))
		closeFn = sender.Close
	}

	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, ch.Name)
	}
	log.Debug("notification channels configured", slog.Any("channels", names))

	return NewDispatcher(log, channels...), closeFn, nil
}
