package notification

import (
	"context"
	"log/slog"
)

// EmailSender writes the outgoing email to the log.
type EmailSender struct {
	log *slog.Logger
}

func NewEmailSender(log *slog.Logger) *EmailSender {
	return &EmailSender{log: log}
}

func (s *EmailSender) Send(_ context.Context, recipient, message string) error {
	s.log.Info("sending email", slog.String("recipient", recipient), slog.String("message", message))
	return nil
}

// SMSSender writes the outgoing text message to the log.
type SMSSender struct {
	log *slog.Logger
}

func NewSMSSender(log *slog.Logger) *SMSSender {
	return &SMSSender{log: log}
}

func (s *SMSSender) Send(_ context.Context, recipient, message string) error {
	s.log.Info("sending sms", slog.String("recipient", recipient), slog.String("message", message))
	return nil
}
