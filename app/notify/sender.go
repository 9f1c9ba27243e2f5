package notify

import (
	"context"
	"errors"
	"log/slog"
)

var ErrNotConfigured = errors.New("notification delivery is not configured")

// Sender delivers a formatted message. A nil error means the message was
// accepted by the remote side.
type Sender interface {
	Send(ctx context.Context, message string) error
}

// Noop is used when delivery credentials are missing. Every send reports
// ErrNotConfigured.
type Noop struct{}

var _ Sender = Noop{}

func (Noop) Send(ctx context.Context, message string) error {
	return ErrNotConfigured
}

// NewSender returns a Telegram sender, or Noop when token or chat id is empty
func NewSender(token, chatID string) Sender {
	if token == "" || chatID == "" {
		slog.Warn("Telegram credentials missing, notifications disabled")
		return Noop{}
	}
	return NewTelegram(token, chatID)
}
