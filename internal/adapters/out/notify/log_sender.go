package notify

import (
	"context"
	"log/slog"

	"routehub/internal/core/ports"
)

// LogSender writes notifications to the log instead of a transport. It is
// used when no broker is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return LogSender{logger: logger.With("component", "push_log_sender")}
}

func (s LogSender) Send(ctx context.Context, n ports.PushNotification) error {
	s.logger.InfoContext(ctx, "Push notification", "address", n.Address, "title", n.Title, "body", n.Body)
	return nil
}
