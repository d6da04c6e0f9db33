// Package email delivers verification codes.
package email

import (
	"context"
	"log/slog"
)

// LogSender prints codes to the log. Development only.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return LogSender{logger: logger.With("component", "email_log_sender")}
}

func (s LogSender) SendCode(ctx context.Context, to, displayName, purposeLabel, code string) error {
	s.logger.InfoContext(ctx, "Verification code", "to", to, "name", displayName, "purpose", purposeLabel, "code", code)
	return nil
}
