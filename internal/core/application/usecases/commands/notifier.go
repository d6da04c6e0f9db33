package commands

import (
	"context"
	"errors"
	"log/slog"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/ports"
	"routehub/internal/pkg/errs"
)

// notifier resolves push recipients inside the caller's unit of work and
// dispatches once the transaction has committed, so nothing after commit
// touches the store. Lookup failures are logged and never reach the caller.
type notifier struct {
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

func newNotifier(dispatcher ports.NotificationDispatcher, logger *slog.Logger) notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return notifier{dispatcher: dispatcher, logger: logger}
}

// userAddress returns the push address of userID, or "" when there is none.
func (n notifier) userAddress(ctx context.Context, users ports.UserRepository, userID kernel.UUID) string {
	if n.dispatcher == nil {
		return ""
	}
	recipient, err := users.Get(ctx, userID)
	if err != nil {
		n.logger.WarnContext(ctx, "Notification recipient lookup failed", "user_id", userID.String(), "error", err)
		return ""
	}
	return recipient.PushAddress()
}

// firstAgentAddress returns the push address of the oldest delivery agent
// that registered one.
func (n notifier) firstAgentAddress(ctx context.Context, users ports.UserRepository) string {
	if n.dispatcher == nil {
		return ""
	}
	agent, err := users.GetFirstDeliveryAgentWithPushAddress(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		n.logger.DebugContext(ctx, "No delivery agent with a push address")
		return ""
	}
	if err != nil {
		n.logger.WarnContext(ctx, "Delivery agent lookup failed", "error", err)
		return ""
	}
	return agent.PushAddress()
}

func (n notifier) send(ctx context.Context, address, title, body string) {
	if address == "" || n.dispatcher == nil {
		return
	}
	n.dispatcher.Dispatch(ctx, ports.PushNotification{
		Title:   title,
		Body:    body,
		Address: address,
	})
}
