package ports

import "context"

// PushNotification is a message for one device address.
type PushNotification struct {
	Title   string
	Body    string
	Address string
}

// NotificationDispatcher hands notifications off without blocking the caller.
// Delivery is best effort and failures are only logged.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notification PushNotification)
}

// PushSender delivers a single notification to the transport.
type PushSender interface {
	Send(ctx context.Context, notification PushNotification) error
}
