package ports

import "context"

// EmailSender mails a verification code.
type EmailSender interface {
	SendCode(ctx context.Context, to, displayName, purposeLabel, code string) error
}
