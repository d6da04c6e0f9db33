package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"routehub/internal/core/domain/model/user"
	"routehub/internal/core/ports"
	"routehub/internal/pkg/errs"
)

// DefaultChallengeTTL is how long a verification code stays valid.
const DefaultChallengeTTL = 15 * time.Minute

// ChallengeOutcome reports what IssueChallengeCommandHandler did.
type ChallengeOutcome int

const (
	// ChallengeIssued means the code is stored and was handed to the mailer.
	ChallengeIssued ChallengeOutcome = iota + 1

	// ChallengeAlreadyVerified means nothing was issued because the email is
	// already verified.
	ChallengeAlreadyVerified

	// ChallengeIssuedDeliveryFailed means the code is stored and valid but the
	// email could not be sent.
	ChallengeIssuedDeliveryFailed
)

func (o ChallengeOutcome) String() string {
	switch o {
	case ChallengeIssued:
		return "issued"
	case ChallengeAlreadyVerified:
		return "already_verified"
	case ChallengeIssuedDeliveryFailed:
		return "issued_delivery_failed"
	default:
		return "unknown"
	}
}

type IssueChallengeResult struct {
	Outcome     ChallengeOutcome
	ExpiresAt   time.Time
	DeliveryErr error
}

// IssueChallengeCommandHandler stores a new code on the locked user row and
// mails it after commit. A mail failure never undoes the stored challenge.
type IssueChallengeCommandHandler struct {
	uowFactory UserUoWFactory
	mailer     ports.EmailSender
	secrets    SecretGenerator
	clock      ports.Clock
	ttl        time.Duration
	logger     *slog.Logger
}

func NewIssueChallengeCommandHandler(
	uowFactory UserUoWFactory,
	mailer ports.EmailSender,
	secrets SecretGenerator,
	clock ports.Clock,
	ttl time.Duration,
	logger *slog.Logger,
) IssueChallengeCommandHandler {
	if ttl <= 0 {
		ttl = DefaultChallengeTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return IssueChallengeCommandHandler{
		uowFactory: uowFactory,
		mailer:     mailer,
		secrets:    secrets,
		clock:      clock,
		ttl:        ttl,
		logger:     logger.With("component", "issue_challenge"),
	}
}

func (h IssueChallengeCommandHandler) Handle(
	ctx context.Context,
	command IssueChallengeCommand,
) (IssueChallengeResult, error) {
	if err := command.Validate(); err != nil {
		return IssueChallengeResult{}, err
	}

	var (
		recipient *user.User
		challenge user.Challenge
		verified  bool
	)
	err := retryOnContention(ctx, func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		users := uow.UserRepository()
		u, err := users.GetForUpdate(ctx, command.UserID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrActorNotFound
		}
		if err != nil {
			return err
		}

		code, err := h.secrets.Code()
		if err != nil {
			return err
		}

		c, err := user.NewChallenge(code, command.Purpose(), h.clock.Now().Add(h.ttl))
		if err != nil {
			return err
		}

		err = u.IssueChallenge(c)
		if errors.Is(err, user.ErrAlreadyVerified) {
			verified = true
			return nil
		}
		if err != nil {
			return err
		}

		if err = users.Update(ctx, u); err != nil {
			return err
		}

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		recipient, challenge, verified = u, c, false
		return nil
	})
	if err != nil {
		return IssueChallengeResult{}, err
	}

	if verified {
		return IssueChallengeResult{Outcome: ChallengeAlreadyVerified}, nil
	}

	result := IssueChallengeResult{Outcome: ChallengeIssued, ExpiresAt: challenge.ExpiresAt()}
	if sendErr := h.mailer.SendCode(
		ctx,
		recipient.Email(),
		recipient.DisplayName(),
		command.Purpose().Label(),
		challenge.Code(),
	); sendErr != nil {
		h.logger.WarnContext(ctx, "Verification code delivery failed",
			"user_id", recipient.ID().String(),
			"purpose", command.Purpose().String(),
			"error", sendErr,
		)
		result.Outcome = ChallengeIssuedDeliveryFailed
		result.DeliveryErr = sendErr
	}

	return result, nil
}
