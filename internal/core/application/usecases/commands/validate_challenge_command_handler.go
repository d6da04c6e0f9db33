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

// DefaultResetGrantTTL is how long a reset grant stays valid.
const DefaultResetGrantTTL = 15 * time.Minute

// ValidateChallengeResult carries the reset grant minted by a successful
// password recovery. ResetGrant is nil for email verification.
type ValidateChallengeResult struct {
	Purpose    user.Purpose
	ResetGrant *user.ResetGrant
}

// ValidateChallengeCommandHandler consumes a verification code on the locked
// user row. Wrong, expired, mismatched and missing codes all fail with
// user.ErrInvalidOrExpired.
type ValidateChallengeCommandHandler struct {
	uowFactory UserUoWFactory
	limiter    ports.AttemptLimiter
	secrets    SecretGenerator
	clock      ports.Clock
	grantTTL   time.Duration
	logger     *slog.Logger
}

// NewValidateChallengeCommandHandler builds the handler. limiter may be nil,
// in which case attempts are not limited.
func NewValidateChallengeCommandHandler(
	uowFactory UserUoWFactory,
	limiter ports.AttemptLimiter,
	secrets SecretGenerator,
	clock ports.Clock,
	grantTTL time.Duration,
	logger *slog.Logger,
) ValidateChallengeCommandHandler {
	if grantTTL <= 0 {
		grantTTL = DefaultResetGrantTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return ValidateChallengeCommandHandler{
		uowFactory: uowFactory,
		limiter:    limiter,
		secrets:    secrets,
		clock:      clock,
		grantTTL:   grantTTL,
		logger:     logger.With("component", "validate_challenge"),
	}
}

func (h ValidateChallengeCommandHandler) Handle(
	ctx context.Context,
	command ValidateChallengeCommand,
) (ValidateChallengeResult, error) {
	if err := command.Validate(); err != nil {
		return ValidateChallengeResult{}, err
	}

	if err := h.checkAttempts(ctx, command); err != nil {
		return ValidateChallengeResult{}, err
	}

	var grant *user.ResetGrant
	err := retryOnContention(ctx, func() error {
		grant = nil

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

		now := h.clock.Now()
		if err = u.ConsumeChallenge(command.Code(), command.Purpose(), now); err != nil {
			return err
		}

		if command.Purpose() == user.PasswordRecovery {
			token, tokenErr := h.secrets.ResetToken()
			if tokenErr != nil {
				return tokenErr
			}

			g, grantErr := user.NewResetGrant(token, now.Add(h.grantTTL))
			if grantErr != nil {
				return grantErr
			}

			if err = u.GrantReset(g); err != nil {
				return err
			}
			grant = &g
		}

		if err = users.Update(ctx, u); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
	if err != nil {
		return ValidateChallengeResult{}, err
	}

	return ValidateChallengeResult{Purpose: command.Purpose(), ResetGrant: grant}, nil
}

// checkAttempts fails open when the limiter itself is unavailable.
func (h ValidateChallengeCommandHandler) checkAttempts(ctx context.Context, command ValidateChallengeCommand) error {
	if h.limiter == nil {
		return nil
	}

	key := "challenge:" + command.UserID().String() + ":" + command.Purpose().String()
	allowed, err := h.limiter.Allow(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "Attempt limiter unavailable", "error", err)
		return nil
	}
	if !allowed {
		return ErrTooManyAttempts
	}
	return nil
}
