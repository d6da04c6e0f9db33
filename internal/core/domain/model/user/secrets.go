package user

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"routehub/internal/pkg/errs"
)

const CodeLength = 6

// Challenge is an outstanding numeric code.
type Challenge struct {
	code      string
	purpose   Purpose
	expiresAt time.Time
}

// NewChallenge validates a six digit code and its purpose.
func NewChallenge(code string, purpose Purpose, expiresAt time.Time) (Challenge, error) {
	if err := validateCode(code); err != nil {
		return Challenge{}, err
	}
	if err := purpose.Validate(); err != nil {
		return Challenge{}, err
	}
	if expiresAt.IsZero() {
		return Challenge{}, errs.NewValueIsRequiredError("challenge expiry")
	}

	return Challenge{code: code, purpose: purpose, expiresAt: expiresAt}, nil
}

func (c Challenge) Code() string         { return c.code }
func (c Challenge) Purpose() Purpose     { return c.purpose }
func (c Challenge) ExpiresAt() time.Time { return c.expiresAt }

// Matches compares the code in constant time. The challenge is valid only
// while now is strictly before the expiry.
func (c Challenge) Matches(code string, purpose Purpose, now time.Time) bool {
	codeOK := subtle.ConstantTimeCompare([]byte(c.code), []byte(code)) == 1
	return codeOK && c.purpose == purpose && now.Before(c.expiresAt)
}

// ResetGrant is the opaque token returned by a successful recovery challenge.
type ResetGrant struct {
	token     string
	expiresAt time.Time
}

func NewResetGrant(token string, expiresAt time.Time) (ResetGrant, error) {
	if token == "" {
		return ResetGrant{}, errs.NewValueIsRequiredError("reset token")
	}
	if expiresAt.IsZero() {
		return ResetGrant{}, errs.NewValueIsRequiredError("reset token expiry")
	}

	return ResetGrant{token: token, expiresAt: expiresAt}, nil
}

func (g ResetGrant) Token() string        { return g.token }
func (g ResetGrant) ExpiresAt() time.Time { return g.expiresAt }

func (g ResetGrant) Matches(token string, now time.Time) bool {
	tokenOK := subtle.ConstantTimeCompare([]byte(g.token), []byte(token)) == 1
	return tokenOK && now.Before(g.expiresAt)
}

func validateCode(code string) error {
	if len(code) != CodeLength {
		return errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("must have %d digits", CodeLength))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("code", errors.New("must contain digits only"))
		}
	}
	return nil
}
