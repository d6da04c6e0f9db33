package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/pkg/errs"
)

// User is an actor of the system. The email is stored lower-cased so lookups
// are case-insensitive.
type User struct {
	id            kernel.UUID
	role          Role
	email         string
	firstName     string
	lastName      string
	passwordHash  string
	pushAddress   string
	challenge     *Challenge
	resetGrant    *ResetGrant
	emailVerified bool
	active        bool

	isConstructed bool
}

// NewUser registers an unverified, inactive user.
func NewUser(
	id kernel.UUID,
	role Role,
	email string,
	firstName string,
	lastName string,
	passwordHash string,
) (*User, error) {
	u := &User{
		firstName:     strings.TrimSpace(firstName),
		lastName:      strings.TrimSpace(lastName),
		passwordHash:  passwordHash,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setRole(role),
		u.setEmail(email),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a user from storage.
func RestoreUser(
	id kernel.UUID,
	role Role,
	email string,
	firstName string,
	lastName string,
	passwordHash string,
	pushAddress string,
	challenge *Challenge,
	resetGrant *ResetGrant,
	emailVerified bool,
	active bool,
) (*User, error) {
	u, err := NewUser(id, role, email, firstName, lastName, passwordHash)
	if err != nil {
		return nil, err
	}

	u.pushAddress = pushAddress
	u.challenge = challenge
	u.resetGrant = resetGrant
	u.emailVerified = emailVerified
	u.active = active
	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID      { return u.id }
func (u *User) Role() Role           { return u.role }
func (u *User) Email() string        { return u.email }
func (u *User) FirstName() string    { return u.firstName }
func (u *User) LastName() string     { return u.lastName }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) PushAddress() string  { return u.pushAddress }
func (u *User) EmailVerified() bool  { return u.emailVerified }
func (u *User) Active() bool         { return u.active }

// DisplayName joins first and last name.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.firstName + " " + u.lastName)
}

func (u *User) HasPushAddress() bool {
	return u.pushAddress != ""
}

// Challenge returns a copy of the outstanding challenge, if any.
func (u *User) Challenge() *Challenge {
	if u.challenge == nil {
		return nil
	}
	c := *u.challenge
	return &c
}

// ResetGrant returns a copy of the outstanding reset grant, if any.
func (u *User) ResetGrant() *ResetGrant {
	if u.resetGrant == nil {
		return nil
	}
	g := *u.resetGrant
	return &g
}

// SetPushAddress replaces the address push notifications are sent to.
func (u *User) SetPushAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("push address")
	}
	u.pushAddress = address
	return nil
}

// IssueChallenge stores c, replacing any previous challenge. Email
// verification is refused with ErrAlreadyVerified for a verified user.
func (u *User) IssueChallenge(c Challenge) error {
	if c.Purpose() == EmailVerification && u.emailVerified {
		return ErrAlreadyVerified
	}
	if _, err := NewChallenge(c.Code(), c.Purpose(), c.ExpiresAt()); err != nil {
		return err
	}

	u.challenge = &c
	return nil
}

// ConsumeChallenge checks the submitted code and clears the challenge on
// success. A successful email verification also verifies and activates the
// user. Any failure returns ErrInvalidOrExpired and leaves the state as is.
func (u *User) ConsumeChallenge(code string, purpose Purpose, now time.Time) error {
	if u.challenge == nil || !u.challenge.Matches(code, purpose, now) {
		return ErrInvalidOrExpired
	}

	u.challenge = nil
	if purpose == EmailVerification {
		u.emailVerified = true
		u.active = true
	}
	return nil
}

// GrantReset stores the reset grant minted after a recovery challenge.
func (u *User) GrantReset(g ResetGrant) error {
	if _, err := NewResetGrant(g.Token(), g.ExpiresAt()); err != nil {
		return err
	}
	u.resetGrant = &g
	return nil
}

// HasValidResetGrant is the read-only check behind reset token validation.
func (u *User) HasValidResetGrant(token string, now time.Time) bool {
	return u.resetGrant != nil && u.resetGrant.Matches(token, now)
}

// ConsumeResetGrant replaces the password hash and clears the grant.
func (u *User) ConsumeResetGrant(token string, newPasswordHash string, now time.Time) error {
	if !u.HasValidResetGrant(token, now) {
		return ErrInvalidOrExpired
	}
	if newPasswordHash == "" {
		return errs.NewValueIsRequiredError("password hash")
	}

	u.passwordHash = newPasswordHash
	u.resetGrant = nil
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setEmail(email string) error {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if at := strings.IndexByte(normalized, '@'); at <= 0 || at == len(normalized)-1 {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an address", email))
	}
	u.email = normalized
	return nil
}

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
