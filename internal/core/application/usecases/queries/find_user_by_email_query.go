package queries

import (
	"errors"
	"strings"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/user"
	"routehub/internal/pkg/errs"
	"routehub/internal/pkg/guard"
)

var ErrFindUserByEmailQueryIsNotConstructed = errors.New(
	"FindUserByEmailQuery must be created via NewFindUserByEmailQuery constructor",
)

// FindUserByEmailQuery resolves the user behind an email address, matched
// case-insensitively.
type FindUserByEmailQuery struct {
	email string

	guard guard.ConstructorGuard
}

func NewFindUserByEmailQuery(email string) (FindUserByEmailQuery, error) {
	normalized := user.NormalizeEmail(email)
	if normalized == "" {
		return FindUserByEmailQuery{}, errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(normalized, "@") {
		return FindUserByEmailQuery{}, errs.NewValueIsInvalidError("email")
	}
	return FindUserByEmailQuery{email: normalized, guard: guard.NewConstructorGuard()}, nil
}

func (q FindUserByEmailQuery) Validate() error {
	return q.guard.Validate(ErrFindUserByEmailQueryIsNotConstructed)
}

func (q FindUserByEmailQuery) Email() string { return q.email }

type UserSummary struct {
	ID            kernel.UUID
	Role          user.Role
	Email         string
	DisplayName   string
	EmailVerified bool
	Active        bool
}
