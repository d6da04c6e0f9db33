package queries

import (
	"errors"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/pkg/guard"
)

var ErrValidateResetGrantQueryIsNotConstructed = errors.New(
	"ValidateResetGrantQuery must be created via NewValidateResetGrantQuery constructor",
)

// ValidateResetGrantQuery checks a reset token without consuming it.
type ValidateResetGrantQuery struct {
	userID kernel.UUID
	token  string

	guard guard.ConstructorGuard
}

func NewValidateResetGrantQuery(userID kernel.UUID, token string) (ValidateResetGrantQuery, error) {
	if err := userID.Validate(); err != nil {
		return ValidateResetGrantQuery{}, err
	}
	return ValidateResetGrantQuery{userID: userID, token: token, guard: guard.NewConstructorGuard()}, nil
}

func (q ValidateResetGrantQuery) Validate() error {
	return q.guard.Validate(ErrValidateResetGrantQueryIsNotConstructed)
}

func (q ValidateResetGrantQuery) UserID() kernel.UUID { return q.userID }
func (q ValidateResetGrantQuery) Token() string       { return q.token }
