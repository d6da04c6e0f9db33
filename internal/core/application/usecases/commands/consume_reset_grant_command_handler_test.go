package commands_test

import (
	"errors"
	"testing"
	"time"

	"routehub/internal/core/application/usecases/commands"
	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/user"
	"routehub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserWithGrant(t *testing.T, token string, expiresAt time.Time) *user.User {
	t.Helper()
	u := newTestUser(t, user.Customer, "c@example.com", "")
	g, err := user.NewResetGrant(token, expiresAt)
	require.NoError(t, err)
	require.NoError(t, u.GrantReset(g))
	return u
}

func TestConsumeResetGrantCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	u := newUserWithGrant(t, "reset-token", now.Add(time.Minute))
	cmd, err := commands.NewConsumeResetGrantCommand(u.ID(), "reset-token", "n3w-secret")
	require.NoError(t, err)

	hasher := new(MockPasswordHasher)
	users := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		hasher.On("Hash", "n3w-secret").Return("hashed:n3w-secret", nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("GetForUpdate", ctx, u.ID()).Return(u, nil).Once(),
		users.On("Update", ctx, u).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewConsumeResetGrantCommandHandler(factory, hasher, newClock()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "hashed:n3w-secret", u.PasswordHash())
	assert.Nil(t, u.ResetGrant())
	hasher.AssertExpectations(t)
	users.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConsumeResetGrantCommandHandler_Handle_SecondUseFails(t *testing.T) {
	ctx := t.Context()
	u := newUserWithGrant(t, "reset-token", now.Add(time.Minute))
	cmd, _ := commands.NewConsumeResetGrantCommand(u.ID(), "reset-token", "pw")

	hasher := new(MockPasswordHasher)
	hasher.On("Hash", "pw").Return("hashed", nil)
	users := new(MockUserRepository)
	users.On("GetForUpdate", ctx, u.ID()).Return(u, nil)
	users.On("Update", ctx, u).Return(nil).Once()
	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(openUoW(ctx, nil, users))

	handler := commands.NewConsumeResetGrantCommandHandler(factory, hasher, newClock())
	require.NoError(t, handler.Handle(ctx, cmd))

	err := handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, user.ErrInvalidOrExpired)
	users.AssertNumberOfCalls(t, "Update", 1)
}

func TestConsumeResetGrantCommandHandler_Handle_Rejected(t *testing.T) {
	tests := map[string]struct {
		user  func(t *testing.T) *user.User
		token string
	}{
		"wrong token": {
			user:  func(t *testing.T) *user.User { return newUserWithGrant(t, "reset-token", now.Add(time.Minute)) },
			token: "other-token",
		},
		"expired": {
			user:  func(t *testing.T) *user.User { return newUserWithGrant(t, "reset-token", now) },
			token: "reset-token",
		},
		"never granted": {
			user:  func(t *testing.T) *user.User { return newTestUser(t, user.Customer, "c@example.com", "") },
			token: "reset-token",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			u := tt.user(t)
			cmd, _ := commands.NewConsumeResetGrantCommand(u.ID(), tt.token, "pw")

			hasher := new(MockPasswordHasher)
			hasher.On("Hash", "pw").Return("hashed", nil).Once()
			users := new(MockUserRepository)
			users.On("GetForUpdate", ctx, u.ID()).Return(u, nil).Once()
			factory := new(MockUserUoWFactory)
			factory.On("Create").Return(openUoW(ctx, nil, users)).Once()

			err := commands.NewConsumeResetGrantCommandHandler(factory, hasher, newClock()).Handle(ctx, cmd)

			require.ErrorIs(t, err, user.ErrInvalidOrExpired)
			assert.Equal(t, "hash", u.PasswordHash())
			users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestConsumeResetGrantCommandHandler_Handle_UnknownUser(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	cmd, _ := commands.NewConsumeResetGrantCommand(userID, "reset-token", "pw")

	hasher := new(MockPasswordHasher)
	hasher.On("Hash", "pw").Return("hashed", nil).Once()
	users := new(MockUserRepository)
	users.On("GetForUpdate", ctx, userID).Return(nil, errs.NewObjectNotFoundError("user", userID)).Once()
	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(openUoW(ctx, nil, users)).Once()

	err := commands.NewConsumeResetGrantCommandHandler(factory, hasher, newClock()).Handle(ctx, cmd)

	require.ErrorIs(t, err, user.ErrInvalidOrExpired)
}

func TestConsumeResetGrantCommandHandler_Handle_HashFailure(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewConsumeResetGrantCommand(kernel.NewUUID(), "reset-token", "pw")
	hashErr := errors.New("cost too high")

	hasher := new(MockPasswordHasher)
	hasher.On("Hash", "pw").Return("", hashErr).Once()
	factory := new(MockUserUoWFactory)

	err := commands.NewConsumeResetGrantCommandHandler(factory, hasher, newClock()).Handle(ctx, cmd)

	require.ErrorIs(t, err, hashErr)
	factory.AssertNotCalled(t, "Create")
}

func TestNewConsumeResetGrantCommand_Validation(t *testing.T) {
	_, err := commands.NewConsumeResetGrantCommand(kernel.NewUUID(), "reset-token", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewConsumeResetGrantCommand(kernel.NewUUID(), " ", "pw")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
