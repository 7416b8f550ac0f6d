//go:build unit

package commands

import (
	"context"
	"testing"

	"stayhub/internal/domain/user"
	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/infra"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userCommandsFixture struct {
	commands UserCommands
	users    *MockUserRepo
}

func newUserCommandsFixture() *userCommandsFixture {
	users := &MockUserRepo{}
	uow := &fakeUoW{tx: &fakeTx{users: users}}
	return &userCommandsFixture{
		commands: NewUserCommands(uow),
		users:    users,
	}
}

func strptr(s string) *string { return &s }

func TestUserCommands_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	actor := shared.Principal{UserID: uuid.New()}

	t.Run("success - updates only the fields given", func(t *testing.T) {
		f := newUserCommandsFixture()

		f.users.On("UpdateProfile", mock.Anything, mock.Anything, actor.UserID,
			strptr("Jane Host"), (*string)(nil)).Return(int64(1), nil)

		err := f.commands.UpdateProfile(ctx, actor,
			reqdto.UpdateProfileRequest{Name: strptr("Jane Host")})

		require.NoError(t, err)
		f.users.AssertExpectations(t)
	})

	t.Run("success - email is canonicalized before the write", func(t *testing.T) {
		f := newUserCommandsFixture()

		f.users.On("UpdateProfile", mock.Anything, mock.Anything, actor.UserID,
			(*string)(nil), strptr("jane@example.com")).Return(int64(1), nil)

		err := f.commands.UpdateProfile(ctx, actor,
			reqdto.UpdateProfileRequest{Email: strptr("  Jane@Example.COM ")})

		require.NoError(t, err)
		f.users.AssertExpectations(t)
	})

	t.Run("error - nothing to update", func(t *testing.T) {
		f := newUserCommandsFixture()

		err := f.commands.UpdateProfile(ctx, actor, reqdto.UpdateProfileRequest{})

		assert.ErrorIs(t, err, ErrDomainValidation)
		assert.ErrorIs(t, err, user.ErrNothingToUpdate)
		f.users.AssertNotCalled(t, "UpdateProfile",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error - malformed email", func(t *testing.T) {
		f := newUserCommandsFixture()

		err := f.commands.UpdateProfile(ctx, actor,
			reqdto.UpdateProfileRequest{Email: strptr("not-an-email")})

		assert.ErrorIs(t, err, ErrDomainValidation)
		assert.ErrorIs(t, err, user.ErrInvalidEmail)
	})

	t.Run("error - duplicate email", func(t *testing.T) {
		f := newUserCommandsFixture()

		f.users.On("UpdateProfile", mock.Anything, mock.Anything, actor.UserID,
			(*string)(nil), strptr("taken@example.com")).
			Return(int64(0), infra.WrapRepoErr("failed to update user", assert.AnError, infra.KindDuplicateKey))

		err := f.commands.UpdateProfile(ctx, actor,
			reqdto.UpdateProfileRequest{Email: strptr("taken@example.com")})

		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("error - vanished account", func(t *testing.T) {
		f := newUserCommandsFixture()

		f.users.On("UpdateProfile", mock.Anything, mock.Anything, actor.UserID,
			strptr("Jane Host"), (*string)(nil)).Return(int64(0), nil)

		err := f.commands.UpdateProfile(ctx, actor,
			reqdto.UpdateProfileRequest{Name: strptr("Jane Host")})

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserCommands_DeleteAccount(t *testing.T) {
	ctx := context.Background()
	actor := shared.Principal{UserID: uuid.New()}

	t.Run("success", func(t *testing.T) {
		f := newUserCommandsFixture()

		f.users.On("Delete", mock.Anything, mock.Anything, actor.UserID).Return(int64(1), nil)

		require.NoError(t, f.commands.DeleteAccount(ctx, actor))
		f.users.AssertExpectations(t)
	})

	t.Run("error - account still hosts properties", func(t *testing.T) {
		f := newUserCommandsFixture()

		f.users.On("Delete", mock.Anything, mock.Anything, actor.UserID).
			Return(int64(0), infra.WrapRepoErr("failed to delete user", assert.AnError, infra.KindForeignKeyViolated))

		err := f.commands.DeleteAccount(ctx, actor)

		assert.ErrorIs(t, err, ErrAccountOwnsProperties)
	})

	t.Run("error - already gone", func(t *testing.T) {
		f := newUserCommandsFixture()

		f.users.On("Delete", mock.Anything, mock.Anything, actor.UserID).Return(int64(0), nil)

		err := f.commands.DeleteAccount(ctx, actor)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
