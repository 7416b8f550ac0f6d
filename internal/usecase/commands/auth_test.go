//go:build unit

package commands

import (
	"context"
	"testing"
	"time"

	"stayhub/internal/domain/session"
	"stayhub/internal/domain/user"
	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/password"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error) {
	args := m.Called(ctx, tx, u)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserRepo) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	args := m.Called(ctx, tx, userID)
	return args.Error(0)
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, tx db.DBTX, userID uuid.UUID, name, email *string) (int64, error) {
	args := m.Called(ctx, tx, userID, name, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) Delete(ctx context.Context, tx db.DBTX, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Create(ctx context.Context, tx db.DBTX, s *session.Session) error {
	args := m.Called(ctx, tx, s)
	return args.Error(0)
}

func (m *MockSessionRepo) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockSessionRepo) DeleteOwned(ctx context.Context, tx db.DBTX, userID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, tx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepo) DeleteAllForUser(ctx context.Context, tx db.DBTX, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepo) Touch(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, tx, id, at)
	return args.Error(0)
}

func (m *MockSessionRepo) DeleteExpired(ctx context.Context, tx db.DBTX, now time.Time) (int64, error) {
	args := m.Called(ctx, tx, now)
	return args.Get(0).(int64), args.Error(1)
}

type authCommandsFixture struct {
	commands AuthCommands
	reads    *MockCommandReads
	users    *MockUserRepo
	sessions *MockSessionRepo
	clk      *clock.MockClock
}

func newAuthCommandsFixture(now time.Time, ttl time.Duration) *authCommandsFixture {
	reads := &MockCommandReads{}
	users := &MockUserRepo{}
	sessions := &MockSessionRepo{}
	uow := &fakeUoW{tx: &fakeTx{users: users, sessions: sessions, reads: reads}}
	clk := clock.NewMockClock(now)

	return &authCommandsFixture{
		commands: NewAuthCommands(uow, clk, config.SessionConfig{TTL: ttl}),
		reads:    reads,
		users:    users,
		sessions: sessions,
		clk:      clk,
	}
}

func credentials(t *testing.T, plaintext string) *shared.CredentialSnapshot {
	t.Helper()
	hash, err := password.HashPassword(plaintext)
	require.NoError(t, err)
	return &shared.CredentialSnapshot{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		PasswordHash: hash,
		Role:         user.RoleUser,
		IsActive:     true,
	}
}

func TestAuthCommands_Register(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	req := reqdto.RegisterRequest{Name: "Jane Guest", Email: "jane@example.com", Password: "secret-pass"}

	t.Run("success", func(t *testing.T) {
		f := newAuthCommandsFixture(now, 240*time.Hour)
		userID := uuid.New()

		var created *user.User
		f.users.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { created = args.Get(2).(*user.User) }).
			Return(userID, nil)

		id, err := f.commands.Register(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, userID, id)
		require.NotNil(t, created)
		assert.Equal(t, "jane@example.com", created.Email().Value())
		assert.Equal(t, user.RoleUser, created.Role())
		// Never store the plaintext
		assert.NotEqual(t, req.Password, created.PasswordHash())
		assert.NoError(t, password.ComparePassword(created.PasswordHash(), req.Password))
	})

	t.Run("error - duplicate email", func(t *testing.T) {
		f := newAuthCommandsFixture(now, 240*time.Hour)

		f.users.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(uuid.Nil, infra.WrapRepoErr("failed to create user", assert.AnError, infra.KindDuplicateKey))

		_, err := f.commands.Register(ctx, req)

		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("error - weak password", func(t *testing.T) {
		f := newAuthCommandsFixture(now, 240*time.Hour)
		weak := req
		weak.Password = "short"

		_, err := f.commands.Register(ctx, weak)

		assert.ErrorIs(t, err, ErrDomainValidation)
		assert.ErrorIs(t, err, user.ErrPasswordTooWeak)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error - malformed email", func(t *testing.T) {
		f := newAuthCommandsFixture(now, 240*time.Hour)
		bad := req
		bad.Email = "not-an-email"

		_, err := f.commands.Register(ctx, bad)

		assert.ErrorIs(t, err, ErrDomainValidation)
		assert.ErrorIs(t, err, user.ErrInvalidEmail)
	})
}

func TestAuthCommands_Login(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	ttl := 240 * time.Hour
	ctx := context.Background()

	t.Run("success - issues a session with fixed expiry", func(t *testing.T) {
		f := newAuthCommandsFixture(now, ttl)
		creds := credentials(t, "secret-pass")

		f.reads.On("UserByEmail", mock.Anything, creds.Email).Return(creds, nil)
		var stored *session.Session
		f.sessions.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { stored = args.Get(2).(*session.Session) }).
			Return(nil)
		f.users.On("UpdateLastLogin", mock.Anything, mock.Anything, creds.ID).Return(nil)
		f.sessions.On("DeleteExpired", mock.Anything, mock.Anything, now).Return(int64(0), nil)

		result, err := f.commands.Login(ctx,
			reqdto.LoginRequest{Email: creds.Email, Password: "secret-pass"},
			"Mozilla/5.0", "203.0.113.7")

		require.NoError(t, err)
		assert.Equal(t, creds.ID, result.UserID)
		assert.Equal(t, user.RoleUser, result.Role)
		assert.Equal(t, now.Add(ttl), result.ExpiresAt)
		assert.Equal(t, result.SessionID.String(), result.Token())

		require.NotNil(t, stored)
		assert.Equal(t, result.SessionID, stored.ID())
	})

	t.Run("success - last login update failure does not block login", func(t *testing.T) {
		f := newAuthCommandsFixture(now, ttl)
		creds := credentials(t, "secret-pass")

		f.reads.On("UserByEmail", mock.Anything, creds.Email).Return(creds, nil)
		f.sessions.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.users.On("UpdateLastLogin", mock.Anything, mock.Anything, creds.ID).Return(assert.AnError)
		f.sessions.On("DeleteExpired", mock.Anything, mock.Anything, now).Return(int64(0), nil)

		_, err := f.commands.Login(ctx,
			reqdto.LoginRequest{Email: creds.Email, Password: "secret-pass"},
			"", "")

		require.NoError(t, err)
	})

	t.Run("success - login sweeps sessions whose expiry has passed", func(t *testing.T) {
		f := newAuthCommandsFixture(now, ttl)
		creds := credentials(t, "secret-pass")

		f.reads.On("UserByEmail", mock.Anything, creds.Email).Return(creds, nil)
		f.sessions.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.users.On("UpdateLastLogin", mock.Anything, mock.Anything, creds.ID).Return(nil)
		f.sessions.On("DeleteExpired", mock.Anything, mock.Anything, now).Return(int64(3), nil)

		_, err := f.commands.Login(ctx,
			reqdto.LoginRequest{Email: creds.Email, Password: "secret-pass"},
			"", "")

		require.NoError(t, err)
		f.sessions.AssertCalled(t, "DeleteExpired", mock.Anything, mock.Anything, now)
	})

	t.Run("success - sweep failure does not block login", func(t *testing.T) {
		f := newAuthCommandsFixture(now, ttl)
		creds := credentials(t, "secret-pass")

		f.reads.On("UserByEmail", mock.Anything, creds.Email).Return(creds, nil)
		f.sessions.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.users.On("UpdateLastLogin", mock.Anything, mock.Anything, creds.ID).Return(nil)
		f.sessions.On("DeleteExpired", mock.Anything, mock.Anything, now).Return(int64(0), assert.AnError)

		result, err := f.commands.Login(ctx,
			reqdto.LoginRequest{Email: creds.Email, Password: "secret-pass"},
			"", "")

		require.NoError(t, err)
		assert.NotNil(t, result)
	})

	t.Run("error - wrong password", func(t *testing.T) {
		f := newAuthCommandsFixture(now, ttl)
		creds := credentials(t, "secret-pass")

		f.reads.On("UserByEmail", mock.Anything, creds.Email).Return(creds, nil)

		_, err := f.commands.Login(ctx,
			reqdto.LoginRequest{Email: creds.Email, Password: "wrong-pass"},
			"", "")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		f.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error - unknown email reads like a bad password", func(t *testing.T) {
		f := newAuthCommandsFixture(now, ttl)

		f.reads.On("UserByEmail", mock.Anything, "nobody@example.com").
			Return(nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound))

		_, err := f.commands.Login(ctx,
			reqdto.LoginRequest{Email: "nobody@example.com", Password: "secret-pass"},
			"", "")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("error - deactivated account", func(t *testing.T) {
		f := newAuthCommandsFixture(now, ttl)
		creds := credentials(t, "secret-pass")
		creds.IsActive = false

		f.reads.On("UserByEmail", mock.Anything, creds.Email).Return(creds, nil)

		_, err := f.commands.Login(ctx,
			reqdto.LoginRequest{Email: creds.Email, Password: "secret-pass"},
			"", "")

		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestAuthCommands_Sessions(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	actor := shared.Principal{UserID: uuid.New(), SessionID: uuid.New()}

	t.Run("logout deletes the current session", func(t *testing.T) {
		f := newAuthCommandsFixture(now, time.Hour)

		f.sessions.On("Delete", mock.Anything, mock.Anything, actor.SessionID).Return(nil)

		require.NoError(t, f.commands.Logout(ctx, actor))
		f.sessions.AssertExpectations(t)
	})

	t.Run("logout all reports how many sessions were revoked", func(t *testing.T) {
		f := newAuthCommandsFixture(now, time.Hour)

		f.sessions.On("DeleteAllForUser", mock.Anything, mock.Anything, actor.UserID).Return(int64(4), nil)

		n, err := f.commands.LogoutAll(ctx, actor)

		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
	})

	t.Run("revoke is scoped to the caller's own sessions", func(t *testing.T) {
		f := newAuthCommandsFixture(now, time.Hour)
		target := uuid.New()

		f.sessions.On("DeleteOwned", mock.Anything, mock.Anything, actor.UserID, target).Return(int64(1), nil)

		require.NoError(t, f.commands.RevokeSession(ctx, actor, target))
	})

	t.Run("error - revoking someone else's session looks absent", func(t *testing.T) {
		f := newAuthCommandsFixture(now, time.Hour)
		target := uuid.New()

		f.sessions.On("DeleteOwned", mock.Anything, mock.Anything, actor.UserID, target).Return(int64(0), nil)

		err := f.commands.RevokeSession(ctx, actor, target)

		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}
