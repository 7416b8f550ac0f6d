//go:build unit

package usecase

import (
	"context"
	"testing"
	"time"

	"stayhub/internal/domain/session"
	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSessionReadStore struct {
	mock.Mock
}

func (m *MockSessionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SessionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.SessionRecord), args.Error(1)
}

func (m *MockSessionReadStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*queries.SessionView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.SessionView), args.Error(1)
}

type MockUserReadStore struct {
	mock.Mock
}

func (m *MockUserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.AuthorizedUserView), args.Error(1)
}

func (m *MockUserReadStore) FindAdmin(ctx context.Context, preferredID uuid.UUID) (*queries.AuthorizedUserView, error) {
	args := m.Called(ctx, preferredID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.AuthorizedUserView), args.Error(1)
}

func (m *MockUserReadStore) List(ctx context.Context, limit, offset int32) ([]*queries.AuthorizedUserView, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*queries.AuthorizedUserView), args.Get(1).(int64), args.Error(2)
}

type sessionTx struct {
	sessions shared.SessionRepository
}

func (t *sessionTx) Bookings() shared.BookingRepository           { return nil }
func (t *sessionTx) Sessions() shared.SessionRepository           { return t.sessions }
func (t *sessionTx) Users() shared.UserRepository                 { return nil }
func (t *sessionTx) Notifications() shared.NotificationRepository { return nil }
func (t *sessionTx) Reads() shared.CommandReads                   { return nil }
func (t *sessionTx) DB() db.DBTX                                  { return nil }

type sessionUoW struct {
	tx *sessionTx
}

func (u *sessionUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *sessionUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *sessionUoW) CommandReads() shared.CommandReads { return nil }

type validatorFixture struct {
	validator SessionValidator
	sessions  *MockSessionReadStore
	users     *MockUserReadStore
	repo      *sessionRepoFake
	clk       *clock.MockClock
}

// sessionRepoFake records maintenance writes instead of asserting on them;
// deletes and touches are fire-and-forget in the validator.
type sessionRepoFake struct {
	deleted []uuid.UUID
	touched []uuid.UUID
}

func (f *sessionRepoFake) Create(_ context.Context, _ db.DBTX, _ *session.Session) error {
	return nil
}

func (f *sessionRepoFake) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *sessionRepoFake) DeleteOwned(_ context.Context, _ db.DBTX, _, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *sessionRepoFake) DeleteAllForUser(_ context.Context, _ db.DBTX, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *sessionRepoFake) Touch(_ context.Context, _ db.DBTX, id uuid.UUID, _ time.Time) error {
	f.touched = append(f.touched, id)
	return nil
}

func (f *sessionRepoFake) DeleteExpired(_ context.Context, _ db.DBTX, _ time.Time) (int64, error) {
	return 0, nil
}

func newValidatorFixture(now time.Time) *validatorFixture {
	sessions := &MockSessionReadStore{}
	users := &MockUserReadStore{}
	repo := &sessionRepoFake{}
	uow := &sessionUoW{tx: &sessionTx{sessions: repo}}
	clk := clock.NewMockClock(now)

	return &validatorFixture{
		validator: NewSessionValidator(sessions, users, uow, clk),
		sessions:  sessions,
		users:     users,
		repo:      repo,
		clk:       clk,
	}
}

func activeUserView(id uuid.UUID, role string) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       id,
		Name:     "Jane Guest",
		Email:    "jane@example.com",
		Role:     role,
		IsActive: true,
	}
}

func TestSessionValidator_Authenticate(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("success - live session resolves the principal and records activity", func(t *testing.T) {
		f := newValidatorFixture(now)
		sessionID := uuid.New()
		userID := uuid.New()

		f.sessions.On("FindByID", mock.Anything, sessionID).Return(&queries.SessionRecord{
			ID:         sessionID,
			UserID:     userID,
			LastActive: now.Add(-time.Hour),
			ExpiresAt:  now.Add(48 * time.Hour),
		}, nil)
		f.users.On("FindByID", mock.Anything, userID).Return(activeUserView(userID, "user"), nil)

		principal, err := f.validator.Authenticate(ctx, sessionID.String())

		require.NoError(t, err)
		assert.Equal(t, userID, principal.UserID)
		assert.Equal(t, sessionID, principal.SessionID)
		assert.Equal(t, user.RoleUser, principal.Role)
		assert.Equal(t, []uuid.UUID{sessionID}, f.repo.touched)
		assert.Empty(t, f.repo.deleted)
	})

	t.Run("success - admin role carries through", func(t *testing.T) {
		f := newValidatorFixture(now)
		sessionID := uuid.New()
		userID := uuid.New()

		f.sessions.On("FindByID", mock.Anything, sessionID).Return(&queries.SessionRecord{
			ID:        sessionID,
			UserID:    userID,
			ExpiresAt: now.Add(time.Hour),
		}, nil)
		f.users.On("FindByID", mock.Anything, userID).Return(activeUserView(userID, "admin"), nil)

		principal, err := f.validator.Authenticate(ctx, sessionID.String())

		require.NoError(t, err)
		assert.True(t, principal.IsAdmin())
	})

	t.Run("error - token that is not a uuid never reaches the store", func(t *testing.T) {
		f := newValidatorFixture(now)

		_, err := f.validator.Authenticate(ctx, "not-a-session-token")

		assert.ErrorIs(t, err, ErrUnauthenticated)
		f.sessions.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("error - unknown session", func(t *testing.T) {
		f := newValidatorFixture(now)
		sessionID := uuid.New()

		f.sessions.On("FindByID", mock.Anything, sessionID).
			Return(nil, infra.WrapRepoErr("session not found", nil, infra.KindNotFound))

		_, err := f.validator.Authenticate(ctx, sessionID.String())

		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("error - expired session is deleted on first contact", func(t *testing.T) {
		f := newValidatorFixture(now)
		sessionID := uuid.New()

		f.sessions.On("FindByID", mock.Anything, sessionID).Return(&queries.SessionRecord{
			ID:        sessionID,
			UserID:    uuid.New(),
			ExpiresAt: now.Add(-time.Minute),
		}, nil)

		_, err := f.validator.Authenticate(ctx, sessionID.String())

		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.Equal(t, []uuid.UUID{sessionID}, f.repo.deleted)
		assert.Empty(t, f.repo.touched)
	})

	t.Run("session expiring exactly now is still valid", func(t *testing.T) {
		f := newValidatorFixture(now)
		sessionID := uuid.New()
		userID := uuid.New()

		f.sessions.On("FindByID", mock.Anything, sessionID).Return(&queries.SessionRecord{
			ID:        sessionID,
			UserID:    userID,
			ExpiresAt: now,
		}, nil)
		f.users.On("FindByID", mock.Anything, userID).Return(activeUserView(userID, "user"), nil)

		_, err := f.validator.Authenticate(ctx, sessionID.String())

		require.NoError(t, err)
	})

	t.Run("error - deactivated user invalidates the session", func(t *testing.T) {
		f := newValidatorFixture(now)
		sessionID := uuid.New()
		userID := uuid.New()

		inactive := activeUserView(userID, "user")
		inactive.IsActive = false

		f.sessions.On("FindByID", mock.Anything, sessionID).Return(&queries.SessionRecord{
			ID:        sessionID,
			UserID:    userID,
			ExpiresAt: now.Add(time.Hour),
		}, nil)
		f.users.On("FindByID", mock.Anything, userID).Return(inactive, nil)

		_, err := f.validator.Authenticate(ctx, sessionID.String())

		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.Equal(t, []uuid.UUID{sessionID}, f.repo.deleted)
	})

	t.Run("error - vanished user invalidates the session", func(t *testing.T) {
		f := newValidatorFixture(now)
		sessionID := uuid.New()
		userID := uuid.New()

		f.sessions.On("FindByID", mock.Anything, sessionID).Return(&queries.SessionRecord{
			ID:        sessionID,
			UserID:    userID,
			ExpiresAt: now.Add(time.Hour),
		}, nil)
		f.users.On("FindByID", mock.Anything, userID).
			Return(nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound))

		_, err := f.validator.Authenticate(ctx, sessionID.String())

		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.Equal(t, []uuid.UUID{sessionID}, f.repo.deleted)
	})
}
