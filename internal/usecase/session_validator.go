package usecase

import (
	"context"
	"log/slog"

	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated = errs.New("authentication required")
	ErrSessionExpired  = errs.New("session expired")
	ErrForbidden       = errs.New("insufficient permissions")
)

// SessionValidator resolves a bearer token to the principal behind it. The
// token is the session id itself; anything that does not parse as one is
// rejected without touching the store.
type SessionValidator interface {
	Authenticate(ctx context.Context, token string) (shared.Principal, error)
}

type sessionValidatorImpl struct {
	sessions queries.SessionReadStore
	users    queries.UserReadStore
	uow      shared.UnitOfWork
	clock    clock.Clock
}

func NewSessionValidator(
	sessions queries.SessionReadStore,
	users queries.UserReadStore,
	uow shared.UnitOfWork,
	clk clock.Clock,
) SessionValidator {
	return &sessionValidatorImpl{
		sessions: sessions,
		users:    users,
		uow:      uow,
		clock:    clk,
	}
}

func (v *sessionValidatorImpl) Authenticate(ctx context.Context, token string) (shared.Principal, error) {
	sessionID, err := uuid.Parse(token)
	if err != nil {
		return shared.Principal{}, ErrUnauthenticated
	}

	record, err := v.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return shared.Principal{}, ErrUnauthenticated
		}
		return shared.Principal{}, errs.Mark(err, ErrUnauthenticated)
	}

	now := v.clock.Now()
	if record.ExpiresAt.Before(now) {
		// Expired sessions are removed on first contact so the store does
		// not accumulate dead rows between logins.
		v.deleteSession(ctx, sessionID)
		return shared.Principal{}, ErrSessionExpired
	}

	authorized, err := v.users.FindByID(ctx, record.UserID)
	if err != nil || !authorized.IsActive {
		v.deleteSession(ctx, sessionID)
		return shared.Principal{}, ErrUnauthenticated
	}

	role, err := user.NewRole(authorized.Role)
	if err != nil {
		return shared.Principal{}, ErrUnauthenticated
	}

	// Informational only; expiry never slides.
	v.touchSession(ctx, sessionID)

	return shared.Principal{
		UserID:    record.UserID,
		SessionID: sessionID,
		Role:      role,
	}, nil
}

func (v *sessionValidatorImpl) deleteSession(ctx context.Context, id uuid.UUID) {
	err := v.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Sessions().Delete(ctx, tx.DB(), id)
	})
	if err != nil {
		slog.Warn("failed to delete session", "session_id", id, "error", err.Error())
	}
}

func (v *sessionValidatorImpl) touchSession(ctx context.Context, id uuid.UUID) {
	err := v.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Sessions().Touch(ctx, tx.DB(), id, v.clock.Now())
	})
	if err != nil {
		slog.Warn("failed to record session activity", "session_id", id, "error", err.Error())
	}
}
