package repository

import (
	"context"
	"time"

	"stayhub/internal/domain/session"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type SessionRepository struct{}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

func (r *SessionRepository) Create(ctx context.Context, tx db.DBTX, s *session.Session) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO sessions (id, user_id, device, browser, ip, last_active, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID(), s.UserID(), s.Device(), s.Browser(), nullableText(s.IP()), s.LastActive(), s.ExpiresAt(), s.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create session", err, infra.KindFromPgError(err))
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete session", err, infra.KindFromPgError(err))
	}
	return nil
}

func (r *SessionRepository) DeleteOwned(ctx context.Context, tx db.DBTX, userID, id uuid.UUID) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM sessions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete owned session", err, infra.KindFromPgError(err))
	}
	return tag.RowsAffected(), nil
}

func (r *SessionRepository) DeleteAllForUser(ctx context.Context, tx db.DBTX, userID uuid.UUID) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete user sessions", err, infra.KindFromPgError(err))
	}
	return tag.RowsAffected(), nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, tx db.DBTX, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired sessions", err, infra.KindFromPgError(err))
	}
	return tag.RowsAffected(), nil
}

func (r *SessionRepository) Touch(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) error {
	_, err := tx.Exec(ctx, `UPDATE sessions SET last_active = $2 WHERE id = $1`, id, at)
	if err != nil {
		return infra.WrapRepoErr("failed to touch session", err, infra.KindFromPgError(err))
	}
	return nil
}

func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
