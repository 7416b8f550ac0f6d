package readstore

import (
	"context"
	"errors"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SessionReadStore struct {
	db db.DBTX
}

func NewSessionReadStore(db db.DBTX) *SessionReadStore {
	return &SessionReadStore{db: db}
}

func (r *SessionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SessionRecord, error) {
	var rec queries.SessionRecord
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, last_active, expires_at FROM sessions WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.UserID, &rec.LastActive, &rec.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find session", err)
	}
	return &rec, nil
}

func (r *SessionReadStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*queries.SessionView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, device, browser, COALESCE(ip, ''), last_active, expires_at, created_at
		 FROM sessions
		 WHERE user_id = $1 AND expires_at > now()
		 ORDER BY last_active DESC`,
		userID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list sessions", err)
	}
	defer rows.Close()

	var result []*queries.SessionView
	for rows.Next() {
		var v queries.SessionView
		if err := rows.Scan(&v.ID, &v.Device, &v.Browser, &v.IP, &v.LastActive, &v.ExpiresAt, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan session row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read session rows", err)
	}
	return result, nil
}
