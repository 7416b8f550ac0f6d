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

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

const userColumns = `id, name, email, role, is_active, last_login, created_at`

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var v queries.AuthorizedUserView
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	).Scan(&v.ID, &v.Name, &v.Email, &v.Role, &v.IsActive, &v.LastLogin, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &v, nil
}

func (r *UserReadStore) List(ctx context.Context, limit, offset int32) ([]*queries.AuthorizedUserView, int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+`, count(*) OVER() AS total
		 FROM users
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list users", err)
	}
	defer rows.Close()

	var (
		result []*queries.AuthorizedUserView
		total  int64
	)
	for rows.Next() {
		var v queries.AuthorizedUserView
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Role, &v.IsActive, &v.LastLogin, &v.CreatedAt, &total); err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan user row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to read user rows", err)
	}
	return result, total, nil
}

// FindByEmail also returns the password hash for credential checks; the hash
// never leaves the usecase layer.
func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	var (
		v    queries.AuthorizedUserView
		hash string
	)
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+`, password_hash FROM users WHERE email = $1`, email,
	).Scan(&v.ID, &v.Name, &v.Email, &v.Role, &v.IsActive, &v.LastLogin, &v.CreatedAt, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &v, hash, nil
}

// FindAdmin prefers the configured admin account when it is still an active
// admin, otherwise falls back to the oldest active admin.
func (r *UserReadStore) FindAdmin(ctx context.Context, preferredID uuid.UUID) (*queries.AuthorizedUserView, error) {
	var v queries.AuthorizedUserView
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE role = 'admin' AND is_active
		 ORDER BY (id = $1) DESC, created_at ASC
		 LIMIT 1`,
		preferredID,
	).Scan(&v.ID, &v.Name, &v.Email, &v.Role, &v.IsActive, &v.LastLogin, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("no admin account exists", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find admin", err)
	}
	return &v, nil
}
