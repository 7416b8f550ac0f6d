package repository

import (
	"context"

	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		u.ID(), u.Name().Value(), u.Email().Value(), u.PasswordHash(), u.Role().String(), u.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err, infra.KindFromPgError(err))
	}
	return id, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, tx db.DBTX, userID uuid.UUID, name, email *string) (int64, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE users
		 SET name = COALESCE($2, name), email = COALESCE($3, email), updated_at = now()
		 WHERE id = $1`,
		userID, name, email,
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to update profile", err, infra.KindFromPgError(err))
	}
	return tag.RowsAffected(), nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`,
		userID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err, infra.KindFromPgError(err))
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, tx db.DBTX, userID uuid.UUID) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete user", err, infra.KindFromPgError(err))
	}
	return tag.RowsAffected(), nil
}
