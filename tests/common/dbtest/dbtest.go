//go:build e2e

package dbtest

import (
	"context"
	"time"

	"stayhub/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Reference rows every e2e test can rely on.
var (
	SeedHostID     = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	SeedAdminID    = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	SeedPropertyID = uuid.MustParse("33333333-3333-3333-3333-333333333333")

	SeedHostEmail  = "host@example.com"
	SeedAdminEmail = "admin@example.com"
	SeedPassword   = "password123"
)

// SeedReferenceData inserts the host, the admin, and one property. Inserts
// are idempotent so reseeding after a truncate is safe.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hash, err := password.HashPassword(SeedPassword)
	if err != nil {
		return err
	}

	users := []struct {
		id    uuid.UUID
		name  string
		email string
		role  string
	}{
		{SeedHostID, "Harry Host", SeedHostEmail, "user"},
		{SeedAdminID, "Ada Admin", SeedAdminEmail, "admin"},
	}
	for _, u := range users {
		_, err = pool.Exec(ctx, `
			INSERT INTO users (id, name, email, password_hash, role)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING`,
			u.id, u.name, u.email, hash, u.role)
		if err != nil {
			return err
		}
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO properties (id, host_id, name, address, price_per_night, currency, discount_threshold_nights)
		VALUES ($1, $2, 'Seaside Cottage', '2 Shore Rd', 100, 'USD', 7)
		ON CONFLICT (id) DO NOTHING`,
		SeedPropertyID, SeedHostID)
	return err
}

// ResetDB truncates all mutable tables and reseeds the reference rows.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, `
		TRUNCATE bookings, sessions, notification_jobs, properties, users CASCADE`)
	if err != nil {
		return err
	}
	return SeedReferenceData(pool)
}
