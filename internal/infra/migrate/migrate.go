package migrate

import (
	"context"
	"database/sql"

	"stayhub/internal/pkg/errs"
	"stayhub/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Up applies pending migrations. goose needs database/sql, so this opens its
// own short-lived connection instead of borrowing the pgx pool.
func Up(ctx context.Context, dsn string) error {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return errs.Wrap(err, "failed to open migration connection")
	}
	defer func() { _ = conn.Close() }()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errs.Wrap(err, "failed to set goose dialect")
	}
	if err := goose.UpContext(ctx, conn, "."); err != nil {
		return errs.Wrap(err, "failed to apply migrations")
	}
	return nil
}
