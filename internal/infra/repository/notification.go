package repository

import (
	"context"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

// CreateJob enqueues an outbox row in the same transaction as the state
// change it announces; a separate worker drains the table.
func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO notification_jobs (id, kind, topic, payload, run_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), kind, topic, payload, runAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err, infra.KindFromPgError(err))
	}
	return nil
}
