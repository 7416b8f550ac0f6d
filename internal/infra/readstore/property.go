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

type PropertyReadStore struct {
	db db.DBTX
}

func NewPropertyReadStore(db db.DBTX) *PropertyReadStore {
	return &PropertyReadStore{db: db}
}

const propertyColumns = `id, host_id, name, address, price_per_night, currency, discount_threshold_nights, created_at, updated_at`

func (r *PropertyReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PropertyView, error) {
	var v queries.PropertyView
	err := r.db.QueryRow(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id,
	).Scan(&v.ID, &v.HostID, &v.Name, &v.Address, &v.PricePerNight, &v.Currency, &v.DiscountThreshold, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property", err)
	}
	return &v, nil
}

func (r *PropertyReadStore) List(ctx context.Context, limit, offset int32) ([]*queries.PropertyView, int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+propertyColumns+`, count(*) OVER() AS total
		 FROM properties
		 ORDER BY created_at ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list properties", err)
	}
	defer rows.Close()

	var (
		result []*queries.PropertyView
		total  int64
	)
	for rows.Next() {
		var v queries.PropertyView
		if err := rows.Scan(&v.ID, &v.HostID, &v.Name, &v.Address, &v.PricePerNight, &v.Currency, &v.DiscountThreshold, &v.CreatedAt, &v.UpdatedAt, &total); err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan property row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to read property rows", err)
	}
	return result, total, nil
}
