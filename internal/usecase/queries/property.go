package queries

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrPropertyNotFound = errs.New("property not found")
	ErrPropertyQuery    = errs.New("property query failed")
)

type PropertyQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PropertyView, error)
	List(ctx context.Context, page, limit int) ([]*PropertyView, int64, error)
}

type PropertyReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PropertyView, error)
	List(ctx context.Context, limit, offset int32) ([]*PropertyView, int64, error)
}

type propertyQueriesImpl struct {
	store PropertyReadStore
}

func NewPropertyQueries(store PropertyReadStore) PropertyQueries {
	return &propertyQueriesImpl{store: store}
}

func (q *propertyQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*PropertyView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, errs.Mark(err, ErrPropertyQuery)
	}
	return view, nil
}

func (q *propertyQueriesImpl) List(ctx context.Context, page, limit int) ([]*PropertyView, int64, error) {
	page, limit = normalizePage(page, limit)
	views, total, err := q.store.List(ctx, int32(limit), pageOffset(page, limit))
	if err != nil {
		return nil, 0, errs.Mark(err, ErrPropertyQuery)
	}
	return views, total, nil
}
