package queries

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound  = errs.New("user not found")
	ErrNoAdminExists = errs.New("no admin account exists")
	ErrUserQuery     = errs.New("user query failed")
)

type UserQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	// List pages through every account, newest first, for administration.
	List(ctx context.Context, page, limit int) (*UserPage, error)
	// DefaultAdmin resolves the support admin: the configured account when it
	// still exists and holds the admin role, otherwise the oldest active admin.
	DefaultAdmin(ctx context.Context) (*AuthorizedUserView, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	List(ctx context.Context, limit, offset int32) ([]*AuthorizedUserView, int64, error)
	FindAdmin(ctx context.Context, preferredID uuid.UUID) (*AuthorizedUserView, error)
}

type userQueriesImpl struct {
	store UserReadStore
	cfg   config.AdminConfig
}

func NewUserQueries(store UserReadStore, cfg config.AdminConfig) UserQueries {
	return &userQueriesImpl{store: store, cfg: cfg}
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrUserQuery)
	}
	return view, nil
}

func (q *userQueriesImpl) List(ctx context.Context, page, limit int) (*UserPage, error) {
	page, limit = normalizePage(page, limit)
	items, total, err := q.store.List(ctx, int32(limit), pageOffset(page, limit))
	if err != nil {
		return nil, errs.Mark(err, ErrUserQuery)
	}
	return &UserPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (q *userQueriesImpl) DefaultAdmin(ctx context.Context) (*AuthorizedUserView, error) {
	preferred := uuid.Nil
	if q.cfg.DefaultAdminID != "" {
		if id, err := uuid.Parse(q.cfg.DefaultAdminID); err == nil {
			preferred = id
		}
	}

	view, err := q.store.FindAdmin(ctx, preferred)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrNoAdminExists
		}
		return nil, errs.Mark(err, ErrUserQuery)
	}
	return view, nil
}
