package queries

import (
	"context"

	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrSessionQuery = errs.New("session query failed")

type SessionQueries interface {
	// ListForUser returns the user's live sessions, most recently active
	// first, flagging the one backing the current request. Sessions past
	// their expiry never appear, deleted yet or not.
	ListForUser(ctx context.Context, userID, currentSessionID uuid.UUID) ([]*SessionView, error)
}

type SessionReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SessionRecord, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*SessionView, error)
}

type sessionQueriesImpl struct {
	store SessionReadStore
}

func NewSessionQueries(store SessionReadStore) SessionQueries {
	return &sessionQueriesImpl{store: store}
}

func (q *sessionQueriesImpl) ListForUser(ctx context.Context, userID, currentSessionID uuid.UUID) ([]*SessionView, error) {
	views, err := q.store.ListForUser(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrSessionQuery)
	}
	for _, v := range views {
		v.Current = v.ID == currentSessionID
	}
	return views, nil
}
