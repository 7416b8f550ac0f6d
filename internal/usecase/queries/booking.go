package queries

import (
	"context"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrBookingQuery    = errs.New("booking query failed")
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// AdminBookingFilter narrows the all-bookings listing.
type AdminBookingFilter struct {
	Status     *string
	PropertyID *uuid.UUID
	From       *time.Time
	To         *time.Time
}

type BookingQueries interface {
	// GetByID resolves a booking by its shareable reference, scoped to the
	// caller: admins see any booking, everyone else only their own.
	GetByID(ctx context.Context, actor shared.Principal, publicID string) (*BookingView, error)
	// GetByIDSystem bypasses actor scoping for internal read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status *string, page, limit int) (*BookingPage, error)
	ListAll(ctx context.Context, filter AdminBookingFilter, page, limit int) (*BookingPage, error)
	ListForHost(ctx context.Context, hostID uuid.UUID, page, limit int) (*BookingPage, error)
	Today(ctx context.Context) (*TodayView, error)
	Upcoming(ctx context.Context, days int) ([]*BookingListItem, error)
	Stats(ctx context.Context) (*StatsView, error)
	BookedDates(ctx context.Context, propertyID uuid.UUID, from time.Time) ([]*BookedRangeView, error)
}

type BookingReadStore interface {
	FindViewByPublicID(ctx context.Context, publicID string) (*BookingView, error)
	FindViewByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status *string, limit, offset int32) ([]*BookingListItem, int64, error)
	ListAll(ctx context.Context, filter AdminBookingFilter, limit, offset int32) ([]*BookingListItem, int64, error)
	ListForHost(ctx context.Context, hostID uuid.UUID, limit, offset int32) ([]*BookingListItem, int64, error)
	FindByDay(ctx context.Context, day time.Time) (checkIns, checkOuts []*BookingListItem, err error)
	FindBetween(ctx context.Context, from, to time.Time) ([]*BookingListItem, error)
	Stats(ctx context.Context) (*StatsView, error)
	BookedRanges(ctx context.Context, propertyID uuid.UUID, from time.Time) ([]*BookedRangeView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
	clock clock.Clock
}

func NewBookingQueries(store BookingReadStore, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{store: store, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor shared.Principal, publicID string) (*BookingView, error) {
	view, err := q.store.FindViewByPublicID(ctx, publicID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrBookingQuery)
	}
	// Non-admins only ever learn about their own bookings.
	if !actor.IsAdmin() && view.UserID != actor.UserID {
		return nil, ErrBookingNotFound
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrBookingQuery)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, status *string, page, limit int) (*BookingPage, error) {
	page, limit = normalizePage(page, limit)
	items, total, err := q.store.ListByUser(ctx, userID, status, int32(limit), pageOffset(page, limit))
	if err != nil {
		return nil, errs.Mark(err, ErrBookingQuery)
	}
	return &BookingPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (q *bookingQueriesImpl) ListAll(ctx context.Context, filter AdminBookingFilter, page, limit int) (*BookingPage, error) {
	page, limit = normalizePage(page, limit)
	items, total, err := q.store.ListAll(ctx, filter, int32(limit), pageOffset(page, limit))
	if err != nil {
		return nil, errs.Mark(err, ErrBookingQuery)
	}
	return &BookingPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (q *bookingQueriesImpl) ListForHost(ctx context.Context, hostID uuid.UUID, page, limit int) (*BookingPage, error) {
	page, limit = normalizePage(page, limit)
	items, total, err := q.store.ListForHost(ctx, hostID, int32(limit), pageOffset(page, limit))
	if err != nil {
		return nil, errs.Mark(err, ErrBookingQuery)
	}
	return &BookingPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (q *bookingQueriesImpl) Today(ctx context.Context) (*TodayView, error) {
	today := clock.Midnight(q.clock.Now().UTC())
	checkIns, checkOuts, err := q.store.FindByDay(ctx, today)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingQuery)
	}
	return &TodayView{CheckIns: checkIns, CheckOuts: checkOuts}, nil
}

func (q *bookingQueriesImpl) Upcoming(ctx context.Context, days int) ([]*BookingListItem, error) {
	if days <= 0 {
		days = 7
	}
	from := clock.Midnight(q.clock.Now().UTC())
	items, err := q.store.FindBetween(ctx, from, from.AddDate(0, 0, days))
	if err != nil {
		return nil, errs.Mark(err, ErrBookingQuery)
	}
	return items, nil
}

func (q *bookingQueriesImpl) Stats(ctx context.Context) (*StatsView, error) {
	stats, err := q.store.Stats(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingQuery)
	}
	return stats, nil
}

func (q *bookingQueriesImpl) BookedDates(ctx context.Context, propertyID uuid.UUID, from time.Time) ([]*BookedRangeView, error) {
	if from.IsZero() {
		from = clock.Midnight(q.clock.Now().UTC())
	}
	ranges, err := q.store.BookedRanges(ctx, propertyID, from)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingQuery)
	}
	return ranges, nil
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func pageOffset(page, limit int) int32 {
	return int32((page - 1) * limit)
}
