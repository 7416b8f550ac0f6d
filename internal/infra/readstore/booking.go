package readstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const bookingViewColumns = `
    b.id, b.booking_id, b.user_id, b.property_id,
    p.name, p.address,
    b.check_in, b.check_out, b.total_nights,
    b.total_guests, b.adults, b.children, b.pets,
    b.contact_full_name, b.contact_email, b.contact_phone, b.contact_address,
    b.price_per_night, b.subtotal, b.service_fee, b.discount, b.total_amount,
    p.currency,
    b.payment_intent_id, b.payment_status, b.last_four_digits,
    b.status, b.message_to_host, b.created_at, b.updated_at`

const bookingListColumns = `
    b.id, b.booking_id, b.property_id, p.name, b.contact_full_name,
    b.check_in, b.check_out, b.total_guests, b.total_amount, b.status, b.created_at`

func (r *BookingReadStore) FindViewByPublicID(ctx context.Context, publicID string) (*queries.BookingView, error) {
	return r.findView(ctx, `b.booking_id = $1`, publicID)
}

func (r *BookingReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return r.findView(ctx, `b.id = $1`, id)
}

func (r *BookingReadStore) findView(ctx context.Context, where string, arg any) (*queries.BookingView, error) {
	sql := `SELECT` + bookingViewColumns + `
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE ` + where

	var v queries.BookingView
	err := r.db.QueryRow(ctx, sql, arg).Scan(
		&v.ID, &v.BookingID, &v.UserID, &v.PropertyID,
		&v.PropertyName, &v.PropertyAddress,
		&v.CheckIn, &v.CheckOut, &v.TotalNights,
		&v.Guests, &v.Adults, &v.Children, &v.Pets,
		&v.ContactName, &v.ContactEmail, &v.ContactPhone, &v.ContactAddress,
		&v.PricePerNight, &v.Subtotal, &v.ServiceFee, &v.Discount, &v.TotalAmount,
		&v.Currency,
		&v.PaymentIntentID, &v.PaymentStatus, &v.LastFourDigits,
		&v.Status, &v.MessageToHost, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return &v, nil
}

func (r *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID, status *string, limit, offset int32) ([]*queries.BookingListItem, int64, error) {
	sql := `SELECT` + bookingListColumns + `, count(*) OVER() AS total
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.user_id = $1 AND ($2::text IS NULL OR b.status = $2)
		ORDER BY b.created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, sql, userID, status, limit, offset)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list user bookings", err)
	}
	return scanListItems(rows)
}

func (r *BookingReadStore) ListAll(ctx context.Context, filter queries.AdminBookingFilter, limit, offset int32) ([]*queries.BookingListItem, int64, error) {
	where := `WHERE true`
	args := []any{}

	appendCond := func(cond string, val any) {
		args = append(args, val)
		where += fmt.Sprintf(" AND "+cond, len(args))
	}

	if filter.Status != nil {
		appendCond("b.status = $%d", *filter.Status)
	}
	if filter.PropertyID != nil {
		appendCond("b.property_id = $%d", *filter.PropertyID)
	}
	if filter.From != nil {
		appendCond("b.check_in >= $%d", *filter.From)
	}
	if filter.To != nil {
		appendCond("b.check_in < $%d", *filter.To)
	}

	args = append(args, limit, offset)
	sql := fmt.Sprintf(`SELECT`+bookingListColumns+`, count(*) OVER() AS total
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		%s
		ORDER BY b.created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}
	return scanListItems(rows)
}

func (r *BookingReadStore) ListForHost(ctx context.Context, hostID uuid.UUID, limit, offset int32) ([]*queries.BookingListItem, int64, error) {
	sql := `SELECT` + bookingListColumns + `, count(*) OVER() AS total
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE p.host_id = $1
		ORDER BY b.check_in ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, sql, hostID, limit, offset)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list host bookings", err)
	}
	return scanListItems(rows)
}

func (r *BookingReadStore) FindByDay(ctx context.Context, day time.Time) (checkIns, checkOuts []*queries.BookingListItem, err error) {
	checkIns, _, err = r.listByCondition(ctx,
		`b.check_in = $1 AND b.status IN ('pending', 'confirmed')`, day)
	if err != nil {
		return nil, nil, err
	}

	checkOuts, _, err = r.listByCondition(ctx,
		`b.check_out = $1 AND b.status IN ('confirmed', 'completed')`, day)
	if err != nil {
		return nil, nil, err
	}
	return checkIns, checkOuts, nil
}

func (r *BookingReadStore) FindBetween(ctx context.Context, from, to time.Time) ([]*queries.BookingListItem, error) {
	items, _, err := r.listByCondition(ctx,
		`b.check_in >= $1 AND b.check_in < $2 AND b.status IN ('pending', 'confirmed')`, from, to)
	return items, err
}

func (r *BookingReadStore) listByCondition(ctx context.Context, cond string, args ...any) ([]*queries.BookingListItem, int64, error) {
	sql := `SELECT` + bookingListColumns + `, count(*) OVER() AS total
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE ` + cond + `
		ORDER BY b.check_in ASC, b.created_at ASC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}
	return scanListItems(rows)
}

func (r *BookingReadStore) Stats(ctx context.Context) (*queries.StatsView, error) {
	sql := `SELECT
		count(*),
		count(*) FILTER (WHERE status = 'pending'),
		count(*) FILTER (WHERE status = 'confirmed'),
		count(*) FILTER (WHERE status = 'cancelled'),
		count(*) FILTER (WHERE status = 'completed'),
		COALESCE(sum(total_amount) FILTER (WHERE status IN ('confirmed', 'completed')), 0)
	FROM bookings`

	var s queries.StatsView
	err := r.db.QueryRow(ctx, sql).Scan(&s.Total, &s.Pending, &s.Confirmed, &s.Cancelled, &s.Completed, &s.Revenue)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate booking stats", err)
	}
	return &s, nil
}

func (r *BookingReadStore) BookedRanges(ctx context.Context, propertyID uuid.UUID, from time.Time) ([]*queries.BookedRangeView, error) {
	sql := `SELECT check_in, check_out, status
		FROM bookings
		WHERE property_id = $1 AND status IN ('pending', 'confirmed') AND check_out > $2
		ORDER BY check_in ASC`

	rows, err := r.db.Query(ctx, sql, propertyID, from)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booked ranges", err)
	}
	defer rows.Close()

	var result []*queries.BookedRangeView
	for rows.Next() {
		var v queries.BookedRangeView
		if err := rows.Scan(&v.CheckIn, &v.CheckOut, &v.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked range", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booked ranges", err)
	}
	return result, nil
}

// ExistsOverlap answers the advisory availability check. Only pending and
// confirmed bookings block dates; daterange comparison keeps the predicate
// identical to the exclusion constraint.
func (r *BookingReadStore) ExistsOverlap(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	sql := `SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE property_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND daterange(check_in, check_out) && daterange($2::date, $3::date)
	)`

	var exists bool
	err := r.db.QueryRow(ctx, sql, propertyID, checkIn, checkOut).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check date overlap", err)
	}
	return exists, nil
}

func scanListItems(rows pgx.Rows) ([]*queries.BookingListItem, int64, error) {
	defer rows.Close()

	var (
		result []*queries.BookingListItem
		total  int64
	)
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID, &item.BookingID, &item.PropertyID, &item.PropertyName, &item.GuestName,
			&item.CheckIn, &item.CheckOut, &item.Guests, &item.TotalAmount, &item.Status, &item.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return result, total, nil
}
