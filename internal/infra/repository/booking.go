package repository

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (
    id, booking_id, user_id, property_id,
    check_in, check_out,
    total_guests, adults, children, pets,
    contact_full_name, contact_email, contact_phone, contact_address,
    price_per_night, total_nights, subtotal, service_fee, discount, total_amount,
    payment_intent_id, payment_status, last_four_digits, payment_date,
    status, message_to_host
) VALUES (
    $1, $2, $3, $4,
    $5, $6,
    $7, $8, $9, $10,
    $11, $12, $13, $14,
    $15, $16, $17, $18, $19, $20,
    $21, $22, $23, $24,
    $25, $26
)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingSQL,
		b.ID(), b.PublicID(), b.UserID(), b.PropertyID(),
		b.Stay().CheckIn(), b.Stay().CheckOut(),
		b.Guests().Total(), b.Guests().Adults(), b.Guests().Children(), b.Guests().Pets(),
		b.Contact().FullName, b.Contact().Email, b.Contact().Phone, b.Contact().Address,
		b.Pricing().PricePerNight, b.Pricing().TotalNights, b.Pricing().Subtotal,
		b.Pricing().ServiceFee, b.Pricing().Discount, b.Pricing().TotalAmount,
		b.Payment().IntentID, string(b.Payment().Status), b.Payment().LastFourDigits, b.Payment().PaidAt,
		string(b.Status()), b.MessageToHost(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err, infra.KindFromPgError(err))
	}
	return id, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error {
	tag, err := tx.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err, infra.KindFromPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) CompleteBefore(ctx context.Context, tx db.DBTX, day time.Time) (int64, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE bookings SET status = 'completed', updated_at = now()
		 WHERE status = 'confirmed' AND check_out < $1`,
		day,
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to complete expired bookings", err, infra.KindFromPgError(err))
	}
	return tag.RowsAffected(), nil
}
