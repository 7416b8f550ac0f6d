package builder

import (
	"time"

	"stayhub/internal/domain/booking"

	"github.com/google/uuid"
)

// BookingBuilder assembles a confirmed booking ten days out for two guests,
// mirroring the most common fixture shape in the handler and usecase tests.
type BookingBuilder struct {
	ID         uuid.UUID
	PublicID   string
	UserID     uuid.UUID
	PropertyID uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	Status     booking.Status
	Rate       float64
	Threshold  int
	Now        time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:         uuid.New(),
		PublicID:   booking.NewPublicID(now),
		UserID:     uuid.New(),
		PropertyID: uuid.New(),
		CheckIn:    time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC),
		Status:     booking.StatusConfirmed,
		Rate:       100,
		Threshold:  7,
		Now:        now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut time.Time) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	stay, err := booking.NewStayRange(b.CheckIn, b.CheckOut)
	if err != nil {
		return nil, err
	}
	guests, err := booking.NewGuestCount(2, 2, 0, 0)
	if err != nil {
		return nil, err
	}
	contact, err := booking.NewContactInfo("Jane Guest", "jane@example.com", "+15550100", "1 Main St")
	if err != nil {
		return nil, err
	}
	pricing := booking.ComputePricing(b.Rate, b.CheckIn, b.CheckOut, b.Threshold)
	payment := booking.PaymentInfo{
		IntentID:       "pi_fake_test",
		Status:         booking.PaymentSucceeded,
		LastFourDigits: "4242",
		PaidAt:         b.Now,
	}
	return booking.ReconstructBooking(
		b.ID, b.PublicID, b.UserID, b.PropertyID,
		stay, guests, contact, pricing, payment,
		b.Status, "", b.Now, b.Now,
	), nil
}
