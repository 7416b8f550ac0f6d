package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStayRange   = errors.New("check-out must be strictly after check-in")
	ErrCheckInPast        = errors.New("check-in date cannot be in the past")
	ErrInvalidGuestCount  = errors.New("invalid guest count")
	ErrMissingContactInfo = errors.New("contact info is incomplete")
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrAlreadyCancelled   = errors.New("booking is already cancelled")
	ErrInvalidTransition  = errors.New("invalid booking status transition")
	ErrTooLateToCancel    = errors.New("less than the cancellation window remains before check-in")
)

type Booking struct {
	id            uuid.UUID
	publicID      string
	userID        uuid.UUID
	propertyID    uuid.UUID
	stay          StayRange
	guests        GuestCount
	contact       ContactInfo
	pricing       Breakdown
	payment       PaymentInfo
	status        Status
	messageToHost string
	createdAt     time.Time
	updatedAt     time.Time
}

func ReconstructBooking(
	id uuid.UUID,
	publicID string,
	userID, propertyID uuid.UUID,
	stay StayRange,
	guests GuestCount,
	contact ContactInfo,
	pricing Breakdown,
	payment PaymentInfo,
	status Status,
	messageToHost string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		publicID:      publicID,
		userID:        userID,
		propertyID:    propertyID,
		stay:          stay,
		guests:        guests,
		contact:       contact,
		pricing:       pricing,
		payment:       payment,
		status:        status,
		messageToHost: messageToHost,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Cancel transitions an active booking to cancelled. Admins bypass the
// cancellation window; terminal states reject any transition.
func (b *Booking) Cancel(now time.Time, byAdmin bool, window time.Duration) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if b.status == StatusCompleted {
		return ErrInvalidTransition
	}
	// Exactly the window remaining still counts as outside it.
	if !byAdmin && b.stay.CheckIn().Sub(now) < window {
		return ErrTooLateToCancel
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

// ShouldComplete reports whether the lazy sweep must mark this booking
// completed: confirmed, with check-out strictly before today's midnight.
func (b *Booking) ShouldComplete(todayMidnight time.Time) bool {
	return b.status == StatusConfirmed && b.stay.CheckOut().Before(todayMidnight)
}

func (b *Booking) Complete(todayMidnight time.Time) error {
	if !b.ShouldComplete(todayMidnight) {
		return ErrInvalidTransition
	}
	b.status = StatusCompleted
	return nil
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) PublicID() string      { return b.publicID }
func (b *Booking) UserID() uuid.UUID     { return b.userID }
func (b *Booking) PropertyID() uuid.UUID { return b.propertyID }
func (b *Booking) Stay() StayRange       { return b.stay }
func (b *Booking) Guests() GuestCount    { return b.guests }
func (b *Booking) Contact() ContactInfo  { return b.contact }
func (b *Booking) Pricing() Breakdown    { return b.pricing }
func (b *Booking) Payment() PaymentInfo  { return b.payment }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) MessageToHost() string { return b.messageToHost }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
