package booking

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"

	"stayhub/internal/domain/property"
	"stayhub/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clk clock.Clock) *Factory {
	return &Factory{Clock: clk}
}

// CreateBooking validates the stay against the current date, prices it with
// the property's rate and threshold, and snapshots a simulated payment. The
// availability check is the caller's responsibility; the store's exclusion
// constraint backstops it at write time.
func (f *Factory) CreateBooking(
	prop *property.Property,
	userID uuid.UUID,
	stay StayRange,
	guests GuestCount,
	contact ContactInfo,
	paymentIntentID, lastFourDigits, messageToHost string,
) (*Booking, error) {
	now := f.Clock.Now()

	// Request dates parse as UTC midnights, so the boundary day is computed
	// in UTC too; the server's own timezone must not shift it.
	if err := stay.ValidateNotPast(clock.Midnight(now.UTC())); err != nil {
		return nil, err
	}

	pricing := ComputePricing(prop.PricePerNight(), stay.CheckIn(), stay.CheckOut(), prop.DiscountThreshold())

	if paymentIntentID == "" {
		paymentIntentID = fmt.Sprintf("pi_fake_%d", now.UnixMilli())
	}
	if lastFourDigits == "" {
		lastFourDigits = "4242"
	}

	return &Booking{
		id:         uuid.New(),
		publicID:   NewPublicID(now),
		userID:     userID,
		propertyID: prop.ID(),
		stay:       stay,
		guests:     guests,
		contact:    contact,
		pricing:    pricing,
		payment: PaymentInfo{
			IntentID:       paymentIntentID,
			Status:         PaymentSucceeded,
			LastFourDigits: lastFourDigits,
			PaidAt:         now,
		},
		status:        StatusConfirmed,
		messageToHost: messageToHost,
	}, nil
}

const publicIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewPublicID builds a human-shareable booking reference:
// BK-<base36 millisecond timestamp>-<6 random base36 chars>. Collisions are
// negligible and caught by the unique index on insert regardless.
func NewPublicID(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// Timestamp alone still identifies the booking well enough.
		return fmt.Sprintf("BK-%s-%06d", ts, now.Nanosecond()%1000000)
	}
	suffix := make([]byte, 6)
	for i, b := range buf {
		suffix[i] = publicIDAlphabet[int(b)%len(publicIDAlphabet)]
	}
	return fmt.Sprintf("BK-%s-%s", ts, suffix)
}
