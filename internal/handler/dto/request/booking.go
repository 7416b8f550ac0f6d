package request

import (
	"strings"
	"time"

	"stayhub/internal/domain/booking"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	PropertyID     uuid.UUID `json:"property_id" binding:"required"`
	CheckIn        string    `json:"check_in" binding:"required"`
	CheckOut       string    `json:"check_out" binding:"required"`
	Guests         int       `json:"guests" binding:"required"`
	Adults         int       `json:"adults" binding:"required"`
	Children       int       `json:"children"`
	Pets           int       `json:"pets"`
	ContactName    string    `json:"contact_name" binding:"required"`
	ContactEmail   string    `json:"contact_email" binding:"required"`
	ContactPhone   string    `json:"contact_phone" binding:"required"`
	ContactAddress string    `json:"contact_address" binding:"required"`
	MessageToHost  *string   `json:"message_to_host,omitempty"`
}

// BookingData carries the validated domain values of a create request.
type BookingData struct {
	PropertyID    uuid.UUID
	Stay          booking.StayRange
	Guests        booking.GuestCount
	Contact       booking.ContactInfo
	MessageToHost string
}

func (r CreateBookingRequest) ToDomain() (*BookingData, error) {
	stay, err := parseStay(r.CheckIn, r.CheckOut)
	if err != nil {
		return nil, err
	}

	guests, err := booking.NewGuestCount(r.Guests, r.Adults, r.Children, r.Pets)
	if err != nil {
		return nil, err
	}

	contact, err := booking.NewContactInfo(r.ContactName, r.ContactEmail, r.ContactPhone, r.ContactAddress)
	if err != nil {
		return nil, err
	}

	message := ""
	if r.MessageToHost != nil {
		message = strings.TrimSpace(*r.MessageToHost)
	}

	return &BookingData{
		PropertyID:    r.PropertyID,
		Stay:          stay,
		Guests:        guests,
		Contact:       contact,
		MessageToHost: message,
	}, nil
}

func parseStay(checkIn, checkOut string) (booking.StayRange, error) {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return booking.StayRange{}, booking.ErrInvalidStayRange
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return booking.StayRange{}, booking.ErrInvalidStayRange
	}
	return booking.NewStayRange(in, out)
}

// ParseDate parses a date-only query parameter.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
