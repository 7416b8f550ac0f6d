package booking

import (
	"strings"
	"time"
)

// StayRange is a half-open calendar interval [checkIn, checkOut).
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	if !checkIn.Before(checkOut) {
		return StayRange{}, ErrInvalidStayRange
	}
	return StayRange{checkIn: checkIn, checkOut: checkOut}, nil
}

func (r StayRange) CheckIn() time.Time {
	return r.checkIn
}

func (r StayRange) CheckOut() time.Time {
	return r.checkOut
}

// Overlaps implements the half-open interval predicate: [a,b) and [c,d)
// overlap iff a < d && c < b. Adjacent ranges (b == c) do not overlap, so
// back-to-back stays are permitted.
func (r StayRange) Overlaps(other StayRange) bool {
	return r.checkIn.Before(other.checkOut) && other.checkIn.Before(r.checkOut)
}

// Nights is the ceiling of whole days between check-in and check-out.
// A valid range always yields at least 1.
func (r StayRange) Nights() int {
	d := r.checkOut.Sub(r.checkIn)
	nights := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}

// ValidateNotPast rejects check-ins strictly before today's midnight.
func (r StayRange) ValidateNotPast(todayMidnight time.Time) error {
	if r.checkIn.Before(todayMidnight) {
		return ErrCheckInPast
	}
	return nil
}

type GuestCount struct {
	total    int
	adults   int
	children int
	pets     int
}

func NewGuestCount(total, adults, children, pets int) (GuestCount, error) {
	if total < 1 || adults < 1 || children < 0 || pets < 0 {
		return GuestCount{}, ErrInvalidGuestCount
	}
	return GuestCount{total: total, adults: adults, children: children, pets: pets}, nil
}

func (g GuestCount) Total() int    { return g.total }
func (g GuestCount) Adults() int   { return g.adults }
func (g GuestCount) Children() int { return g.children }
func (g GuestCount) Pets() int     { return g.pets }

// ContactInfo is snapshotted at booking time and immutable afterwards.
type ContactInfo struct {
	FullName string
	Email    string
	Phone    string
	Address  string
}

func NewContactInfo(fullName, email, phone, address string) (ContactInfo, error) {
	info := ContactInfo{
		FullName: strings.TrimSpace(fullName),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Phone:    strings.TrimSpace(phone),
		Address:  strings.TrimSpace(address),
	}
	if info.FullName == "" || info.Email == "" || info.Phone == "" || info.Address == "" {
		return ContactInfo{}, ErrMissingContactInfo
	}
	return info, nil
}

// PaymentInfo is a snapshot of the simulated payment.
type PaymentInfo struct {
	IntentID       string
	Status         PaymentStatus
	LastFourDigits string
	PaidAt         time.Time
}
