package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookingView represents the full read model for a single booking.
type BookingView struct {
	ID              uuid.UUID `json:"id"`
	BookingID       string    `json:"booking_id"`
	UserID          uuid.UUID `json:"user_id"`
	PropertyID      uuid.UUID `json:"property_id"`
	PropertyName    string    `json:"property_name"`
	PropertyAddress string    `json:"property_address"`
	CheckIn         time.Time `json:"check_in"`
	CheckOut        time.Time `json:"check_out"`
	TotalNights     int       `json:"total_nights"`
	Guests          int       `json:"guests"`
	Adults          int       `json:"adults"`
	Children        int       `json:"children"`
	Pets            int       `json:"pets"`
	ContactName     string    `json:"contact_name"`
	ContactEmail    string    `json:"contact_email"`
	ContactPhone    string    `json:"contact_phone"`
	ContactAddress  string    `json:"contact_address"`
	PricePerNight   float64   `json:"price_per_night"`
	Subtotal        float64   `json:"subtotal"`
	ServiceFee      float64   `json:"service_fee"`
	Discount        float64   `json:"discount"`
	TotalAmount     float64   `json:"total_amount"`
	Currency        string    `json:"currency"`
	PaymentIntentID string    `json:"payment_intent_id"`
	PaymentStatus   string    `json:"payment_status"`
	LastFourDigits  string    `json:"last_four_digits"`
	Status          string    `json:"status"`
	MessageToHost   string    `json:"message_to_host,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID           uuid.UUID `json:"id"`
	BookingID    string    `json:"booking_id"`
	PropertyID   uuid.UUID `json:"property_id"`
	PropertyName string    `json:"property_name"`
	GuestName    string    `json:"guest_name"`
	CheckIn      time.Time `json:"check_in"`
	CheckOut     time.Time `json:"check_out"`
	Guests       int       `json:"guests"`
	TotalAmount  float64   `json:"total_amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// BookingPage is the page/limit pagination envelope for booking lists.
type BookingPage struct {
	Items []*BookingListItem `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

func (p *BookingPage) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}

// TodayView groups today's arrivals and departures for the admin dashboard.
type TodayView struct {
	CheckIns  []*BookingListItem `json:"check_ins"`
	CheckOuts []*BookingListItem `json:"check_outs"`
}

// StatsView aggregates booking counts and recognized revenue.
type StatsView struct {
	Total     int64   `json:"total"`
	Pending   int64   `json:"pending"`
	Confirmed int64   `json:"confirmed"`
	Cancelled int64   `json:"cancelled"`
	Completed int64   `json:"completed"`
	Revenue   float64 `json:"revenue"`
}

// BookedRangeView is one occupied interval of a property's calendar.
// CheckOut is exclusive: the check-out day itself is open for new stays.
type BookedRangeView struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
	Status   string    `json:"status"`
}

type SessionView struct {
	ID         uuid.UUID `json:"id"`
	Device     string    `json:"device"`
	Browser    string    `json:"browser"`
	IP         string    `json:"ip,omitempty"`
	LastActive time.Time `json:"last_active"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	Current    bool      `json:"current"`
}

// SessionRecord carries the columns authentication needs; it deliberately
// excludes presentation fields.
type SessionRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	LastActive time.Time
	ExpiresAt  time.Time
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// UserPage is the pagination envelope for the admin account listing.
type UserPage struct {
	Items []*AuthorizedUserView `json:"items"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

func (p *UserPage) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}

type PropertyView struct {
	ID                uuid.UUID `json:"id"`
	HostID            uuid.UUID `json:"host_id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	PricePerNight     float64   `json:"price_per_night"`
	Currency          string    `json:"currency"`
	DiscountThreshold int       `json:"discount_threshold_nights"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
