package response

import (
	"time"

	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// BookingResponse serializes calendar dates as date-only strings; only
// timestamps keep the full RFC 3339 form.
type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	BookingID       string    `json:"booking_id"`
	PropertyID      uuid.UUID `json:"property_id"`
	PropertyName    string    `json:"property_name"`
	PropertyAddress string    `json:"property_address"`
	CheckIn         string    `json:"check_in"`
	CheckOut        string    `json:"check_out"`
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
	PaymentStatus   string    `json:"payment_status"`
	LastFourDigits  string    `json:"last_four_digits"`
	Status          string    `json:"status"`
	MessageToHost   string    `json:"message_to_host,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              v.ID,
		BookingID:       v.BookingID,
		PropertyID:      v.PropertyID,
		PropertyName:    v.PropertyName,
		PropertyAddress: v.PropertyAddress,
		CheckIn:         v.CheckIn.Format(dateLayout),
		CheckOut:        v.CheckOut.Format(dateLayout),
		TotalNights:     v.TotalNights,
		Guests:          v.Guests,
		Adults:          v.Adults,
		Children:        v.Children,
		Pets:            v.Pets,
		ContactName:     v.ContactName,
		ContactEmail:    v.ContactEmail,
		ContactPhone:    v.ContactPhone,
		ContactAddress:  v.ContactAddress,
		PricePerNight:   v.PricePerNight,
		Subtotal:        v.Subtotal,
		ServiceFee:      v.ServiceFee,
		Discount:        v.Discount,
		TotalAmount:     v.TotalAmount,
		Currency:        v.Currency,
		PaymentStatus:   v.PaymentStatus,
		LastFourDigits:  v.LastFourDigits,
		Status:          v.Status,
		MessageToHost:   v.MessageToHost,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

type BookingListItemResponse struct {
	ID           uuid.UUID `json:"id"`
	BookingID    string    `json:"booking_id"`
	PropertyID   uuid.UUID `json:"property_id"`
	PropertyName string    `json:"property_name"`
	GuestName    string    `json:"guest_name"`
	CheckIn      string    `json:"check_in"`
	CheckOut     string    `json:"check_out"`
	Guests       int       `json:"guests"`
	TotalAmount  float64   `json:"total_amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromBookingListItem(v *queries.BookingListItem) *BookingListItemResponse {
	return &BookingListItemResponse{
		ID:           v.ID,
		BookingID:    v.BookingID,
		PropertyID:   v.PropertyID,
		PropertyName: v.PropertyName,
		GuestName:    v.GuestName,
		CheckIn:      v.CheckIn.Format(dateLayout),
		CheckOut:     v.CheckOut.Format(dateLayout),
		Guests:       v.Guests,
		TotalAmount:  v.TotalAmount,
		Status:       v.Status,
		CreatedAt:    v.CreatedAt,
	}
}

type BookingPageResponse struct {
	Items      []*BookingListItemResponse `json:"items"`
	Total      int64                      `json:"total"`
	Page       int                        `json:"page"`
	Limit      int                        `json:"limit"`
	TotalPages int                        `json:"total_pages"`
}

func FromBookingPage(p *queries.BookingPage) *BookingPageResponse {
	items := make([]*BookingListItemResponse, len(p.Items))
	for i, item := range p.Items {
		items[i] = FromBookingListItem(item)
	}
	return &BookingPageResponse{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages(),
	}
}

type TodayResponse struct {
	CheckIns  []*BookingListItemResponse `json:"check_ins"`
	CheckOuts []*BookingListItemResponse `json:"check_outs"`
}

func FromTodayView(v *queries.TodayView) *TodayResponse {
	resp := &TodayResponse{
		CheckIns:  make([]*BookingListItemResponse, len(v.CheckIns)),
		CheckOuts: make([]*BookingListItemResponse, len(v.CheckOuts)),
	}
	for i, item := range v.CheckIns {
		resp.CheckIns[i] = FromBookingListItem(item)
	}
	for i, item := range v.CheckOuts {
		resp.CheckOuts[i] = FromBookingListItem(item)
	}
	return resp
}

type BookedRangeResponse struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Status   string `json:"status"`
}

func FromBookedRanges(ranges []*queries.BookedRangeView) []*BookedRangeResponse {
	result := make([]*BookedRangeResponse, len(ranges))
	for i, r := range ranges {
		result[i] = &BookedRangeResponse{
			CheckIn:  r.CheckIn.Format(dateLayout),
			CheckOut: r.CheckOut.Format(dateLayout),
			Status:   r.Status,
		}
	}
	return result
}

type AvailabilityResponse struct {
	PropertyID uuid.UUID `json:"property_id"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Available  bool      `json:"available"`
}
