//go:build e2e

package booking_test

import (
	"net/http"
	"testing"
	"time"

	"stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/tests/common/dbtest"
	"stayhub/tests/common/httptest"
	"stayhub/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	bookingsURL = "/api/bookings"
)

type bookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) loginAs(email, password string) string {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
		request.LoginRequest{Email: email, Password: password}, "")

	var res resdto.LoginResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
	return res.Token
}

func (s *bookingSuite) registerGuest(email string) string {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL,
		request.RegisterRequest{Name: "Guest User", Email: email, Password: "password123"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return s.loginAs(email, "password123")
}

func futureDate(daysAhead int) string {
	return time.Now().AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func bookingRequest(checkInDays, nights int) request.CreateBookingRequest {
	return request.CreateBookingRequest{
		PropertyID:     dbtest.SeedPropertyID,
		CheckIn:        futureDate(checkInDays),
		CheckOut:       futureDate(checkInDays + nights),
		Guests:         2,
		Adults:         2,
		ContactName:    "Jane Guest",
		ContactEmail:   "jane@example.com",
		ContactPhone:   "+15550100",
		ContactAddress: "1 Main St",
	}
}

func (s *bookingSuite) createBooking(token string, req request.CreateBookingRequest) resdto.BookingResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, req, token)

	var res resdto.BookingResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
	require.NotEmpty(t, res.BookingID)
	return res
}

func (s *bookingSuite) TestCreateBooking() {
	s.Run("create prices the stay and confirms immediately", func() {
		t := s.T()
		token := s.registerGuest("guest@example.com")

		res := s.createBooking(token, bookingRequest(10, 3))

		require.Equal(t, "confirmed", res.Status)
		require.Equal(t, 3, res.TotalNights)
		require.InDelta(t, 300.0, res.Subtotal, 0.001)
		require.InDelta(t, 45.0, res.ServiceFee, 0.001)
		require.Zero(t, res.Discount)
		require.InDelta(t, 345.0, res.TotalAmount, 0.001)
		require.Equal(t, "succeeded", res.PaymentStatus)
	})

	s.Run("long stays earn the discount", func() {
		t := s.T()
		token := s.registerGuest("guest@example.com")

		res := s.createBooking(token, bookingRequest(10, 7))

		require.InDelta(t, 700.0, res.Subtotal, 0.001)
		require.InDelta(t, 70.0, res.Discount, 0.001, "10%% off at the threshold")
	})

	s.Run("overlapping dates conflict, back-to-back do not", func() {
		t := s.T()
		token := s.registerGuest("guest@example.com")

		s.createBooking(token, bookingRequest(10, 3))

		// Overlaps days 11-12
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, bookingRequest(11, 3), token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		// Other guests collide too
		otherToken := s.registerGuest("other@example.com")
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, bookingRequest(12, 2), otherToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		// Check-in on the previous check-out day is fine
		s.createBooking(otherToken, bookingRequest(13, 2))
	})

	s.Run("cancelled bookings free the dates", func() {
		t := s.T()
		token := s.registerGuest("guest@example.com")

		first := s.createBooking(token, bookingRequest(10, 3))

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+first.BookingID+"/cancel", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		s.createBooking(token, bookingRequest(10, 3))
	})

	s.Run("past check-in and unknown property are rejected", func() {
		t := s.T()
		token := s.registerGuest("guest@example.com")

		past := bookingRequest(10, 3)
		past.CheckIn = time.Now().AddDate(0, 0, -2).Format("2006-01-02")
		past.CheckOut = futureDate(1)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, past, token)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

		unknown := bookingRequest(10, 3)
		unknown.PropertyID = uuid.New()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, unknown, token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})

	s.Run("auth is required", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, bookingRequest(10, 3), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *bookingSuite) TestReadScoping() {
	s.Run("guests only see their own bookings, admins see all", func() {
		t := s.T()
		guestToken := s.registerGuest("guest@example.com")
		otherToken := s.registerGuest("other@example.com")
		adminToken := s.loginAs(dbtest.SeedAdminEmail, dbtest.SeedPassword)

		created := s.createBooking(guestToken, bookingRequest(10, 3))
		url := bookingsURL + "/" + created.BookingID

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, guestToken)
		require.Equal(t, http.StatusOK, w.Code)

		// Hidden, not forbidden
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, otherToken)
		require.Equal(t, http.StatusNotFound, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)
	})

	s.Run("list is paginated per user", func() {
		t := s.T()
		token := s.registerGuest("guest@example.com")

		s.createBooking(token, bookingRequest(10, 2))
		s.createBooking(token, bookingRequest(20, 2))
		s.createBooking(token, bookingRequest(30, 2))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?page=1&limit=2", nil, token)
		var page resdto.BookingPageResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		require.Len(t, page.Items, 2)
		require.Equal(t, int64(3), page.Total)
		require.Equal(t, 2, page.TotalPages)
	})

	s.Run("admin endpoints refuse regular users", func() {
		t := s.T()
		token := s.registerGuest("guest@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/admin/bookings", nil, token)
		require.Equal(t, http.StatusForbidden, w.Code)

		adminToken := s.loginAs(dbtest.SeedAdminEmail, dbtest.SeedPassword)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/admin/bookings", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func (s *bookingSuite) TestCancellationRules() {
	s.Run("owner cannot cancel inside the window, admin can", func() {
		t := s.T()
		token := s.registerGuest("guest@example.com")

		// Tomorrow is inside the 24h default window
		created := s.createBooking(token, bookingRequest(1, 2))
		url := bookingsURL + "/" + created.BookingID + "/cancel"

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url, nil, token)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

		adminToken := s.loginAs(dbtest.SeedAdminEmail, dbtest.SeedPassword)
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, url, nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Second cancel is a 400
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, url, nil, adminToken)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	s.Run("cancelling someone else's booking looks absent", func() {
		t := s.T()
		token := s.registerGuest("guest@example.com")
		otherToken := s.registerGuest("other@example.com")

		created := s.createBooking(token, bookingRequest(10, 2))

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+created.BookingID+"/cancel", nil, otherToken)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func (s *bookingSuite) TestAvailabilityAndCalendar() {
	s.Run("availability flips once a booking lands", func() {
		t := s.T()
		base := "/api/properties/" + dbtest.SeedPropertyID.String() + "/availability"
		query := "?check_in=" + futureDate(10) + "&check_out=" + futureDate(13)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, base+query, nil, "")
		var avail resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &avail)
		require.True(t, avail.Available)

		token := s.registerGuest("guest@example.com")
		s.createBooking(token, bookingRequest(10, 3))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, base+query, nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &avail)
		require.False(t, avail.Available)
	})

	s.Run("booked-dates exposes ranges without guest details", func() {
		t := s.T()
		token := s.registerGuest("guest@example.com")
		s.createBooking(token, bookingRequest(10, 3))

		url := "/api/properties/" + dbtest.SeedPropertyID.String() + "/booked-dates"
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")

		var ranges []*resdto.BookedRangeResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &ranges)
		require.Len(t, ranges, 1)
		require.Equal(t, futureDate(10), ranges[0].CheckIn)
		require.Equal(t, "confirmed", ranges[0].Status)
	})
}

func (s *bookingSuite) TestLazySweep() {
	s.Run("confirmed bookings past check-out complete on the next read", func() {
		t := s.T()
		token := s.registerGuest("guest@example.com")

		created := s.createBooking(token, bookingRequest(10, 2))

		// Age the stay below today's midnight
		_, err := s.DB.Exec(t.Context(), `
			UPDATE bookings
			SET check_in = current_date - 5, check_out = current_date - 3
			WHERE booking_id = $1`, created.BookingID)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			bookingsURL+"/"+created.BookingID, nil, token)
		var res resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		require.Equal(t, "completed", res.Status)
	})
}
