package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"stayhub/internal/domain/booking"
	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Book a property for a date range
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.bookingCommands.Create(c.Request.Context(), principal, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrPropertyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		case errors.Is(err, commands.ErrBookingConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Dates conflict with an existing booking"})
		case errors.Is(err, booking.ErrCheckInPast):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Check-in date cannot be in the past"})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get a booking by its shareable reference
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking reference"
// @Success 200 {object} resdto.BookingResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.sweepExpired(c)

	view, err := h.bookingQueries.GetByID(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		if errors.Is(err, queries.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List my bookings
// @Description List the current user's bookings, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.BookingPageResponse
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.sweepExpired(c)

	page, limit := pageParams(c)
	status := statusParam(c)

	result, err := h.bookingQueries.ListByUser(c.Request.Context(), principal.UserID, status, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingPage(result))
}

// @Summary Cancel booking
// @Description Cancel a booking while the cancellation window allows it
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking reference"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/cancel [patch]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	err := h.bookingCommands.Cancel(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, booking.ErrAlreadyCancelled):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Booking is already cancelled"})
		case errors.Is(err, booking.ErrTooLateToCancel):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Too late to cancel this booking"})
		case errors.Is(err, booking.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Booking can no longer be cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

// @Summary Check availability
// @Description Check whether a property is free for a date range
// @Tags properties
// @Produce json
// @Param id path string true "Property ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /properties/{id}/availability [get]
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID format"})
		return
	}

	checkIn, err := reqdto.ParseDate(c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check_in date"})
		return
	}
	checkOut, err := reqdto.ParseDate(c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid check_out date"})
		return
	}

	available, err := h.bookingCommands.CheckAvailability(c.Request.Context(), propertyID, checkIn, checkOut)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrPropertyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		PropertyID: propertyID,
		CheckIn:    c.Query("check_in"),
		CheckOut:   c.Query("check_out"),
		Available:  available,
	})
}

// @Summary Booked dates
// @Description List occupied date ranges of a property
// @Tags properties
// @Produce json
// @Param id path string true "Property ID"
// @Param from query string false "Earliest date to include (YYYY-MM-DD)"
// @Success 200 {array} resdto.BookedRangeResponse
// @Failure 400 {object} map[string]string
// @Router /properties/{id}/booked-dates [get]
func (h *BookingHandler) BookedDates(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID format"})
		return
	}

	var from time.Time
	if raw := c.Query("from"); raw != "" {
		from, err = reqdto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return
		}
	}

	ranges, err := h.bookingQueries.BookedDates(c.Request.Context(), propertyID, from)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookedRanges(ranges))
}

// @Summary List all bookings
// @Description Admin listing across all users with optional filters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param property_id query string false "Filter by property"
// @Param from query string false "Check-in on or after (YYYY-MM-DD)"
// @Param to query string false "Check-in before (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.BookingPageResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/bookings [get]
func (h *BookingHandler) ListAllBookings(c *gin.Context) {
	h.sweepExpired(c)

	filter, err := adminFilterParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, limit := pageParams(c)
	result, err := h.bookingQueries.ListAll(c.Request.Context(), filter, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingPage(result))
}

// @Summary Today's movements
// @Description Admin view of today's check-ins and check-outs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.TodayResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/bookings/today [get]
func (h *BookingHandler) TodayBookings(c *gin.Context) {
	h.sweepExpired(c)

	view, err := h.bookingQueries.Today(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTodayView(view))
}

// @Summary Upcoming bookings
// @Description Admin view of check-ins over the next days
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param days query int false "Days ahead (default 7)"
// @Success 200 {array} resdto.BookingListItemResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/bookings/upcoming [get]
func (h *BookingHandler) UpcomingBookings(c *gin.Context) {
	h.sweepExpired(c)

	days, _ := strconv.Atoi(c.Query("days"))
	items, err := h.bookingQueries.Upcoming(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	result := make([]*resdto.BookingListItemResponse, len(items))
	for i, item := range items {
		result[i] = resdto.FromBookingListItem(item)
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Booking stats
// @Description Admin aggregate of booking counts and revenue
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.StatsView
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/bookings/stats [get]
func (h *BookingHandler) BookingStats(c *gin.Context) {
	h.sweepExpired(c)

	stats, err := h.bookingQueries.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// sweepExpired runs the lazy completion pass. Failures only get logged: a
// stale status must not break a read.
func (h *BookingHandler) sweepExpired(c *gin.Context) {
	if _, err := h.bookingCommands.CompleteExpired(c.Request.Context()); err != nil {
		slog.Warn("failed to sweep expired bookings", "error", err.Error())
	}
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page"))
	limit, _ = strconv.Atoi(c.Query("limit"))
	return page, limit
}

func statusParam(c *gin.Context) *string {
	raw := c.Query("status")
	if raw == "" {
		return nil
	}
	return &raw
}

func adminFilterParams(c *gin.Context) (queries.AdminBookingFilter, error) {
	filter := queries.AdminBookingFilter{Status: statusParam(c)}

	if raw := c.Query("property_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid property_id format")
		}
		filter.PropertyID = &id
	}
	if raw := c.Query("from"); raw != "" {
		from, err := reqdto.ParseDate(raw)
		if err != nil {
			return filter, errors.New("invalid from date")
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := reqdto.ParseDate(raw)
		if err != nil {
			return filter, errors.New("invalid to date")
		}
		filter.To = &to
	}
	return filter, nil
}
