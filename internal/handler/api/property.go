package api

import (
	"errors"
	"net/http"

	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PropertyHandler serves the read-only property catalog. Listings are
// managed out of band; this API only books against them.
type PropertyHandler struct {
	propertyQueries queries.PropertyQueries
	bookingQueries  queries.BookingQueries
}

func NewPropertyHandler(propertyQueries queries.PropertyQueries, bookingQueries queries.BookingQueries) *PropertyHandler {
	return &PropertyHandler{
		propertyQueries: propertyQueries,
		bookingQueries:  bookingQueries,
	}
}

// @Summary List properties
// @Description List bookable properties
// @Tags properties
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.PropertyListResponse
// @Router /properties [get]
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	page, limit := pageParams(c)

	views, total, err := h.propertyQueries.List(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromPropertyViews(views, total))
}

// @Summary Get property
// @Description Get a property by ID
// @Tags properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} resdto.PropertyResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /properties/{id} [get]
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID format"})
		return
	}

	view, err := h.propertyQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrPropertyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromPropertyView(view))
}

// @Summary Host bookings
// @Description List bookings across the current user's properties
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.BookingPageResponse
// @Failure 401 {object} map[string]string
// @Router /host/bookings [get]
func (h *PropertyHandler) HostBookings(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	page, limit := pageParams(c)
	result, err := h.bookingQueries.ListForHost(c.Request.Context(), principal.UserID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingPage(result))
}
