package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nilgiri-travels/service-booking/internal/application"
	"github.com/nilgiri-travels/service-booking/internal/response"
)

// BookingHandler handles the public booking endpoints: quotes, booking
// submission and the status page lookup.
type BookingHandler struct {
	bookings *application.BookingService
	pricing  *application.PricingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookings *application.BookingService, pricing *application.PricingService) *BookingHandler {
	return &BookingHandler{bookings: bookings, pricing: pricing}
}

// RegisterRoutes registers the public booking routes on the given group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/quotes", h.Quote)

	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.GetCustomerBookings)
		bookings.GET("/:number", h.GetBookingByNumber)
	}
}

// Quote handles POST /api/v1/quotes.
func (h *BookingHandler) Quote(c *gin.Context) {
	var req application.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.pricing.Quote(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.bookings.CreateBooking(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetBookingByNumber handles GET /api/v1/bookings/:number, the status page
// lookup.
func (h *BookingHandler) GetBookingByNumber(c *gin.Context) {
	result, err := h.bookings.GetBookingByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetCustomerBookings handles GET /api/v1/bookings?phone=..., listing a
// customer's own bookings by phone number.
func (h *BookingHandler) GetCustomerBookings(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		response.BadRequest(c, "phone query parameter is required")
		return
	}
	page, limit := parsePagination(c)

	result, err := h.bookings.GetCustomerBookings(c.Request.Context(), phone, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// parsePagination reads page/limit query params with sane defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
