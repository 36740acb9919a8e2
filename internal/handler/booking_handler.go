package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shareit-marketplace/shareit-backend/internal/application"
	bookingDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/booking"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/apperror"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/pageable"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.AddBooking)
		bookings.PATCH("/:bookingId", h.DecideBooking)
		bookings.GET("/:bookingId", h.GetBooking)
		bookings.GET("", h.GetByBooker)
		bookings.GET("/owner", h.GetByOwner)
	}
}

// AddBooking handles POST /bookings.
func (h *BookingHandler) AddBooking(c *gin.Context) {
	userID, err := sharerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddBooking(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// DecideBooking handles PATCH /bookings/:bookingId?approved=true|false.
func (h *BookingHandler) DecideBooking(c *gin.Context) {
	userID, err := sharerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		response.Error(c, err)
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.Error(c, apperror.InvalidArgument("approved must be true or false"))
		return
	}

	result, err := h.service.DecideBooking(c.Request.Context(), userID, bookingID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// GetBooking handles GET /bookings/:bookingId.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, err := sharerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// GetByBooker handles GET /bookings?state=&from=&size=.
func (h *BookingHandler) GetByBooker(c *gin.Context) {
	userID, state, page, err := listParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.GetBookingsByBooker(c.Request.Context(), userID, state, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// GetByOwner handles GET /bookings/owner?state=&from=&size=.
func (h *BookingHandler) GetByOwner(c *gin.Context) {
	userID, state, page, err := listParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.GetBookingsByOwnerItems(c.Request.Context(), userID, state, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

func listParams(c *gin.Context) (int64, bookingDomain.State, pageable.OffsetPage, error) {
	userID, err := sharerID(c)
	if err != nil {
		return 0, "", pageable.OffsetPage{}, err
	}

	state, err := bookingDomain.ParseState(c.DefaultQuery("state", string(bookingDomain.StateAll)))
	if err != nil {
		return 0, "", pageable.OffsetPage{}, err
	}

	page, err := parsePage(c)
	if err != nil {
		return 0, "", pageable.OffsetPage{}, err
	}

	return userID, state, page, nil
}
