package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/pilgrim_path/internal/models"
)

// @Summary List my bookings
// @Tags Bookings
// @Produce json
// @Security BearerAuth
// @Param type query string false "transport or accommodation"
// @Param status query string false "pending, confirmed, cancelled or completed"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.BookingPage
// @Failure 400 {object} ErrorResponse "Invalid filter"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /bookings [get]
func (h *Handler) listBookings(c *gin.Context) {
	log := h.logger.WithField("method", "listBookings")

	filter := models.BookingFilter{
		Type:   models.BookingType(c.Query("type")),
		Status: models.BookingStatus(c.Query("status")),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}
	page, err := h.bookingService.List(c.Request.Context(), mustCaller(c), filter)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary Get booking by ID
// @Description Visible to its owner and to admins
// @Tags Bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} models.Booking
// @Failure 400 {object} ErrorResponse "Invalid booking ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Booking not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /bookings/{id} [get]
func (h *Handler) getBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getBooking").WithField("id", id)

	booking, err := h.bookingService.Get(c.Request.Context(), mustCaller(c), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// @Summary Create a booking
// @Description Created pending; only the details matching the type are kept
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param booking body CreateBookingRequest true "Booking"
// @Success 201 {object} models.Booking
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /bookings [post]
func (h *Handler) createBooking(c *gin.Context) {
	var input CreateBookingRequest
	log := h.logger.WithField("method", "createBooking")

	if !h.bindJSON(c, log, &input) {
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), mustCaller(c), DTOToBookingModel(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// @Summary Update booking status
// @Description Owner or admin
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param status body UpdateBookingStatusRequest true "New status"
// @Success 200 {object} models.Booking
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Booking not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /bookings/{id}/status [put]
func (h *Handler) updateBookingStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateBookingStatus").WithField("id", id)

	var input UpdateBookingStatusRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), mustCaller(c), id, models.BookingStatus(input.Status))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
