package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/pkg/e"
)

// @Summary List rooms
// @Description Public. Only verified, active rooms are listed, best rated first.
// @Tags Rooms
// @Produce json
// @Param sector query string false "Sector"
// @Param type query string false "single, double, family, dormitory or tent"
// @Param minPrice query number false "Minimum price per night"
// @Param maxPrice query number false "Maximum price per night"
// @Param amenities query string false "Comma separated amenities; a room matches if it has any"
// @Param coordinates query string false "lng,lat"
// @Param radius query number false "Radius in meters around coordinates" default(5000)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.RoomPage
// @Failure 400 {object} ErrorResponse "Invalid filter"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /rooms [get]
func (h *Handler) listRooms(c *gin.Context) {
	log := h.logger.WithField("method", "listRooms")

	near, ok := parseCoordinates(c.Query("coordinates"))
	if !ok {
		h.respondError(c, log, e.NewValidationError("coordinates", "coordinates must be [longitude, latitude]"))
		return
	}
	filter := models.RoomFilter{
		Sector:    c.Query("sector"),
		Type:      models.RoomType(c.Query("type")),
		MinPrice:  queryFloat(c, "minPrice"),
		MaxPrice:  queryFloat(c, "maxPrice"),
		Amenities: splitList(c.QueryArray("amenities")),
		Near:      near,
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	}
	filter.RadiusMeters = queryFloat(c, "radius")

	page, err := h.roomService.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary Get room by ID
// @Description Public. Room with owner and reviews.
// @Tags Rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} models.Room
// @Failure 400 {object} ErrorResponse "Invalid room ID"
// @Failure 404 {object} ErrorResponse "Room not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /rooms/{id} [get]
func (h *Handler) getRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getRoom").WithField("id", id)

	room, err := h.roomService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// @Summary List a room
// @Description New listings start pending verification
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param room body CreateRoomRequest true "Room listing"
// @Success 201 {object} models.Room
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /rooms [post]
func (h *Handler) createRoom(c *gin.Context) {
	var input CreateRoomRequest
	log := h.logger.WithField("method", "createRoom")

	if !h.bindJSON(c, log, &input) {
		return
	}

	room, err := h.roomService.Create(c.Request.Context(), mustCaller(c).ID, DTOToRoomModel(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// @Summary Review a room
// @Description Adds a review and recomputes the average rating
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param review body AddReviewRequest true "Review"
// @Success 201 {object} models.Room
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Room not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /rooms/{id}/reviews [post]
func (h *Handler) addRoomReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "addRoomReview").WithField("id", id)

	var input AddReviewRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	room, err := h.roomService.AddReview(c.Request.Context(), id, mustCaller(c).ID, input.Rating, input.Comment)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// @Summary Set room verification status
// @Description Admin only. Only verified rooms appear in the public listing.
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param verification body VerificationRequest true "Verification status"
// @Success 200 {object} models.Room
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient role"
// @Failure 404 {object} ErrorResponse "Room not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /rooms/{id}/verification [put]
func (h *Handler) setRoomVerification(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "setRoomVerification").WithField("id", id)

	var input VerificationRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	room, err := h.roomService.SetVerification(c.Request.Context(), id, models.VerificationStatus(input.Status))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, room)
}
