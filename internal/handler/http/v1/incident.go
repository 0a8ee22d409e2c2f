package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/pkg/e"
)

// @Summary Create a new incident
// @Description Report an incident. Priority defaults to medium. Emergency and critical incidents are escalated.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param incident body CreateIncidentRequest true "Incident creation request"
// @Success 201 {object} models.Incident
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	if !h.bindJSON(c, log, &input) {
		return
	}

	caller := mustCaller(c)
	incident, err := h.incidentService.CreateIncident(c.Request.Context(), caller.ID, DTOToIncidentModel(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, incident)
}

// @Summary Get a list of incidents
// @Description Paginated, filtered and sorted list of incidents
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Param category query string false "Category filter"
// @Param sector query string false "Sector filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param sortBy query string false "createdAt, updatedAt, title, status, category or priority" default(createdAt)
// @Param sortOrder query string false "asc or desc" default(desc)
// @Success 200 {object} models.IncidentPage
// @Failure 400 {object} ErrorResponse "Invalid filter"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")

	filter := models.IncidentFilter{
		Status:    models.IncidentStatus(c.Query("status")),
		Priority:  models.Priority(c.Query("priority")),
		Category:  models.IncidentCategory(c.Query("category")),
		Sector:    c.Query("sector"),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	page, err := h.incidentService.ListIncidents(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary Get incident by ID
// @Description Incident with notes, reporter and assignee
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} models.Incident
// @Failure 400 {object} ErrorResponse "Invalid incident ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, incident)
}

// @Summary Update incident status
// @Description Moderators and admins only. Any status may move to any other.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param status body UpdateStatusRequest true "New status and optional assignee"
// @Success 200 {object} models.Incident
// @Failure 400 {object} ErrorResponse "Invalid incident ID or request body"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient role"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id}/status [put]
func (h *Handler) updateIncidentStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateIncidentStatus").WithField("id", id)

	var input UpdateStatusRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	incident, err := h.incidentService.UpdateStatus(c.Request.Context(), id, models.IncidentStatus(input.Status), parseAssignee(input.AssignedTo))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, incident)
}

// @Summary Add a note to an incident
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param note body AddNoteRequest true "Note text"
// @Success 200 {object} models.Incident
// @Failure 400 {object} ErrorResponse "Invalid incident ID or request body"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id}/notes [post]
func (h *Handler) addIncidentNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "addIncidentNote").WithField("id", id)

	var input AddNoteRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	incident, err := h.incidentService.AddNote(c.Request.Context(), id, mustCaller(c).ID, input.Text)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, incident)
}

// @Summary Find incidents near a point
// @Description Incidents of any status within radius meters, nearest first
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param lng path number true "Longitude"
// @Param lat path number true "Latitude"
// @Param radius query number false "Radius in meters" default(1000)
// @Success 200 {array} models.Incident
// @Failure 400 {object} ErrorResponse "Invalid coordinates"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/nearby/{lng}/{lat} [get]
func (h *Handler) nearbyIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "nearbyIncidents")

	verr := &e.ValidationError{}
	lng, err := strconv.ParseFloat(c.Param("lng"), 64)
	if err != nil {
		verr.Add("lng", "must be a number")
	}
	lat, err := strconv.ParseFloat(c.Param("lat"), 64)
	if err != nil {
		verr.Add("lat", "must be a number")
	}
	var radius *float64
	if raw, ok := c.GetQuery("radius"); ok {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			verr.Add("radius", "must be a number")
		}
		radius = &r
	}
	if err := verr.OrNil(); err != nil {
		h.respondError(c, log, err)
		return
	}

	incidents, err := h.incidentService.FindNearby(c.Request.Context(), lng, lat, radius)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, incidents)
}

// @Summary Incident status summary
// @Description Counts by status plus mean time to resolution in milliseconds
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.IncidentStatusSummary
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/stats/overview [get]
func (h *Handler) incidentStatusSummary(c *gin.Context) {
	log := h.logger.WithField("method", "incidentStatusSummary")

	summary, err := h.incidentService.StatusSummary(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
