package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Public health dashboard
// @Description Admin only. Latest record (null when none) and per-sector aggregates.
// @Tags Health
// @Produce json
// @Security BearerAuth
// @Param sector query string false "Sector"
// @Success 200 {object} models.HealthDashboard
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient role"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /health/dashboard [get]
func (h *Handler) healthDashboard(c *gin.Context) {
	log := h.logger.WithField("method", "healthDashboard")

	dashboard, err := h.healthService.Dashboard(c.Request.Context(), c.Query("sector"))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// @Summary Public health trends
// @Description Admin only. Key scores over the last days, oldest first.
// @Tags Health
// @Produce json
// @Security BearerAuth
// @Param days query int false "Look-back window in days" default(7)
// @Param sector query string false "Sector"
// @Success 200 {array} models.HealthTrendPoint
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient role"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /health/trends [get]
func (h *Handler) healthTrends(c *gin.Context) {
	log := h.logger.WithField("method", "healthTrends")

	points, err := h.healthService.Trends(c.Request.Context(), queryInt(c, "days"), c.Query("sector"))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// @Summary Active health alerts
// @Description Unresolved alerts across all sectors, newest first
// @Tags Health
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ActiveHealthAlert
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /health/alerts [get]
func (h *Handler) activeHealthAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "activeHealthAlerts")

	alerts, err := h.healthService.ActiveAlerts(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// @Summary Record health data
// @Description Admin only. Stores a sector snapshot and its alerts.
// @Tags Health
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body CreateHealthDataRequest true "Health data"
// @Success 201 {object} models.HealthData
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient role"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /health [post]
func (h *Handler) createHealthData(c *gin.Context) {
	var input CreateHealthDataRequest
	log := h.logger.WithField("method", "createHealthData")

	if !h.bindJSON(c, log, &input) {
		return
	}

	data, err := h.healthService.Create(c.Request.Context(), DTOToHealthDataModel(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, data)
}

// @Summary Resolve a health alert
// @Description Admin only. Idempotent.
// @Tags Health
// @Produce json
// @Security BearerAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} models.HealthAlert
// @Failure 400 {object} ErrorResponse "Invalid alert ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient role"
// @Failure 404 {object} ErrorResponse "Alert not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /health/alerts/{id}/resolve [put]
func (h *Handler) resolveHealthAlert(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "resolveHealthAlert").WithField("id", id)

	alert, err := h.healthService.ResolveAlert(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}
