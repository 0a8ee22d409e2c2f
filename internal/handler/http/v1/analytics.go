package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/pkg/e"
)

// parseDateRange принимает RFC3339 или YYYY-MM-DD; дата без времени для endDate включает весь день
func parseDateRange(c *gin.Context) (models.DateRange, error) {
	var dr models.DateRange
	verr := &e.ValidationError{}

	if raw := c.Query("startDate"); raw != "" {
		t, _, err := parseDate(raw)
		if err != nil {
			verr.Add("startDate", "must be a date (YYYY-MM-DD or RFC3339)")
		} else {
			dr.Start = &t
		}
	}
	if raw := c.Query("endDate"); raw != "" {
		t, dateOnly, err := parseDate(raw)
		if err != nil {
			verr.Add("endDate", "must be a date (YYYY-MM-DD or RFC3339)")
		} else {
			if dateOnly {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			dr.End = &t
		}
	}
	return dr, verr.OrNil()
}

func parseDate(raw string) (time.Time, bool, error) {
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t.UTC(), true, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	return t.UTC(), false, err
}

// @Summary Analytics overview
// @Description Admin only. Totals, per-category and per-sector statistics over an optional creation date range.
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Start date (YYYY-MM-DD or RFC3339)"
// @Param endDate query string false "End date, inclusive (YYYY-MM-DD or RFC3339)"
// @Success 200 {object} models.AnalyticsOverview
// @Failure 400 {object} ErrorResponse "Invalid date range"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient role"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /analytics/overview [get]
func (h *Handler) analyticsOverview(c *gin.Context) {
	log := h.logger.WithField("method", "analyticsOverview")

	dr, err := parseDateRange(c)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	overview, err := h.analyticsService.Overview(c.Request.Context(), dr)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// @Summary Incident time series
// @Description Admin only. Per-bucket status counts, ascending by bucket.
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param days query int false "Look-back window in days" default(7)
// @Param groupBy query string false "hour, day or week" default(day)
// @Success 200 {array} models.TimeSeriesBucket
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient role"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /analytics/timeseries [get]
func (h *Handler) analyticsTimeSeries(c *gin.Context) {
	log := h.logger.WithField("method", "analyticsTimeSeries")

	series, err := h.analyticsService.TimeSeries(c.Request.Context(), queryInt(c, "days"), models.Granularity(c.Query("groupBy")))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// @Summary AI-detected vs manually reported incidents
// @Description Admin only. Always returns two groups, aiDetected true first.
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AIComparison
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient role"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /analytics/ai-comparison [get]
func (h *Handler) analyticsAIComparison(c *gin.Context) {
	log := h.logger.WithField("method", "analyticsAIComparison")

	groups, err := h.analyticsService.AIComparison(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}
