package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/pilgrim_path/internal/models"
)

// @Summary List notifications
// @Description Newest first. Total and unreadCount are computed over the filtered set.
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param type query string false "alert, emergency, info or update"
// @Param priority query string false "low, medium, high or critical"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.NotificationPage
// @Failure 400 {object} ErrorResponse "Invalid filter"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /notifications [get]
func (h *Handler) listNotifications(c *gin.Context) {
	log := h.logger.WithField("method", "listNotifications")

	filter := models.NotificationFilter{
		Type:     models.NotificationType(c.Query("type")),
		Priority: models.Priority(c.Query("priority")),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}
	page, err := h.notificationService.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary Mark a notification read
// @Description Idempotent; readAt keeps its first value
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} models.Notification
// @Failure 400 {object} ErrorResponse "Invalid notification ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Notification not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /notifications/{id}/read [put]
func (h *Handler) markNotificationRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "markNotificationRead").WithField("id", id)

	n, err := h.notificationService.MarkRead(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// @Summary Mark all notifications read
// @Description Idempotent; returns how many notifications were unread
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ReadAllResult
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /notifications/read-all [put]
func (h *Handler) markAllNotificationsRead(c *gin.Context) {
	log := h.logger.WithField("method", "markAllNotificationsRead")

	result, err := h.notificationService.MarkAllRead(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Create a notification
// @Description Admin only. Broadcast to every connected client as new-notification.
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param notification body CreateNotificationRequest true "Notification"
// @Success 201 {object} models.Notification
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient role"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /notifications [post]
func (h *Handler) createNotification(c *gin.Context) {
	var input CreateNotificationRequest
	log := h.logger.WithField("method", "createNotification")

	if !h.bindJSON(c, log, &input) {
		return
	}

	n, err := h.notificationService.Create(c.Request.Context(), DTOToNotificationModel(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

// @Summary Notification statistics
// @Description Admin only. Every type and priority key is always present.
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.NotificationStats
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Insufficient role"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /notifications/stats [get]
func (h *Handler) notificationStats(c *gin.Context) {
	log := h.logger.WithField("method", "notificationStats")

	stats, err := h.notificationService.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
