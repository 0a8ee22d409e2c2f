package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/shenikar/pilgrim_path/internal/models"
)

// RegisterRoutes регистрирует все маршруты API
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	auth := AuthMiddleware([]byte(h.cfg.JWTSecret), h.logger)
	moderator := RequireRole(models.RoleModerator, models.RoleAdmin)
	admin := RequireRole(models.RoleAdmin)

	incidents := api.Group("/incidents", auth)
	{
		incidents.GET("", h.listIncidents)
		incidents.POST("", h.createIncident)
		incidents.GET("/stats/overview", h.incidentStatusSummary)
		incidents.GET("/nearby/:lng/:lat", h.nearbyIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.PUT("/:id/status", moderator, h.updateIncidentStatus)
		incidents.POST("/:id/notes", h.addIncidentNote)
	}

	analytics := api.Group("/analytics", auth, admin)
	{
		analytics.GET("/overview", h.analyticsOverview)
		analytics.GET("/timeseries", h.analyticsTimeSeries)
		analytics.GET("/ai-comparison", h.analyticsAIComparison)
	}

	notifications := api.Group("/notifications", auth)
	{
		notifications.GET("", h.listNotifications)
		notifications.POST("", admin, h.createNotification)
		notifications.GET("/stats", admin, h.notificationStats)
		notifications.PUT("/read-all", h.markAllNotificationsRead)
		notifications.PUT("/:id/read", h.markNotificationRead)
	}

	health := api.Group("/health", auth)
	{
		health.GET("/dashboard", admin, h.healthDashboard)
		health.GET("/trends", admin, h.healthTrends)
		health.GET("/alerts", h.activeHealthAlerts)
		health.POST("", admin, h.createHealthData)
		health.PUT("/alerts/:id/resolve", admin, h.resolveHealthAlert)
	}

	bookings := api.Group("/bookings", auth)
	{
		bookings.GET("", h.listBookings)
		bookings.POST("", h.createBooking)
		bookings.GET("/:id", h.getBooking)
		bookings.PUT("/:id/status", h.updateBookingStatus)
	}

	// Просмотр комнат публичный, изменения требуют токена
	rooms := api.Group("/rooms")
	{
		rooms.GET("", h.listRooms)
		rooms.GET("/:id", h.getRoom)
		rooms.POST("", auth, h.createRoom)
		rooms.POST("/:id/reviews", auth, h.addRoomReview)
		rooms.PUT("/:id/verification", auth, admin, h.setRoomVerification)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
