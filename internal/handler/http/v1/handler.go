package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/pilgrim_path/internal/config"
	"github.com/shenikar/pilgrim_path/internal/service"
	pkgvalidator "github.com/shenikar/pilgrim_path/pkg/validator"
	"github.com/sirupsen/logrus"
)

// Services - набор сервисов, которые обслуживает HTTP-слой
type Services struct {
	Incidents     service.IncidentService
	Analytics     service.AnalyticsService
	Notifications service.NotificationService
	Rooms         service.RoomService
	Bookings      service.BookingService
	Health        service.HealthService
}

type Handler struct {
	incidentService     service.IncidentService
	analyticsService    service.AnalyticsService
	notificationService service.NotificationService
	roomService         service.RoomService
	bookingService      service.BookingService
	healthService       service.HealthService
	logger              *logrus.Logger
	validate            *validator.Validate
	cfg                 *config.Config
}

func NewHandler(services Services, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService:     services.Incidents,
		analyticsService:    services.Analytics,
		notificationService: services.Notifications,
		roomService:         services.Rooms,
		bookingService:      services.Bookings,
		healthService:       services.Health,
		logger:              logger,
		validate:            pkgvalidator.New(),
		cfg:                 cfg,
	}
}

// bindJSON разбирает тело запроса и проверяет теги validate.
// При ошибке ответ уже отправлен и возвращается false.
func (h *Handler) bindJSON(c *gin.Context, log *logrus.Entry, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		log.WithError(err).Warn("Validation failed")
		h.respondError(c, log, pkgvalidator.ToFieldErrors(err))
		return false
	}
	return true
}

// pathID разбирает uuid из параметра пути
func pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

// queryInt возвращает 0 для отсутствующего или нечислового параметра; значения по умолчанию выставляют сервисы
func queryInt(c *gin.Context, key string) int {
	v, _ := strconv.Atoi(c.Query(key))
	return v
}

func queryFloat(c *gin.Context, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// @Summary Get application health status
// @Description Liveness check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
