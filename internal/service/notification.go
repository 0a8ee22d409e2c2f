package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/shenikar/pilgrim_path/internal/realtime"
	"github.com/shenikar/pilgrim_path/pkg/e"
	"github.com/sirupsen/logrus"
)

// NotificationRepository - постоянное хранилище уведомлений
type NotificationRepository interface {
	List(ctx context.Context, filter models.NotificationFilter) (*models.NotificationPage, error)
	MarkRead(ctx context.Context, id uuid.UUID, at time.Time) (*models.Notification, error)
	MarkAllRead(ctx context.Context, at time.Time) (*models.ReadAllResult, error)
	Create(ctx context.Context, notification *models.Notification) error
	Stats(ctx context.Context) (*models.NotificationStats, error)
}

type NotificationService interface {
	List(ctx context.Context, filter models.NotificationFilter) (*models.NotificationPage, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	MarkAllRead(ctx context.Context) (*models.ReadAllResult, error)
	Create(ctx context.Context, notification *models.Notification) (*models.Notification, error)
	Stats(ctx context.Context) (*models.NotificationStats, error)
}

type notificationService struct {
	repo   NotificationRepository
	events realtime.Publisher
	logger *logrus.Logger
	clock  clock
}

func NewNotificationService(repo NotificationRepository, events realtime.Publisher, logger *logrus.Logger) NotificationService {
	return &notificationService{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// List возвращает страницу, общее число и число непрочитанных по отфильтрованному набору
func (s *notificationService) List(ctx context.Context, filter models.NotificationFilter) (*models.NotificationPage, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, e.NewValidationError("type", "must be one of [alert emergency info update]")
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, e.NewValidationError("priority", "must be one of [low medium high critical]")
	}

	page, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "notification",
			"method":  "List",
		}).WithError(err).Error("Failed to list notifications")
		return nil, fmt.Errorf("service: could not list notifications: %w", err)
	}
	page.Notifications = nonNil(page.Notifications)
	return page, nil
}

// MarkRead идемпотентен: повторный вызов не меняет readAt
func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	n, err := s.repo.MarkRead(ctx, id, s.clock.now())
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":         "notification",
			"method":          "MarkRead",
			"notification_id": id,
		}).WithError(err).Warn("Failed to mark notification as read")
		return nil, fmt.Errorf("service: could not mark notification as read: %w", err)
	}
	return n, nil
}

// MarkAllRead идемпотентен: ответ описывает итоговое состояние, а не число изменённых строк
func (s *notificationService) MarkAllRead(ctx context.Context) (*models.ReadAllResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "notification",
		"method":  "MarkAllRead",
	})

	result, err := s.repo.MarkAllRead(ctx, s.clock.now())
	if err != nil {
		log.WithError(err).Error("Failed to mark all notifications as read")
		return nil, fmt.Errorf("service: could not mark all notifications as read: %w", err)
	}
	log.WithField("updated", result.Updated).Info("Notifications marked as read")
	return result, nil
}

func (s *notificationService) Create(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "notification",
		"method":  "Create",
	})

	notification.Title = strings.TrimSpace(notification.Title)
	notification.Message = strings.TrimSpace(notification.Message)
	verr := &e.ValidationError{}
	if notification.Title == "" {
		verr.Add("title", "is required")
	}
	if notification.Message == "" {
		verr.Add("message", "is required")
	}
	if !notification.Type.Valid() {
		verr.Add("type", "must be one of [alert emergency info update]")
	}
	if !notification.Priority.Valid() {
		verr.Add("priority", "must be one of [low medium high critical]")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	notification.Timestamp = s.clock.now()
	notification.IsRead = false
	notification.ReadAt = nil

	if err := s.repo.Create(ctx, notification); err != nil {
		log.WithError(err).Error("Failed to create notification")
		return nil, fmt.Errorf("service: could not create notification: %w", err)
	}
	log = log.WithField("notification_id", notification.ID)

	publish(ctx, s.events, log, realtime.EventNewNotification, notification)
	log.Info("Notification created successfully")
	return notification, nil
}

func (s *notificationService) Stats(ctx context.Context) (*models.NotificationStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "notification",
			"method":  "Stats",
		}).WithError(err).Error("Failed to compute notification stats")
		return nil, fmt.Errorf("service: could not compute notification stats: %w", err)
	}
	fillNotificationStats(stats)
	return stats, nil
}

// fillNotificationStats гарантирует наличие всех ключей типов и приоритетов
func fillNotificationStats(stats *models.NotificationStats) {
	if stats.ByType == nil {
		stats.ByType = make(map[models.NotificationType]int)
	}
	if stats.ByPriority == nil {
		stats.ByPriority = make(map[models.Priority]int)
	}
	for _, t := range []models.NotificationType{models.NotificationAlert, models.NotificationEmergency, models.NotificationInfo, models.NotificationUpdate} {
		stats.ByType[t] += 0
	}
	for _, p := range []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityCritical} {
		stats.ByPriority[p] += 0
	}
}
