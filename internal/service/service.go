package service

import (
	"context"
	"time"

	"github.com/shenikar/pilgrim_path/internal/realtime"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=incident.go -destination=mocks/incident.go -package=mocks
//go:generate mockgen -source=analytics.go -destination=mocks/analytics.go -package=mocks
//go:generate mockgen -source=notification.go -destination=mocks/notification.go -package=mocks
//go:generate mockgen -source=room.go -destination=mocks/room.go -package=mocks
//go:generate mockgen -source=booking.go -destination=mocks/booking.go -package=mocks
//go:generate mockgen -source=health.go -destination=mocks/health.go -package=mocks

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// normalizePage приводит номер страницы и размер к допустимым значениям
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func totalPages(total, limit int) int {
	if limit < 1 || total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// publish отправляет событие подписчикам. Ошибка доставки только логируется:
// запись уже зафиксирована и не откатывается.
func publish(ctx context.Context, events realtime.Publisher, log *logrus.Entry, event string, payload any) {
	if err := events.Publish(ctx, event, payload); err != nil {
		log.WithError(err).WithField("event", event).Warn("Failed to publish real-time event")
	}
}

type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
