package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationAlert     NotificationType = "alert"
	NotificationEmergency NotificationType = "emergency"
	NotificationInfo      NotificationType = "info"
	NotificationUpdate    NotificationType = "update"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationAlert, NotificationEmergency, NotificationInfo, NotificationUpdate:
		return true
	}
	return false
}

type Notification struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Priority  Priority         `json:"priority"`
	Sector    string           `json:"sector,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	IsRead    bool             `json:"isRead"`
	ReadAt    *time.Time       `json:"readAt,omitempty"`
}

type NotificationFilter struct {
	Type     NotificationType
	Priority Priority
	Page     int
	Limit    int
}

// NotificationPage - страница уведомлений; Total и Unread считаются по отфильтрованному набору
type NotificationPage struct {
	Notifications []*Notification `json:"notifications"`
	Total         int             `json:"total"`
	UnreadCount   int             `json:"unreadCount"`
}

// ReadAllResult - состояние после отметки всех уведомлений прочитанными.
// Повторный вызов даёт тот же ответ; Updated только для логов.
type ReadAllResult struct {
	UnreadCount int   `json:"unreadCount"`
	Updated     int64 `json:"-"`
}

type NotificationStats struct {
	Total      int                      `json:"total"`
	Unread     int                      `json:"unread"`
	ByType     map[NotificationType]int `json:"byType"`
	ByPriority map[Priority]int         `json:"byPriority"`
}
