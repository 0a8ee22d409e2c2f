package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/pilgrim_path/internal/models"
)

//go:generate mockgen -source=publisher.go -destination=mocks/publisher.go -package=mocks

const (
	escalationQueueKey = "escalation_events"
)

// EscalationEvent - данные для внешней службы реагирования об экстренном или критическом инциденте
type EscalationEvent struct {
	IncidentID  uuid.UUID               `json:"incident_id"`
	Title       string                  `json:"title"`
	Category    models.IncidentCategory `json:"category"`
	Priority    models.Priority         `json:"priority"`
	IsEmergency bool                    `json:"is_emergency"`
	Sector      string                  `json:"sector,omitempty"`
	Address     string                  `json:"address,omitempty"`
	Longitude   float64                 `json:"longitude"`
	Latitude    float64                 `json:"latitude"`
	ReportedAt  time.Time               `json:"reported_at"`
}

// NewEscalationEvent собирает событие из инцидента
func NewEscalationEvent(inc *models.Incident) EscalationEvent {
	return EscalationEvent{
		IncidentID:  inc.ID,
		Title:       inc.Title,
		Category:    inc.Category,
		Priority:    inc.Priority,
		IsEmergency: inc.IsEmergency,
		Sector:      inc.Location.Sector,
		Address:     inc.Location.Address,
		Longitude:   inc.Location.Coordinates.Lng(),
		Latitude:    inc.Location.Coordinates.Lat(),
		ReportedAt:  inc.ResponseTime.Reported,
	}
}

// Publisher - интерфейс для постановки эскалаций в очередь
type Publisher interface {
	Publish(ctx context.Context, event EscalationEvent) error
}

// RedisPublisher - реализация Publisher, использующая список Redis как очередь
type RedisPublisher struct {
	redisClient *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish кладёт событие в левую часть списка; воркер забирает справа
func (p *RedisPublisher) Publish(ctx context.Context, event EscalationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal escalation event: %w", err)
	}

	if err := p.redisClient.LPush(ctx, escalationQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish escalation event to Redis: %w", err)
	}
	return nil
}
