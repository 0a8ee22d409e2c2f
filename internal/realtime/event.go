// Package realtime рассылает события изменений всем подключённым websocket-клиентам.
// Доставка best-effort: без подтверждений, очередей и повторной отправки.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	EventNewIncident       = "new-incident"
	EventIncidentUpdated   = "incident-updated"
	EventIncidentNoteAdded = "incident-note-added"
	EventNewNotification   = "new-notification"
)

// Event - кадр, который получает клиент
type Event struct {
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

//go:generate mockgen -source=event.go -destination=mocks/publisher.go -package=mocks

// Publisher - шина событий, внедряемая в сервисы
type Publisher interface {
	Publish(ctx context.Context, event string, payload any) error
}

func NewEvent(name string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", name, err)
	}
	return Event{Event: name, Data: data, Timestamp: time.Now().UTC()}, nil
}
