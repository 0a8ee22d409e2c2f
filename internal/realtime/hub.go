package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const sendBufferSize = 256

// Client - одно websocket-подключение
type Client struct {
	ID   string
	Send chan []byte
}

func NewClient() *Client {
	return &Client{
		ID:   uuid.NewString(),
		Send: make(chan []byte, sendBufferSize),
	}
}

// Hub хранит подключённых клиентов. Канал один на всех: каждое событие
// уходит каждому клиенту, фильтрации по клиентам нет.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

// Unregister удаляет клиента и закрывает его канал Send. Повторный вызов безопасен.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
}

// Broadcast отправляет событие всем клиентам. Клиент с заполненным буфером пропускается.
func (h *Hub) Broadcast(event Event) {
	frame, err := json.Marshal(event)
	if err != nil {
		h.logger.WithError(err).WithField("event", event.Event).Error("Failed to marshal realtime event")
		return
	}
	h.broadcastFrame(frame, event.Event)
}

func (h *Hub) broadcastFrame(frame []byte, name string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for client := range h.clients {
		select {
		case client.Send <- frame:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.WithFields(logrus.Fields{"event": name, "dropped": dropped}).Warn("Realtime event skipped for slow clients")
	}
}

// Publish реализует Publisher для одного инстанса: событие сразу уходит локальным клиентам
func (h *Hub) Publish(_ context.Context, name string, payload any) error {
	event, err := NewEvent(name, payload)
	if err != nil {
		return err
	}
	h.Broadcast(event)
	return nil
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
