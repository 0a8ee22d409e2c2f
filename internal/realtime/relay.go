package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisRelay публикует события в канал Redis; каждый инстанс API подписан на него
// и раздаёт полученные кадры своим локальным клиентам. Redis pub/sub тоже не хранит
// сообщения, так что семантика "не более одного раза" сохраняется.
type RedisRelay struct {
	client  *redis.Client
	channel string
	hub     *Hub
	logger  *logrus.Logger
}

func NewRedisRelay(client *redis.Client, channel string, hub *Hub, logger *logrus.Logger) *RedisRelay {
	return &RedisRelay{
		client:  client,
		channel: channel,
		hub:     hub,
		logger:  logger,
	}
}

func (r *RedisRelay) Publish(ctx context.Context, name string, payload any) error {
	event, err := NewEvent(name, payload)
	if err != nil {
		return err
	}
	frame, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal realtime event: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, frame).Err(); err != nil {
		return fmt.Errorf("failed to publish realtime event to Redis: %w", err)
	}
	return nil
}

// Start подписывается на канал и пересылает кадры в хаб до отмены контекста
func (r *RedisRelay) Start(ctx context.Context) {
	sub := r.client.Subscribe(ctx, r.channel)
	r.logger.WithField("channel", r.channel).Info("Starting realtime relay...")

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				r.logger.Info("Stopping realtime relay.")
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				r.dispatch(msg.Payload)
			}
		}
	}()
}

func (r *RedisRelay) dispatch(payload string) {
	var event Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		r.logger.WithError(err).Error("Failed to unmarshal realtime event from Redis")
		return
	}
	r.hub.broadcastFrame([]byte(payload), event.Event)
}
