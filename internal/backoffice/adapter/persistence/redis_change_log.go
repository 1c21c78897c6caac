package persistence

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"metadata-backoffice/internal/backoffice/domain/model"
	"metadata-backoffice/internal/backoffice/domain/repository"
	"metadata-backoffice/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

// RedisChangeLog implements ChangeLog using a single capped Redis Stream
type RedisChangeLog struct {
	client *redis.Client
	stream string
	maxLen int64
	logger logger.Logger
}

var _ repository.ChangeLog = (*RedisChangeLog)(nil)

// NewRedisChangeLog creates a change log writing to stream, trimmed to about maxLen entries
func NewRedisChangeLog(client *redis.Client, stream string, maxLen int64, log logger.Logger) *RedisChangeLog {
	return &RedisChangeLog{
		client: client,
		stream: stream,
		maxLen: maxLen,
		logger: log.WithComponent("changelog.redis"),
	}
}

// Append stores the event and returns the stream id Redis assigned to it
func (r *RedisChangeLog) Append(ctx context.Context, event model.ChangeEvent) (string, error) {
	args := &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]interface{}{
			"type":      event.Type,
			"source":    event.Source,
			"data":      string(event.Data),
			"timestamp": event.Timestamp.UnixMilli(),
		},
	}
	if r.maxLen > 0 {
		args.MaxLen = r.maxLen
		args.Approx = true
	}

	id, err := r.client.XAdd(ctx, args).Result()
	if err != nil {
		r.logger.Error("Failed to append change event", "stream", r.stream, "eventType", event.Type, "error", err)
		return "", err
	}

	r.logger.Debug("Change event stored", "stream", r.stream, "eventType", event.Type, "id", id)
	return id, nil
}

// Recent returns up to limit events, newest first
func (r *RedisChangeLog) Recent(ctx context.Context, limit int) ([]model.ChangeEvent, error) {
	msgs, err := r.client.XRevRangeN(ctx, r.stream, "+", "-", int64(limit)).Result()
	if err != nil {
		if err == redis.Nil {
			return []model.ChangeEvent{}, nil
		}
		r.logger.Error("Failed to read change events", "stream", r.stream, "error", err)
		return nil, err
	}

	events := make([]model.ChangeEvent, 0, len(msgs))
	for _, msg := range msgs {
		events = append(events, parseChangeEvent(msg))
	}
	return events, nil
}

// Ping checks the Redis connection
func (r *RedisChangeLog) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// parseChangeEvent converts a stream message back into a ChangeEvent
func parseChangeEvent(msg redis.XMessage) model.ChangeEvent {
	event := model.ChangeEvent{ID: msg.ID}

	if typeStr, ok := msg.Values["type"].(string); ok {
		event.Type = typeStr
	}
	if source, ok := msg.Values["source"].(string); ok {
		event.Source = source
	}
	if data, ok := msg.Values["data"].(string); ok && data != "" && json.Valid([]byte(data)) {
		event.Data = json.RawMessage(data)
	}
	if tsStr, ok := msg.Values["timestamp"].(string); ok {
		if ms, err := strconv.ParseInt(tsStr, 10, 64); err == nil {
			event.Timestamp = model.NewTimestamp(time.UnixMilli(ms))
		}
	}

	return event
}
