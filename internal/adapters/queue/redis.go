package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
)

const (
	pendingKey    = "notifications"
	processingKey = "notifications:processing"
)

// RedisNotificationQueue is a list-backed queue with an at-least-once
// hand-off: Dequeue moves an entry to a processing list, Ack removes it,
// Nack pushes it back with the attempt count bumped. Callers must not mutate
// a dequeued notification before acking or nacking it, since removal from
// the processing list matches on the serialized payload.
type RedisNotificationQueue struct {
	client *redis.Client
}

func NewRedisNotificationQueue(client *redis.Client) domain.NotificationQueue {
	return &RedisNotificationQueue{client: client}
}

func (q *RedisNotificationQueue) Enqueue(ctx context.Context, n *domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return q.client.LPush(ctx, pendingKey, payload).Err()
}

func (q *RedisNotificationQueue) Dequeue(ctx context.Context, timeout time.Duration) (*domain.Notification, error) {
	payload, err := q.client.BRPopLPush(ctx, pendingKey, processingKey, timeout).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var n domain.Notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		// Drop the malformed entry so it cannot wedge the worker.
		q.client.LRem(ctx, processingKey, 1, payload)
		return nil, fmt.Errorf("unmarshal notification: %w", err)
	}
	return &n, nil
}

func (q *RedisNotificationQueue) Ack(ctx context.Context, n *domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return q.client.LRem(ctx, processingKey, 1, payload).Err()
}

func (q *RedisNotificationQueue) Nack(ctx context.Context, n *domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := q.client.LRem(ctx, processingKey, 1, payload).Err(); err != nil {
		return err
	}

	requeued := *n
	requeued.Attempts++
	next, err := json.Marshal(&requeued)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return q.client.LPush(ctx, pendingKey, next).Err()
}

func (q *RedisNotificationQueue) Close() error {
	return q.client.Close()
}
