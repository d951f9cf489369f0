package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dnflvus-wq/engTest-sub000/internal/config"
	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

// EventQueue pushes background work onto Redis lists consumed by the
// workers. Enqueue failures are the caller's to log; they must never
// fail the originating request.
type EventQueue struct {
	rdb *redis.Client
}

// NewEventQueue creates a new EventQueue.
func NewEventQueue(rdb *redis.Client) *EventQueue {
	return &EventQueue{rdb: rdb}
}

// EnqueueAchievementCheck queues an achievement check event.
func (q *EventQueue) EnqueueAchievementCheck(ctx context.Context, ev model.CheckEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal check event: %w", err)
	}
	if err := q.rdb.RPush(ctx, config.WorkerKey.CheckAchievementsQueue, payload).Err(); err != nil {
		return fmt.Errorf("enqueue check event: %w", err)
	}
	return nil
}

// EnqueueActivityLog queues an activity log row for batched insertion.
func (q *EventQueue) EnqueueActivityLog(ctx context.Context, l model.ActivityLog) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	payload, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshal activity log: %w", err)
	}
	if err := q.rdb.RPush(ctx, config.WorkerKey.ActivityLogQueue, payload).Err(); err != nil {
		return fmt.Errorf("enqueue activity log: %w", err)
	}
	return nil
}
