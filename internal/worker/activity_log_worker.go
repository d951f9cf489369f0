package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dnflvus-wq/engTest-sub000/internal/config"
	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/repository"
)

const (
	logBatchSize    = 50
	logBatchTimeout = 2 * time.Second
	logPollTimeout  = 1 * time.Second // Must be >= 1s to satisfy Redis
)

// ActivityLogWorker batches queued activity logs into PostgreSQL and
// prunes old rows once a day.
type ActivityLogWorker struct {
	logs          *repository.ActivityLogRepository
	rdb           *redis.Client
	retentionDays int
	log           zerolog.Logger
}

// NewActivityLogWorker creates a new ActivityLogWorker. A retention of 0
// disables pruning.
func NewActivityLogWorker(logs *repository.ActivityLogRepository, rdb *redis.Client, retentionDays int) *ActivityLogWorker {
	return &ActivityLogWorker{
		logs:          logs,
		rdb:           rdb,
		retentionDays: retentionDays,
		log:           log.With().Str("component", "activity_log_worker").Logger(),
	}
}

// Start begins the worker loop. Call in a goroutine.
func (w *ActivityLogWorker) Start(ctx context.Context) {
	w.log.Info().Msg("worker started")

	if w.retentionDays > 0 {
		go w.retentionLoop(ctx)
	}

	buffer := make([]model.ActivityLog, 0, logBatchSize)
	lastFlush := time.Now()

	for {
		if len(buffer) > 0 {
			if len(buffer) >= logBatchSize || time.Since(lastFlush) >= logBatchTimeout {
				w.flushSafe(ctx, buffer)
				buffer = buffer[:0]
				lastFlush = time.Now()
			}
		}

		select {
		case <-ctx.Done():
			w.shutdown(buffer)
			return
		default:
		}

		result, err := w.rdb.BLPop(ctx, logPollTimeout, config.WorkerKey.ActivityLogQueue).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			w.log.Error().Err(err).Msg("Redis connection error, sleeping 3s")
			time.Sleep(3 * time.Second)
			continue
		}

		if len(result) < 2 {
			continue
		}

		var entry model.ActivityLog
		if err := json.Unmarshal([]byte(result[1]), &entry); err != nil {
			w.log.Error().Err(err).Str("data", result[1]).Msg("discarding malformed log")
			continue
		}

		buffer = append(buffer, entry)
	}
}

// flushSafe attempts a bulk insert, then row-by-row recovery, then requeue.
func (w *ActivityLogWorker) flushSafe(ctx context.Context, batch []model.ActivityLog) {
	if err := w.logs.InsertBatch(ctx, batch); err != nil {
		w.log.Warn().Err(err).Int("count", len(batch)).Msg("batch insert failed, attempting row-by-row recovery")
		w.fallbackInsert(ctx, batch)
	}
}

func (w *ActivityLogWorker) fallbackInsert(ctx context.Context, batch []model.ActivityLog) {
	requeue := make([]model.ActivityLog, 0)

	for i := range batch {
		if err := w.logs.Insert(ctx, &batch[i]); err != nil {
			w.log.Error().Err(err).Int64("user_id", batch[i].UserID).Msg("insert failed, requeueing")
			requeue = append(requeue, batch[i])
		}
	}

	if len(requeue) > 0 {
		w.requeue(ctx, requeue)
	}
}

func (w *ActivityLogWorker) requeue(ctx context.Context, items []model.ActivityLog) {
	pipe := w.rdb.Pipeline()
	for i := range items {
		data, _ := json.Marshal(items[i])
		pipe.RPush(ctx, config.WorkerKey.ActivityLogQueue, data)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		w.log.Error().Err(err).Msg("failed to requeue logs, data lost")
		return
	}
	w.log.Info().Int("count", len(items)).Msg("requeued failed logs")
	time.Sleep(2 * time.Second)
}

func (w *ActivityLogWorker) shutdown(buffer []model.ActivityLog) {
	w.log.Info().Msg("worker stopping, flushing remaining buffer")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if len(buffer) > 0 {
		w.flushSafe(shutdownCtx, buffer)
	}
	w.log.Info().Msg("worker stopped")
}

// retentionLoop prunes logs past the retention window once a day.
func (w *ActivityLogWorker) retentionLoop(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := w.logs.DeleteOlderThan(ctx, w.retentionDays)
			if err != nil {
				w.log.Error().Err(err).Msg("retention prune failed")
				continue
			}
			if deleted > 0 {
				w.log.Info().Int64("deleted", deleted).Int("days", w.retentionDays).Msg("old activity logs pruned")
			}
		}
	}
}
