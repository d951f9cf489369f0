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
	"github.com/dnflvus-wq/engTest-sub000/internal/service"
)

// AchievementWorker consumes the achievement check queue and runs the
// catalog evaluation for each event.
type AchievementWorker struct {
	checks *service.AchievementCheckService
	rdb    *redis.Client
	log    zerolog.Logger
}

// NewAchievementWorker creates a new AchievementWorker.
func NewAchievementWorker(checks *service.AchievementCheckService, rdb *redis.Client) *AchievementWorker {
	return &AchievementWorker{
		checks: checks,
		rdb:    rdb,
		log:    log.With().Str("component", "achievement_worker").Logger(),
	}
}

// Start begins the worker loop. Call in a goroutine.
func (w *AchievementWorker) Start(ctx context.Context) {
	w.log.Info().Msg("worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("worker stopping")
			w.drain(context.Background())
			w.log.Info().Msg("worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *AchievementWorker) processNext(ctx context.Context) {
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.CheckAchievementsQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error, sleeping 3s")
			time.Sleep(3 * time.Second)
		}
		return
	}

	if len(result) < 2 {
		return
	}

	var ev model.CheckEvent
	if err := json.Unmarshal([]byte(result[1]), &ev); err != nil {
		w.log.Error().Err(err).Str("data", result[1]).Msg("discarding malformed check event")
		return
	}

	if err := w.checks.RunCheck(ctx, ev); err != nil {
		w.log.Error().Err(err).
			Int64("user_id", ev.UserID).
			Str("event", ev.Event).
			Msg("check failed, requeueing in 5s")
		w.rdb.RPush(ctx, config.WorkerKey.CheckAchievementsQueue, result[1])
		time.Sleep(5 * time.Second)
	}
}

// drain processes all remaining events before shutdown.
func (w *AchievementWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.WorkerKey.CheckAchievementsQueue).Result()
		if err != nil {
			break
		}

		var ev model.CheckEvent
		if err := json.Unmarshal([]byte(result), &ev); err != nil {
			continue
		}
		if err := w.checks.RunCheck(ctx, ev); err != nil {
			w.log.Error().Err(err).Int64("user_id", ev.UserID).Msg("drain check failed")
			continue
		}
		drained++
	}
	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("drained pending checks")
	}
}
