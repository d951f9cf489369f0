package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/repository"
)

// ActivityLogService records user activity and serves the admin log view.
// Writes go through the Redis queue so request latency is not tied to
// the log table.
type ActivityLogService struct {
	logs   *repository.ActivityLogRepository
	events *EventQueue
	log    zerolog.Logger
}

// NewActivityLogService creates a new ActivityLogService.
func NewActivityLogService(logs *repository.ActivityLogRepository, events *EventQueue) *ActivityLogService {
	return &ActivityLogService{
		logs:   logs,
		events: events,
		log:    log.With().Str("component", "activity_log_service").Logger(),
	}
}

// Record queues one activity log row.
func (s *ActivityLogService) Record(ctx context.Context, userID int64, userName string, req *model.RecordLogRequest) error {
	return s.events.EnqueueActivityLog(ctx, model.ActivityLog{
		UserID:   userID,
		UserName: userName,
		Action:   req.Action,
		Detail:   req.Detail,
		Page:     req.Page,
	})
}

// List returns a page of activity logs, optionally filtered by user and
// action, newest first.
func (s *ActivityLogService) List(ctx context.Context, page, perPage int, userID *int64, action *string) ([]model.ActivityLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 50
	}
	return s.logs.List(ctx, page, perPage, userID, action)
}

// Actions returns the distinct action names present in the log.
func (s *ActivityLogService) Actions(ctx context.Context) ([]string, error) {
	return s.logs.ListActions(ctx)
}

// Cleanup deletes logs older than the given number of days and returns
// how many rows were removed.
func (s *ActivityLogService) Cleanup(ctx context.Context, days int) (int64, error) {
	deleted, err := s.logs.DeleteOlderThan(ctx, days)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int("days", days).Int64("deleted", deleted).Msg("activity logs pruned")
	return deleted, nil
}
