package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/repository"
)

// ActionService tracks study action counters and feeds the achievement
// pipeline.
type ActionService struct {
	counters *repository.CounterRepository
	events   *EventQueue
	log      zerolog.Logger
}

// NewActionService creates a new ActionService.
func NewActionService(counters *repository.CounterRepository, events *EventQueue) *ActionService {
	return &ActionService{
		counters: counters,
		events:   events,
		log:      log.With().Str("component", "action_service").Logger(),
	}
}

// Track increments a user's counter for an action and queues an
// achievement check. Returns the new count.
func (s *ActionService) Track(ctx context.Context, userID int64, userName, action string) (int, error) {
	count, err := s.counters.Increment(ctx, userID, action)
	if err != nil {
		return 0, err
	}

	if err := s.events.EnqueueActivityLog(ctx, model.ActivityLog{
		UserID:   userID,
		UserName: userName,
		Action:   action,
	}); err != nil {
		s.log.Warn().Err(err).Msg("failed to queue activity log")
	}
	if err := s.events.EnqueueAchievementCheck(ctx, model.CheckEvent{
		UserID: userID,
		Event:  model.CheckEventStudyAction,
		Action: action,
	}); err != nil {
		s.log.Warn().Err(err).Msg("failed to queue achievement check")
	}
	return count, nil
}

// Counters returns all of a user's action counters.
func (s *ActionService) Counters(ctx context.Context, userID int64) ([]model.ActionCounter, error) {
	return s.counters.ListByUser(ctx, userID)
}
