package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/repository"
)

// StatsService assembles the analytics dashboard.
type StatsService struct {
	exams  *repository.ExamRepository
	rounds *repository.RoundRepository
	log    zerolog.Logger
}

// NewStatsService creates a new StatsService.
func NewStatsService(exams *repository.ExamRepository, rounds *repository.RoundRepository) *StatsService {
	return &StatsService{
		exams:  exams,
		rounds: rounds,
		log:    log.With().Str("component", "stats_service").Logger(),
	}
}

// Dashboard aggregates per-user and per-round stats with the global
// totals.
func (s *StatsService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	userStats, err := s.exams.AllUserStats(ctx)
	if err != nil {
		return nil, err
	}
	roundStats, err := s.exams.AllRoundStats(ctx)
	if err != nil {
		return nil, err
	}
	totalExams, overallAvg, err := s.exams.Totals(ctx)
	if err != nil {
		return nil, err
	}
	return &model.DashboardStats{
		UserStats:       userStats,
		RoundStats:      roundStats,
		TotalUsers:      len(userStats),
		TotalRounds:     len(roundStats),
		TotalExams:      totalExams,
		OverallAvgScore: overallAvg,
	}, nil
}

// UserStats returns one user's aggregate exam history.
func (s *StatsService) UserStats(ctx context.Context, userID int64) (*model.UserStats, error) {
	stats, err := s.exams.UserStats(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return stats, err
}

// RoundStats returns one round's aggregate exam results.
func (s *StatsService) RoundStats(ctx context.Context, roundID int64) (*model.RoundStats, error) {
	stats, err := s.exams.RoundStats(ctx, roundID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return stats, err
}
