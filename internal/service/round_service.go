package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dnflvus-wq/engTest-sub000/internal/config"
	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/repository"
)

// Round creation defaults.
const (
	DefaultQuestionCount = 20
	DefaultPassScore     = 24
)

// AnswerKeyEntry is one question's grading data cached in Redis.
type AnswerKeyEntry struct {
	Answer     string `json:"answer"`
	AltAnswers string `json:"altAnswers,omitempty"`
}

// RoundService handles round administration and the round cache.
type RoundService struct {
	rounds    *repository.RoundRepository
	questions *repository.QuestionRepository
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewRoundService creates a new RoundService.
func NewRoundService(
	rounds *repository.RoundRepository,
	questions *repository.QuestionRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *RoundService {
	return &RoundService{
		rounds:    rounds,
		questions: questions,
		rdb:       rdb,
		log:       log.With().Str("component", "round_service").Logger(),
	}
}

// List retrieves all rounds.
func (s *RoundService) List(ctx context.Context) ([]model.Round, error) {
	return s.rounds.List(ctx)
}

// ListActive retrieves rounds open for taking.
func (s *RoundService) ListActive(ctx context.Context) ([]model.Round, error) {
	return s.rounds.ListByStatus(ctx, model.RoundStatusActive)
}

// Get retrieves one round.
func (s *RoundService) Get(ctx context.Context, id int64) (*model.Round, error) {
	rd, err := s.rounds.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rd, err
}

// GetPrevious retrieves the round created immediately before the given one.
func (s *RoundService) GetPrevious(ctx context.Context, id int64) (*model.Round, error) {
	prev, err := s.rounds.GetPrevious(ctx, id)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, ErrNoPreviousRound
	}
	return prev, nil
}

// Create inserts a round, applying catalog defaults for omitted fields.
func (s *RoundService) Create(ctx context.Context, req *model.CreateRoundRequest) (*model.Round, error) {
	rd := &model.Round{
		Title:         req.Title,
		Description:   req.Description,
		QuestionCount: req.QuestionCount,
		Difficulty:    req.Difficulty,
		PassScore:     req.PassScore,
		Status:        model.RoundStatusActive,
	}
	if rd.QuestionCount == 0 {
		rd.QuestionCount = DefaultQuestionCount
	}
	if rd.Difficulty == "" {
		rd.Difficulty = model.DifficultyMedium
	}
	if rd.PassScore == 0 {
		rd.PassScore = DefaultPassScore
	}

	if err := s.rounds.Create(ctx, rd); err != nil {
		return nil, fmt.Errorf("create round: %w", err)
	}
	s.log.Info().Int64("round_id", rd.ID).Str("title", rd.Title).Msg("round created")
	return rd, nil
}

// Update overwrites a round's editable fields.
func (s *RoundService) Update(ctx context.Context, id int64, req *model.UpdateRoundRequest) (*model.Round, error) {
	rd, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rd.Title = req.Title
	rd.Description = req.Description
	rd.QuestionCount = req.QuestionCount
	rd.Difficulty = req.Difficulty
	rd.PassScore = req.PassScore

	if err := s.rounds.Update(ctx, rd); err != nil {
		return nil, fmt.Errorf("update round: %w", err)
	}
	return rd, nil
}

// UpdateStatus changes a round's lifecycle state. Activation warms the
// round cache so exam starts never race a cold cache.
func (s *RoundService) UpdateStatus(ctx context.Context, id int64, status model.RoundStatus) (*model.Round, error) {
	rd, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.rounds.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	rd.Status = status

	if status == model.RoundStatusActive {
		if err := s.WarmRoundCache(ctx, id); err != nil {
			s.log.Warn().Err(err).Int64("round_id", id).Msg("cache warm failed")
		}
	}
	return rd, nil
}

// Delete removes a round and everything hanging off it.
func (s *RoundService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.rounds.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete round: %w", err)
	}

	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, config.CacheKey.RoundPayloadKey(id))
	pipe.Del(ctx, config.CacheKey.RoundAnswerKeyKey(id))
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warn().Err(err).Int64("round_id", id).Msg("cache cleanup failed")
	}
	return nil
}

// GenerateReview copies random questions from the previous round into this
// one, appended after the regular questions and flagged as review.
func (s *RoundService) GenerateReview(ctx context.Context, roundID int64, count int) ([]model.Question, error) {
	if count <= 0 {
		count = 5
	}

	prev, err := s.GetPrevious(ctx, roundID)
	if err != nil {
		return nil, err
	}

	source, err := s.questions.ListRandomByRound(ctx, prev.ID, count)
	if err != nil {
		return nil, fmt.Errorf("sample questions: %w", err)
	}
	if len(source) == 0 {
		return nil, ErrNoQuestions
	}

	maxSeq, err := s.questions.MaxSeqNo(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("max seq: %w", err)
	}

	created := make([]model.Question, 0, len(source))
	for i, src := range source {
		q := src
		q.ID = 0
		q.RoundID = roundID
		q.SeqNo = maxSeq + i + 1
		q.IsReview = true
		if err := s.questions.Create(ctx, &q); err != nil {
			return nil, fmt.Errorf("copy question: %w", err)
		}
		created = append(created, q)
	}

	s.log.Info().Int64("round_id", roundID).Int64("source_round_id", prev.ID).
		Int("count", len(created)).Msg("review questions generated")

	if err := s.WarmRoundCache(ctx, roundID); err != nil {
		s.log.Warn().Err(err).Int64("round_id", roundID).Msg("cache warm failed")
	}
	return created, nil
}

// DeleteReview removes a round's review questions.
func (s *RoundService) DeleteReview(ctx context.Context, roundID int64) (int64, error) {
	removed, err := s.questions.DeleteReviewByRound(ctx, roundID)
	if err != nil {
		return 0, fmt.Errorf("delete review questions: %w", err)
	}
	if removed > 0 {
		if err := s.WarmRoundCache(ctx, roundID); err != nil {
			s.log.Warn().Err(err).Int64("round_id", roundID).Msg("cache warm failed")
		}
	}
	return removed, nil
}

// WarmRoundCache loads a round's question payload and answer key from
// PostgreSQL into Redis.
func (s *RoundService) WarmRoundCache(ctx context.Context, roundID int64) error {
	questions, err := s.questions.ListByRound(ctx, roundID)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	payloadJSON, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	answerKey := make(map[string]interface{}, len(questions))
	for _, q := range questions {
		entry, err := json.Marshal(AnswerKeyEntry{Answer: q.Answer, AltAnswers: q.AltAnswers})
		if err != nil {
			return fmt.Errorf("marshal answer key: %w", err)
		}
		answerKey[fmt.Sprintf("%d", q.ID)] = entry
	}

	// Cache both atomically via pipeline.
	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, config.CacheKey.RoundPayloadKey(roundID), payloadJSON, 0)
	pipe.Del(ctx, config.CacheKey.RoundAnswerKeyKey(roundID))
	pipe.HSet(ctx, config.CacheKey.RoundAnswerKeyKey(roundID), answerKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache to redis: %w", err)
	}

	s.log.Debug().Int64("round_id", roundID).Int("questions", len(questions)).Msg("cache warmed")
	return nil
}

// PrewarmActiveRounds loads every active round into Redis on startup.
func (s *RoundService) PrewarmActiveRounds(ctx context.Context) error {
	rounds, err := s.rounds.ListByStatus(ctx, model.RoundStatusActive)
	if err != nil {
		return fmt.Errorf("list active rounds: %w", err)
	}
	if len(rounds) == 0 {
		s.log.Info().Msg("no active rounds to prewarm")
		return nil
	}

	warmed := 0
	for _, rd := range rounds {
		if err := s.WarmRoundCache(ctx, rd.ID); err != nil {
			s.log.Warn().Err(err).Int64("round_id", rd.ID).Msg("failed to warm round, skipping")
			continue
		}
		warmed++
	}
	s.log.Info().Int("warmed", warmed).Int("total", len(rounds)).Msg("round caches prewarmed")
	return nil
}
