package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/repository"
)

// QuestionService handles question management.
type QuestionService struct {
	questions *repository.QuestionRepository
	rounds    *RoundService
	log       zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions *repository.QuestionRepository, rounds *RoundService, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questions: questions,
		rounds:    rounds,
		log:       log.With().Str("component", "question_service").Logger(),
	}
}

// ListByRound retrieves a round's questions in exam presentation order.
func (s *QuestionService) ListByRound(ctx context.Context, roundID int64) ([]model.Question, error) {
	return s.questions.ListByRound(ctx, roundID)
}

// Get retrieves one question.
func (s *QuestionService) Get(ctx context.Context, id int64) (*model.Question, error) {
	q, err := s.questions.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return q, err
}

// Create inserts a question at the end of the round when no sequence
// number is given, then refreshes the round cache.
func (s *QuestionService) Create(ctx context.Context, roundID int64, req *model.CreateQuestionRequest) (*model.Question, error) {
	if _, err := s.rounds.Get(ctx, roundID); err != nil {
		return nil, err
	}

	seqNo := req.SeqNo
	if seqNo == 0 {
		maxSeq, err := s.questions.MaxSeqNo(ctx, roundID)
		if err != nil {
			return nil, fmt.Errorf("max seq: %w", err)
		}
		seqNo = maxSeq + 1
	}

	q := &model.Question{
		RoundID:      roundID,
		QuestionType: req.QuestionType,
		AnswerType:   req.AnswerType,
		QuestionText: req.QuestionText,
		Answer:       req.Answer,
		AltAnswers:   req.AltAnswers,
		Option1:      req.Option1,
		Option2:      req.Option2,
		Option3:      req.Option3,
		Option4:      req.Option4,
		Hint:         req.Hint,
		SeqNo:        seqNo,
	}
	if err := s.questions.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	if err := s.rounds.WarmRoundCache(ctx, roundID); err != nil {
		s.log.Warn().Err(err).Int64("round_id", roundID).Msg("cache warm failed")
	}
	return q, nil
}

// Update overwrites a question and refreshes the round cache.
func (s *QuestionService) Update(ctx context.Context, id int64, req *model.CreateQuestionRequest) (*model.Question, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	q.QuestionType = req.QuestionType
	q.AnswerType = req.AnswerType
	q.QuestionText = req.QuestionText
	q.Answer = req.Answer
	q.AltAnswers = req.AltAnswers
	q.Option1 = req.Option1
	q.Option2 = req.Option2
	q.Option3 = req.Option3
	q.Option4 = req.Option4
	q.Hint = req.Hint
	if req.SeqNo != 0 {
		q.SeqNo = req.SeqNo
	}

	if err := s.questions.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}

	if err := s.rounds.WarmRoundCache(ctx, q.RoundID); err != nil {
		s.log.Warn().Err(err).Int64("round_id", q.RoundID).Msg("cache warm failed")
	}
	return q, nil
}

// Delete removes a question and refreshes the round cache.
func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	q, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if err := s.rounds.WarmRoundCache(ctx, q.RoundID); err != nil {
		s.log.Warn().Err(err).Int64("round_id", q.RoundID).Msg("cache warm failed")
	}
	return nil
}
