package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/repository"
)

// VocabularyService handles vocabulary word management.
type VocabularyService struct {
	words  *repository.VocabularyRepository
	rounds *RoundService
	log    zerolog.Logger
}

// NewVocabularyService creates a new VocabularyService.
func NewVocabularyService(words *repository.VocabularyRepository, rounds *RoundService, log zerolog.Logger) *VocabularyService {
	return &VocabularyService{
		words:  words,
		rounds: rounds,
		log:    log.With().Str("component", "vocabulary_service").Logger(),
	}
}

// ListByRound retrieves a round's vocabulary.
func (s *VocabularyService) ListByRound(ctx context.Context, roundID int64) ([]model.VocabularyWord, error) {
	return s.words.ListByRound(ctx, roundID)
}

// AddWords parses "english:korean" lines and appends them to a round.
// Malformed lines are skipped; returns how many words were stored.
func (s *VocabularyService) AddWords(ctx context.Context, roundID int64, lines []string) (int, error) {
	if _, err := s.rounds.Get(ctx, roundID); err != nil {
		return 0, err
	}

	maxSeq, err := s.words.MaxSeqNo(ctx, roundID)
	if err != nil {
		return 0, fmt.Errorf("max seq: %w", err)
	}

	var words []model.VocabularyWord
	for _, line := range lines {
		english, korean, ok := strings.Cut(line, ":")
		english = strings.TrimSpace(english)
		korean = strings.TrimSpace(korean)
		if !ok || english == "" || korean == "" {
			s.log.Debug().Str("line", line).Msg("skipping malformed vocabulary line")
			continue
		}
		maxSeq++
		words = append(words, model.VocabularyWord{
			RoundID: roundID,
			English: english,
			Korean:  korean,
			SeqNo:   maxSeq,
		})
	}

	if err := s.words.CreateBatch(ctx, words); err != nil {
		return 0, fmt.Errorf("insert words: %w", err)
	}
	return len(words), nil
}

// Delete removes a vocabulary word.
func (s *VocabularyService) Delete(ctx context.Context, id int64) error {
	return s.words.Delete(ctx, id)
}
