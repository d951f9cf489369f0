package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/ocr"
	"github.com/dnflvus-wq/engTest-sub000/internal/repository"
)

// OCRService extracts answers from photographed answer sheets. It only
// transcribes; grading happens at offline submit after the user reviews
// the extraction.
type OCRService struct {
	provider  ocr.Provider
	exams     *ExamService
	questions *repository.QuestionRepository
	uploadDir string
	log       zerolog.Logger
}

// NewOCRService creates a new OCRService.
func NewOCRService(
	provider ocr.Provider,
	exams *ExamService,
	questions *repository.QuestionRepository,
	uploadDir string,
	log zerolog.Logger,
) *OCRService {
	return &OCRService{
		provider:  provider,
		exams:     exams,
		questions: questions,
		uploadDir: uploadDir,
		log:       log.With().Str("component", "ocr_service").Logger(),
	}
}

// ExtractAnswers transcribes an exam's answer sheet. The uploaded image
// is kept on disk for later review.
func (s *OCRService) ExtractAnswers(ctx context.Context, examID int64, image []byte, mimeType, filename string) (*model.OCRResponse, error) {
	exam, err := s.exams.Get(ctx, examID)
	if err != nil {
		return nil, err
	}

	count, err := s.questions.CountByRound(ctx, exam.RoundID)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	if count == 0 {
		return nil, ErrNoQuestions
	}

	if path, err := s.saveImage(image, filename); err != nil {
		s.log.Warn().Err(err).Msg("answer sheet archive failed")
	} else {
		s.log.Debug().Str("path", path).Int64("exam_id", examID).Msg("answer sheet archived")
	}

	results, err := s.provider.ExtractAnswers(ctx, image, mimeType, count)
	if err != nil {
		return nil, fmt.Errorf("extract answers: %w", err)
	}

	out := make([]model.OCRResult, len(results))
	for i, r := range results {
		out[i] = model.OCRResult{QuestionNumber: r.QuestionNumber, UserAnswer: r.UserAnswer}
	}

	s.log.Info().Int64("exam_id", examID).Int("extracted", len(out)).
		Str("provider", s.provider.Name()).Msg("answers extracted")
	return &model.OCRResponse{OCRResults: out, QuestionCount: count}, nil
}

func (s *OCRService) saveImage(image []byte, filename string) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	path := filepath.Join(s.uploadDir, uuid.New().String()+ext)
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}
