package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/repository"
)

// ProgressService builds per-user study progress trees from the chapter
// catalog and the rounds the user has passed.
type ProgressService struct {
	chapters *repository.ChapterRepository
	log      zerolog.Logger
}

// NewProgressService creates a new ProgressService.
func NewProgressService(chapters *repository.ChapterRepository) *ProgressService {
	return &ProgressService{
		chapters: chapters,
		log:      log.With().Str("component", "progress_service").Logger(),
	}
}

// Chapters returns the chapter catalog with the rounds covering each one.
func (s *ProgressService) Chapters(ctx context.Context) ([]model.ChapterUsage, error) {
	return s.chapters.ListWithUsage(ctx)
}

// UserProgress returns the books > parts > chapters tree with the user's
// completion state. A chapter counts as complete once the user passes any
// round linked to it.
func (s *ProgressService) UserProgress(ctx context.Context, userID int64) ([]model.BookProgress, error) {
	chapters, err := s.chapters.List(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.chapters.ListCompletedForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var books []model.BookProgress
	bookIdx := make(map[string]int)
	for _, ch := range chapters {
		bi, ok := bookIdx[ch.BookID]
		if !ok {
			bi = len(books)
			bookIdx[ch.BookID] = bi
			books = append(books, model.BookProgress{
				BookID:    ch.BookID,
				BookTitle: ch.BookTitle,
			})
		}
		book := &books[bi]

		pi := -1
		for i := range book.Parts {
			if book.Parts[i].PartNumber == ch.PartNumber {
				pi = i
				break
			}
		}
		if pi == -1 {
			pi = len(book.Parts)
			book.Parts = append(book.Parts, model.PartProgress{
				PartNumber: ch.PartNumber,
				PartTitle:  ch.PartTitle,
			})
		}
		part := &book.Parts[pi]

		done := completed[ch.ID]
		part.Chapters = append(part.Chapters, model.ChapterProgress{
			BookChapter: ch,
			Completed:   done,
		})
		book.ChapterCount++
		if done {
			part.CompletedCount++
			book.CompletedCount++
		}
	}
	return books, nil
}

// AssignChapters links chapters to a round, replacing any previous links.
func (s *ProgressService) AssignChapters(ctx context.Context, roundID int64, chapterIDs []int64) error {
	return s.chapters.AssignToRound(ctx, roundID, chapterIDs)
}
