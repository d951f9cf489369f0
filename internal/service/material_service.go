package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/repository"
)

const materialURLPrefix = "/uploads/materials/"

// MaterialService manages round study materials: YouTube links and
// uploaded documents stored under the upload directory.
type MaterialService struct {
	materials *repository.MaterialRepository
	rounds    *RoundService
	uploadDir string
	log       zerolog.Logger
}

// NewMaterialService creates a new MaterialService.
func NewMaterialService(materials *repository.MaterialRepository, rounds *RoundService, uploadDir string, log zerolog.Logger) *MaterialService {
	return &MaterialService{
		materials: materials,
		rounds:    rounds,
		uploadDir: uploadDir,
		log:       log.With().Str("component", "material_service").Logger(),
	}
}

// ListByRound retrieves a round's materials.
func (s *MaterialService) ListByRound(ctx context.Context, roundID int64) ([]model.RoundMaterial, error) {
	return s.materials.ListByRound(ctx, roundID)
}

// AddYouTube attaches a video link to a round. An empty title falls
// back to the URL itself.
func (s *MaterialService) AddYouTube(ctx context.Context, roundID int64, title, url string) (*model.RoundMaterial, error) {
	if _, err := s.rounds.Get(ctx, roundID); err != nil {
		return nil, err
	}

	maxSeq, err := s.materials.MaxSeqNo(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("max seq: %w", err)
	}

	if title == "" {
		title = url
	}
	material := &model.RoundMaterial{
		RoundID:      roundID,
		MaterialType: model.MaterialTypeYouTube,
		Title:        title,
		URL:          url,
		SeqNo:        maxSeq + 1,
	}
	if err := s.materials.Create(ctx, material); err != nil {
		return nil, fmt.Errorf("insert material: %w", err)
	}
	return material, nil
}

// AddFile stores an uploaded document and attaches it to a round. The
// file lands under uploadDir/materials with a random name; the stored
// URL matches the /uploads static route. An empty title falls back to
// the original filename.
func (s *MaterialService) AddFile(ctx context.Context, roundID int64, title, filename string, data []byte) (*model.RoundMaterial, error) {
	if _, err := s.rounds.Get(ctx, roundID); err != nil {
		return nil, err
	}

	maxSeq, err := s.materials.MaxSeqNo(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("max seq: %w", err)
	}

	dir := filepath.Join(s.uploadDir, "materials")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create materials dir: %w", err)
	}
	stored := uuid.New().String() + filepath.Ext(filename)
	path := filepath.Join(dir, stored)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write material: %w", err)
	}

	if title == "" {
		title = filename
	}
	material := &model.RoundMaterial{
		RoundID:      roundID,
		MaterialType: model.MaterialTypeFile,
		Title:        title,
		URL:          materialURLPrefix + stored,
		FileName:     filename,
		SeqNo:        maxSeq + 1,
	}
	if err := s.materials.Create(ctx, material); err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			s.log.Warn().Err(rmErr).Str("path", path).Msg("orphan material file left behind")
		}
		return nil, fmt.Errorf("insert material: %w", err)
	}
	return material, nil
}

// Delete removes a material and, for uploads, its stored file.
func (s *MaterialService) Delete(ctx context.Context, id int64) error {
	material, err := s.materials.FindByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := s.materials.Delete(ctx, id); err != nil {
		return err
	}
	s.removeStoredFile(*material)
	return nil
}

// PurgeRound removes a round's uploaded files before the round itself
// is deleted; the rows follow via the cascade.
func (s *MaterialService) PurgeRound(ctx context.Context, roundID int64) {
	materials, err := s.materials.ListByRound(ctx, roundID)
	if err != nil {
		s.log.Warn().Err(err).Int64("round_id", roundID).Msg("material purge listing failed")
		return
	}
	for _, m := range materials {
		s.removeStoredFile(m)
	}
}

func (s *MaterialService) removeStoredFile(m model.RoundMaterial) {
	stored, ok := storedMaterialName(m)
	if !ok {
		return
	}
	path := filepath.Join(s.uploadDir, "materials", stored)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("path", path).Msg("material file removal failed")
	}
}

// storedMaterialName extracts the on-disk filename from a material's
// URL. Only file uploads under the materials prefix have one; the
// prefix check keeps a malformed URL from reaching outside the
// materials directory.
func storedMaterialName(m model.RoundMaterial) (string, bool) {
	if m.MaterialType != model.MaterialTypeFile {
		return "", false
	}
	stored, ok := strings.CutPrefix(m.URL, materialURLPrefix)
	if !ok || stored == "" || stored != filepath.Base(stored) {
		return "", false
	}
	return stored, true
}
