package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/repository"
)

// AchievementService serves the achievement catalog and per-user views.
type AchievementService struct {
	achievements *repository.AchievementRepository
	badges       *repository.BadgeRepository
	log          zerolog.Logger
}

// NewAchievementService creates a new AchievementService.
func NewAchievementService(achievements *repository.AchievementRepository, badges *repository.BadgeRepository) *AchievementService {
	return &AchievementService{
		achievements: achievements,
		badges:       badges,
		log:          log.With().Str("component", "achievement_service").Logger(),
	}
}

// Catalog returns the full achievement catalog in display order.
func (s *AchievementService) Catalog(ctx context.Context) ([]model.Achievement, error) {
	return s.achievements.ListCatalog(ctx)
}

// UserView merges the catalog with one user's unlocks and progress.
// Hidden achievements the user has not unlocked are masked.
func (s *AchievementService) UserView(ctx context.Context, userID int64) ([]model.UserAchievementView, error) {
	catalog, err := s.achievements.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	unlocks, err := s.achievements.ListUnlocks(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress, err := s.achievements.ListProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	best := make(map[string]model.UserAchievement, len(unlocks))
	for _, ua := range unlocks {
		held, ok := best[ua.AchievementID]
		if !ok || tierIndex(ua.Tier) > tierIndex(held.Tier) {
			best[ua.AchievementID] = ua
		}
	}

	views := make([]model.UserAchievementView, 0, len(catalog))
	for _, a := range catalog {
		view := model.UserAchievementView{Achievement: a}
		if ua, ok := best[a.ID]; ok {
			view.Unlocked = true
			view.UnlockedTier = ua.Tier
			view.CurrentValue = ua.CurrentValue
			unlockedAt := ua.UnlockedAt
			view.UnlockedAt = &unlockedAt
		}
		if p, ok := progress[a.ID]; ok {
			view.CurrentValue = p.CurrentValue
			view.TargetValue = p.TargetValue
		}
		if a.IsHidden && !view.Unlocked {
			view.NameKR = "???"
			view.NameEN = "???"
			view.DescriptionKR = "???"
			view.Icon = ""
			view.Threshold = 0
			view.TierThresholds = nil
			view.TargetValue = 0
		}
		views = append(views, view)
	}
	return views, nil
}

// Summary returns a user's headline achievement numbers.
func (s *AchievementService) Summary(ctx context.Context, userID int64) (*model.AchievementSummary, error) {
	unlocked, err := s.achievements.CountUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	total, err := s.achievements.CountCatalog(ctx)
	if err != nil {
		return nil, err
	}
	badges, err := s.badges.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.AchievementSummary{
		UserID:        userID,
		UnlockedCount: unlocked,
		TotalCount:    total,
		BadgeCount:    badges,
	}, nil
}

// Unread returns a user's unnotified unlocks joined with catalog info,
// oldest first. Used to replay notifications missed while offline.
func (s *AchievementService) Unread(ctx context.Context, userID int64) ([]model.UnlockEvent, error) {
	unread, err := s.achievements.ListUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(unread) == 0 {
		return []model.UnlockEvent{}, nil
	}
	catalog, err := s.achievements.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Achievement, len(catalog))
	for _, a := range catalog {
		byID[a.ID] = a
	}

	events := make([]model.UnlockEvent, 0, len(unread))
	for _, ua := range unread {
		a, ok := byID[ua.AchievementID]
		if !ok {
			s.log.Warn().Str("achievement_id", ua.AchievementID).Msg("unlock references unknown achievement")
			continue
		}
		events = append(events, model.UnlockEvent{
			UnlockID:      ua.ID,
			UserID:        ua.UserID,
			AchievementID: ua.AchievementID,
			NameKR:        a.NameKR,
			Icon:          a.Icon,
			Tier:          ua.Tier,
			BadgeID:       a.BadgeID,
			UnlockedAt:    ua.UnlockedAt,
		})
	}
	return events, nil
}

// MarkRead acknowledges unlock notifications by row ID.
func (s *AchievementService) MarkRead(ctx context.Context, userID int64, ids []int64) error {
	return s.achievements.MarkRead(ctx, userID, ids)
}
