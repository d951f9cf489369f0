package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

// AchievementRepository handles achievement catalog and unlock data access.
type AchievementRepository struct {
	pool *pgxpool.Pool
}

// NewAchievementRepository creates a new AchievementRepository.
func NewAchievementRepository(pool *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{pool: pool}
}

const achievementColumns = `id, category, name_kr, name_en, description_kr, icon,
	is_hidden, is_tiered, threshold, tier_thresholds, grants_badge_at, badge_id, display_order, created_at`

// ListCatalog retrieves the full achievement catalog in display order.
func (r *AchievementRepository) ListCatalog(ctx context.Context) ([]model.Achievement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+achievementColumns+` FROM achievements ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAchievements(rows)
}

// ListByCategory retrieves catalog entries advanced by one event category.
func (r *AchievementRepository) ListByCategory(ctx context.Context, category model.AchievementCategory) ([]model.Achievement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+achievementColumns+`
		 FROM achievements WHERE category = $1
		 ORDER BY display_order ASC, id ASC`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAchievements(rows)
}

// GetByID retrieves one catalog entry.
func (r *AchievementRepository) GetByID(ctx context.Context, id string) (*model.Achievement, error) {
	a := &model.Achievement{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+achievementColumns+` FROM achievements WHERE id = $1`, id,
	).Scan(&a.ID, &a.Category, &a.NameKR, &a.NameEN, &a.DescriptionKR, &a.Icon,
		&a.IsHidden, &a.IsTiered, &a.Threshold, &a.TierThresholds, &a.GrantsBadgeAt,
		&a.BadgeID, &a.DisplayOrder, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CountCatalog returns the catalog size.
func (r *AchievementRepository) CountCatalog(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM achievements`).Scan(&n)
	return n, err
}

// ListUnlocks retrieves a user's unlocked achievements.
func (r *AchievementRepository) ListUnlocks(ctx context.Context, userID int64) ([]model.UserAchievement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, achievement_id, tier, current_value, unlocked_at, is_notified
		 FROM user_achievements
		 WHERE user_id = $1
		 ORDER BY unlocked_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUnlocks(rows)
}

// HasUnlock reports whether a user already holds an achievement at a tier.
// A nil tier matches the untiered unlock row.
func (r *AchievementRepository) HasUnlock(ctx context.Context, userID int64, achievementID string, tier *model.Tier) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM user_achievements
		   WHERE user_id = $1 AND achievement_id = $2 AND tier IS NOT DISTINCT FROM $3
		 )`, userID, achievementID, tier).Scan(&exists)
	return exists, err
}

// InsertUnlock records an unlock. Duplicate unlocks of the same tier are
// absorbed; inserted reports whether a new row was written.
func (r *AchievementRepository) InsertUnlock(ctx context.Context, ua *model.UserAchievement) (inserted bool, err error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO user_achievements (user_id, achievement_id, tier, current_value, is_notified)
		 VALUES ($1, $2, $3, $4, FALSE)
		 ON CONFLICT (user_id, achievement_id, tier) DO NOTHING`,
		ua.UserID, ua.AchievementID, ua.Tier, ua.CurrentValue)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CountUnlocked returns how many distinct achievements a user has unlocked.
func (r *AchievementRepository) CountUnlocked(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT achievement_id) FROM user_achievements WHERE user_id = $1`,
		userID).Scan(&n)
	return n, err
}

// ListUnread retrieves a user's unnotified unlocks, oldest first.
func (r *AchievementRepository) ListUnread(ctx context.Context, userID int64) ([]model.UserAchievement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, achievement_id, tier, current_value, unlocked_at, is_notified
		 FROM user_achievements
		 WHERE user_id = $1 AND is_notified = FALSE
		 ORDER BY unlocked_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUnlocks(rows)
}

// MarkRead flags unlock rows as notified. Rows belonging to other users
// are left untouched.
func (r *AchievementRepository) MarkRead(ctx context.Context, userID int64, ids []int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE user_achievements SET is_notified = TRUE
		 WHERE user_id = $1 AND id = ANY($2)`, userID, ids)
	return err
}

// UpsertProgress stores a user's progress toward an achievement's next tier.
func (r *AchievementRepository) UpsertProgress(ctx context.Context, p *model.AchievementProgress) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO achievement_progress (user_id, achievement_id, current_value, target_value, next_tier)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, achievement_id) DO UPDATE
		   SET current_value = EXCLUDED.current_value,
		       target_value = EXCLUDED.target_value,
		       next_tier = EXCLUDED.next_tier`,
		p.UserID, p.AchievementID, p.CurrentValue, p.TargetValue, p.NextTier)
	return err
}

// ListProgress retrieves a user's progress rows keyed by achievement ID.
func (r *AchievementRepository) ListProgress(ctx context.Context, userID int64) (map[string]model.AchievementProgress, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, achievement_id, current_value, target_value, next_tier
		 FROM achievement_progress WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	progress := make(map[string]model.AchievementProgress)
	for rows.Next() {
		var p model.AchievementProgress
		if err := rows.Scan(&p.UserID, &p.AchievementID, &p.CurrentValue, &p.TargetValue, &p.NextTier); err != nil {
			return nil, err
		}
		progress[p.AchievementID] = p
	}
	return progress, rows.Err()
}

func collectAchievements(rows pgx.Rows) ([]model.Achievement, error) {
	var achievements []model.Achievement
	for rows.Next() {
		var a model.Achievement
		if err := rows.Scan(&a.ID, &a.Category, &a.NameKR, &a.NameEN, &a.DescriptionKR,
			&a.Icon, &a.IsHidden, &a.IsTiered, &a.Threshold, &a.TierThresholds,
			&a.GrantsBadgeAt, &a.BadgeID, &a.DisplayOrder, &a.CreatedAt); err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

func collectUnlocks(rows pgx.Rows) ([]model.UserAchievement, error) {
	var unlocks []model.UserAchievement
	for rows.Next() {
		var ua model.UserAchievement
		if err := rows.Scan(&ua.ID, &ua.UserID, &ua.AchievementID, &ua.Tier,
			&ua.CurrentValue, &ua.UnlockedAt, &ua.IsNotified); err != nil {
			return nil, err
		}
		unlocks = append(unlocks, ua)
	}
	return unlocks, rows.Err()
}
