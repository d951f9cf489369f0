package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

// BadgeRepository handles badge catalog and ownership data access.
type BadgeRepository struct {
	pool *pgxpool.Pool
}

// NewBadgeRepository creates a new BadgeRepository.
func NewBadgeRepository(pool *pgxpool.Pool) *BadgeRepository {
	return &BadgeRepository{pool: pool}
}

const badgeColumns = `id, achievement_id, name_kr, name_en, description_kr, icon,
	rarity, profile_effect, created_at`

// ListCatalog retrieves the full badge catalog.
func (r *BadgeRepository) ListCatalog(ctx context.Context) ([]model.Badge, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+badgeColumns+` FROM badges ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []model.Badge
	for rows.Next() {
		var b model.Badge
		if err := rows.Scan(&b.ID, &b.AchievementID, &b.NameKR, &b.NameEN, &b.DescriptionKR,
			&b.Icon, &b.Rarity, &b.ProfileEffect, &b.CreatedAt); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// ListByUser retrieves a user's earned badges joined with catalog data.
func (r *BadgeRepository) ListByUser(ctx context.Context, userID int64) ([]model.UserBadgeView, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.achievement_id, b.name_kr, b.name_en, b.description_kr, b.icon,
		        b.rarity, b.profile_effect, b.created_at, ub.slot_number, ub.earned_at
		 FROM user_badges ub
		 JOIN badges b ON ub.badge_id = b.id
		 WHERE ub.user_id = $1
		 ORDER BY ub.earned_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBadgeViews(rows)
}

// ListEquipped retrieves a user's equipped badges in slot order.
func (r *BadgeRepository) ListEquipped(ctx context.Context, userID int64) ([]model.UserBadgeView, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.achievement_id, b.name_kr, b.name_en, b.description_kr, b.icon,
		        b.rarity, b.profile_effect, b.created_at, ub.slot_number, ub.earned_at
		 FROM user_badges ub
		 JOIN badges b ON ub.badge_id = b.id
		 WHERE ub.user_id = $1 AND ub.slot_number IS NOT NULL
		 ORDER BY ub.slot_number ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBadgeViews(rows)
}

// ListAllEquipped retrieves every user's equipped badges keyed by user ID.
func (r *BadgeRepository) ListAllEquipped(ctx context.Context) (map[int64][]model.UserBadgeView, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT ub.user_id, b.id, b.achievement_id, b.name_kr, b.name_en, b.description_kr, b.icon,
		        b.rarity, b.profile_effect, b.created_at, ub.slot_number, ub.earned_at
		 FROM user_badges ub
		 JOIN badges b ON ub.badge_id = b.id
		 WHERE ub.slot_number IS NOT NULL
		 ORDER BY ub.user_id ASC, ub.slot_number ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	equipped := make(map[int64][]model.UserBadgeView)
	for rows.Next() {
		var userID int64
		var v model.UserBadgeView
		if err := rows.Scan(&userID, &v.ID, &v.AchievementID, &v.NameKR, &v.NameEN,
			&v.DescriptionKR, &v.Icon, &v.Rarity, &v.ProfileEffect, &v.CreatedAt,
			&v.SlotNumber, &v.EarnedAt); err != nil {
			return nil, err
		}
		equipped[userID] = append(equipped[userID], v)
	}
	return equipped, rows.Err()
}

// Owns reports whether a user has earned a badge.
func (r *BadgeRepository) Owns(ctx context.Context, userID int64, badgeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_badges WHERE user_id = $1 AND badge_id = $2)`,
		userID, badgeID).Scan(&exists)
	return exists, err
}

// Award grants a badge. Awarding an already-owned badge is a no-op.
func (r *BadgeRepository) Award(ctx context.Context, userID int64, badgeID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_badges (user_id, badge_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, badge_id) DO NOTHING`, userID, badgeID)
	return err
}

// Equip places a badge in a slot, displacing whatever occupied it.
func (r *BadgeRepository) Equip(ctx context.Context, userID int64, badgeID string, slot int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Free the slot, then move the badge into it.
	if _, err := tx.Exec(ctx,
		`UPDATE user_badges SET slot_number = NULL
		 WHERE user_id = $1 AND slot_number = $2`, userID, slot); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE user_badges SET slot_number = $1
		 WHERE user_id = $2 AND badge_id = $3`, slot, userID, badgeID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Unequip removes a badge from its slot.
func (r *BadgeRepository) Unequip(ctx context.Context, userID int64, badgeID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE user_badges SET slot_number = NULL
		 WHERE user_id = $1 AND badge_id = $2`, userID, badgeID)
	return err
}

// CountByUser returns how many badges a user has earned.
func (r *BadgeRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_badges WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func collectBadgeViews(rows pgx.Rows) ([]model.UserBadgeView, error) {
	var views []model.UserBadgeView
	for rows.Next() {
		var v model.UserBadgeView
		if err := rows.Scan(&v.ID, &v.AchievementID, &v.NameKR, &v.NameEN, &v.DescriptionKR,
			&v.Icon, &v.Rarity, &v.ProfileEffect, &v.CreatedAt, &v.SlotNumber, &v.EarnedAt); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
