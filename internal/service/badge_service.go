package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/repository"
)

// Badge display slots per user.
const badgeSlotCount = 3

// BadgeService handles badge collections and display slot management.
type BadgeService struct {
	badges *repository.BadgeRepository
	log    zerolog.Logger
}

// NewBadgeService creates a new BadgeService.
func NewBadgeService(badges *repository.BadgeRepository) *BadgeService {
	return &BadgeService{
		badges: badges,
		log:    log.With().Str("component", "badge_service").Logger(),
	}
}

// Catalog returns the full badge catalog.
func (s *BadgeService) Catalog(ctx context.Context) ([]model.Badge, error) {
	return s.badges.ListCatalog(ctx)
}

// ListByUser returns the badges a user owns, equipped first.
func (s *BadgeService) ListByUser(ctx context.Context, userID int64) ([]model.UserBadgeView, error) {
	return s.badges.ListByUser(ctx, userID)
}

// Equipped returns a user's equipped badges in slot order.
func (s *BadgeService) Equipped(ctx context.Context, userID int64) ([]model.UserBadgeView, error) {
	return s.badges.ListEquipped(ctx, userID)
}

// Equip places an owned badge into a display slot. The slot's previous
// occupant is unequipped.
func (s *BadgeService) Equip(ctx context.Context, userID int64, badgeID string, slot int) error {
	if slot < 1 || slot > badgeSlotCount {
		return ErrInvalidSlot
	}
	owns, err := s.badges.Owns(ctx, userID, badgeID)
	if err != nil {
		return err
	}
	if !owns {
		return ErrBadgeNotOwned
	}
	return s.badges.Equip(ctx, userID, badgeID, slot)
}

// Unequip removes a badge from its display slot.
func (s *BadgeService) Unequip(ctx context.Context, userID int64, badgeID string) error {
	owns, err := s.badges.Owns(ctx, userID, badgeID)
	if err != nil {
		return err
	}
	if !owns {
		return ErrBadgeNotOwned
	}
	return s.badges.Unequip(ctx, userID, badgeID)
}
