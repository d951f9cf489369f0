package model

import "time"

// BadgeRarity enumerates badge rarity levels.
type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "COMMON"
	RarityRare      BadgeRarity = "RARE"
	RarityEpic      BadgeRarity = "EPIC"
	RarityLegendary BadgeRarity = "LEGENDARY"
)

// Badge is a catalog entry awarded by an achievement.
type Badge struct {
	ID            string      `json:"id"`
	AchievementID string      `json:"achievementId"`
	NameKR        string      `json:"nameKr"`
	NameEN        string      `json:"nameEn"`
	DescriptionKR string      `json:"descriptionKr"`
	Icon          string      `json:"icon"`
	Rarity        BadgeRarity `json:"rarity"`
	ProfileEffect string      `json:"profileEffect,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// UserBadge records an earned badge and, if equipped, its display slot.
type UserBadge struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	BadgeID    string    `json:"badgeId"`
	SlotNumber *int      `json:"slotNumber,omitempty"`
	EarnedAt   time.Time `json:"earnedAt"`
}

// UserBadgeView joins an earned badge with its catalog entry.
type UserBadgeView struct {
	Badge
	SlotNumber *int      `json:"slotNumber,omitempty"`
	EarnedAt   time.Time `json:"earnedAt"`
}

// EquipBadgeRequest places an earned badge into a display slot.
type EquipBadgeRequest struct {
	BadgeID    string `json:"badgeId" binding:"required"`
	SlotNumber int    `json:"slotNumber" binding:"required,min=1,max=3"`
}

// UnequipBadgeRequest removes a badge from its slot.
type UnequipBadgeRequest struct {
	BadgeID string `json:"badgeId" binding:"required"`
}
