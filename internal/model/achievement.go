package model

import "time"

// Tier enumerates achievement tiers in ascending order.
type Tier string

const (
	TierBronze  Tier = "BRONZE"
	TierSilver  Tier = "SILVER"
	TierGold    Tier = "GOLD"
	TierDiamond Tier = "DIAMOND"
)

// Tiers lists all tiers in ascending order.
var Tiers = []Tier{TierBronze, TierSilver, TierGold, TierDiamond}

// AchievementCategory groups achievements by the event that advances them.
type AchievementCategory string

const (
	CategoryExam      AchievementCategory = "EXAM"
	CategoryScore     AchievementCategory = "SCORE"
	CategorySpeed     AchievementCategory = "SPEED"
	CategoryStreak    AchievementCategory = "STREAK"
	CategoryStudy     AchievementCategory = "STUDY"
	CategoryTime      AchievementCategory = "TIME"
	CategorySpecial   AchievementCategory = "SPECIAL"
	CategoryVocab     AchievementCategory = "VOCAB"
	CategoryChallenge AchievementCategory = "CHALLENGE"
)

// Achievement is a catalog entry. Tiered achievements carry per-tier
// thresholds; speed achievements interpret them in reverse (lower is better).
type Achievement struct {
	ID             string              `json:"id"`
	Category       AchievementCategory `json:"category"`
	NameKR         string              `json:"nameKr"`
	NameEN         string              `json:"nameEn"`
	DescriptionKR  string              `json:"descriptionKr"`
	Icon           string              `json:"icon"`
	IsHidden       bool                `json:"isHidden"`
	IsTiered       bool                `json:"isTiered"`
	Threshold      int                 `json:"threshold,omitempty"`
	TierThresholds map[Tier]int        `json:"tierThresholds,omitempty"`
	GrantsBadgeAt  *Tier               `json:"grantsBadgeAt,omitempty"`
	BadgeID        string              `json:"badgeId,omitempty"`
	DisplayOrder   int                 `json:"displayOrder"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// UserAchievement records an unlocked achievement tier.
type UserAchievement struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	AchievementID string    `json:"achievementId"`
	Tier          *Tier     `json:"tier,omitempty"`
	CurrentValue  int       `json:"currentValue"`
	UnlockedAt    time.Time `json:"unlockedAt"`
	IsNotified    bool      `json:"isNotified"`
}

// AchievementProgress tracks how far a user is toward the next tier.
type AchievementProgress struct {
	UserID        int64  `json:"userId"`
	AchievementID string `json:"achievementId"`
	CurrentValue  int    `json:"currentValue"`
	TargetValue   int    `json:"targetValue"`
	NextTier      *Tier  `json:"nextTier,omitempty"`
}

// UserAchievementView joins a catalog entry with the user's unlock state.
type UserAchievementView struct {
	Achievement
	Unlocked     bool       `json:"unlocked"`
	UnlockedTier *Tier      `json:"unlockedTier,omitempty"`
	CurrentValue int        `json:"currentValue"`
	TargetValue  int        `json:"targetValue,omitempty"`
	UnlockedAt   *time.Time `json:"unlockedAt,omitempty"`
}

// AchievementSummary is the per-user headline numbers.
type AchievementSummary struct {
	UserID        int64 `json:"userId"`
	UnlockedCount int   `json:"unlockedCount"`
	TotalCount    int   `json:"totalCount"`
	BadgeCount    int   `json:"badgeCount"`
}

// MarkReadRequest acknowledges unlock notifications.
type MarkReadRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

// UnlockEvent is published on Redis Pub/Sub when an achievement unlocks
// and pushed to WebSocket subscribers.
type UnlockEvent struct {
	UnlockID      int64     `json:"unlockId,omitempty"`
	UserID        int64     `json:"userId"`
	AchievementID string    `json:"achievementId"`
	NameKR        string    `json:"nameKr"`
	Icon          string    `json:"icon"`
	Tier          *Tier     `json:"tier,omitempty"`
	BadgeID       string    `json:"badgeId,omitempty"`
	UnlockedAt    time.Time `json:"unlockedAt"`
}

// CheckEvent is the payload queued for the achievement worker.
type CheckEvent struct {
	UserID int64  `json:"userId"`
	Event  string `json:"event"`
	ExamID int64  `json:"examId,omitempty"`
	Action string `json:"action,omitempty"`
}

// Achievement check event names.
const (
	CheckEventLogin        = "LOGIN"
	CheckEventExamComplete = "EXAM_COMPLETE"
	CheckEventStudyAction  = "STUDY_ACTION"
)
