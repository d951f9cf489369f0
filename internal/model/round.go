package model

import "time"

// RoundStatus enumerates round lifecycle states.
type RoundStatus string

const (
	RoundStatusActive    RoundStatus = "ACTIVE"
	RoundStatusCompleted RoundStatus = "COMPLETED"
	RoundStatusArchived  RoundStatus = "ARCHIVED"
)

// Difficulty enumerates round difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Round is a set of questions taken as one exam.
type Round struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	QuestionCount int         `json:"questionCount"`
	Difficulty    Difficulty  `json:"difficulty"`
	PassScore     int         `json:"passScore"`
	Status        RoundStatus `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// CreateRoundRequest is the payload for creating a round.
type CreateRoundRequest struct {
	Title         string     `json:"title" binding:"required,min=1,max=200"`
	Description   string     `json:"description" binding:"max=1000"`
	QuestionCount int        `json:"questionCount" binding:"omitempty,min=1,max=200"`
	Difficulty    Difficulty `json:"difficulty" binding:"omitempty,oneof=EASY MEDIUM HARD"`
	PassScore     int        `json:"passScore" binding:"omitempty,min=1"`
}

// UpdateRoundRequest is the payload for updating a round.
type UpdateRoundRequest struct {
	Title         string     `json:"title" binding:"required,min=1,max=200"`
	Description   string     `json:"description" binding:"max=1000"`
	QuestionCount int        `json:"questionCount" binding:"required,min=1,max=200"`
	Difficulty    Difficulty `json:"difficulty" binding:"required,oneof=EASY MEDIUM HARD"`
	PassScore     int        `json:"passScore" binding:"required,min=1"`
}

// UpdateRoundStatusRequest changes a round's lifecycle state.
type UpdateRoundStatusRequest struct {
	Status RoundStatus `json:"status" binding:"required,oneof=ACTIVE COMPLETED ARCHIVED"`
}

// GenerateReviewRequest asks for review questions copied from the previous round.
type GenerateReviewRequest struct {
	Count int `json:"count" binding:"omitempty,min=1,max=50"`
}

// RoundStats aggregates exam results for a single round.
type RoundStats struct {
	RoundID          int64   `json:"roundId"`
	Title            string  `json:"title"`
	ParticipantCount int     `json:"participantCount"`
	CompletedCount   int     `json:"completedCount"`
	PassedCount      int     `json:"passedCount"`
	AverageScore     float64 `json:"averageScore"`
	HighestScore     int     `json:"highestScore"`
	LowestScore      int     `json:"lowestScore"`
}

// RoundParticipant is one user's standing within a round.
type RoundParticipant struct {
	UserID      int64      `json:"userId"`
	UserName    string     `json:"userName"`
	Score       int        `json:"score"`
	IsPassed    bool       `json:"isPassed"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}
