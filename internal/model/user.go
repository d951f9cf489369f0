package model

import "time"

// User is a named profile. There are no passwords: selecting a name that
// does not exist yet creates the profile.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginRequest is the payload for profile selection.
type LoginRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// LoginResponse is returned after a profile is selected or created.
type LoginResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Created bool   `json:"created"`
}

// UserStats aggregates a user's exam history.
type UserStats struct {
	UserID         int64   `json:"userId"`
	UserName       string  `json:"userName"`
	ExamCount      int     `json:"examCount"`
	PassedCount    int     `json:"passedCount"`
	AverageScore   float64 `json:"averageScore"`
	BestScore      int     `json:"bestScore"`
	TotalCorrect   int     `json:"totalCorrect"`
	TotalQuestions int     `json:"totalQuestions"`
	LastExamAt     *string `json:"lastExamAt,omitempty"`
	PassRate       float64 `json:"passRate"`
	RoundsTaken    []int64 `json:"roundsTaken,omitempty"`
}
