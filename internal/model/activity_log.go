package model

import "time"

// ActivityLog is one recorded user action. The user name is denormalized
// so logs survive profile deletion.
type ActivityLog struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	UserName  string    `json:"userName"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	Page      string    `json:"page,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordLogRequest is the payload for client-side activity recording.
type RecordLogRequest struct {
	Action string `json:"action" binding:"required,min=1,max=100"`
	Detail string `json:"detail" binding:"max=500"`
	Page   string `json:"page" binding:"max=200"`
}

// CleanupLogsRequest prunes logs older than the given number of days.
type CleanupLogsRequest struct {
	Days int `json:"days" binding:"required,min=1"`
}

// TrackActionRequest increments a user's action counter.
type TrackActionRequest struct {
	Action string `json:"action" binding:"required,min=1,max=100"`
}

// ActionCounter is one user's cumulative count for an action.
type ActionCounter struct {
	UserID int64  `json:"userId"`
	Action string `json:"action"`
	Count  int    `json:"count"`
}
