package model

import "time"

// MaterialType distinguishes linked videos from uploaded documents.
type MaterialType string

const (
	MaterialTypeYouTube MaterialType = "YOUTUBE"
	MaterialTypeFile    MaterialType = "FILE"
)

// RoundMaterial is a study resource attached to a round: a YouTube link
// or an uploaded document (PPT/PDF) served from /uploads/materials.
type RoundMaterial struct {
	ID           int64        `json:"id"`
	RoundID      int64        `json:"roundId"`
	MaterialType MaterialType `json:"materialType"`
	Title        string       `json:"title"`
	URL          string       `json:"url"`
	FileName     string       `json:"fileName,omitempty"`
	SeqNo        int          `json:"seqNo"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// AddYouTubeMaterialRequest attaches a video link to a round.
type AddYouTubeMaterialRequest struct {
	Title string `json:"title"`
	URL   string `json:"url" binding:"required,url"`
}
