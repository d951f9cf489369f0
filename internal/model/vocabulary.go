package model

import "time"

// VocabularyWord is a single English/Korean word pair attached to a round.
type VocabularyWord struct {
	ID        int64     `json:"id"`
	RoundID   int64     `json:"roundId"`
	English   string    `json:"english"`
	Korean    string    `json:"korean"`
	Phonetic  string    `json:"phonetic,omitempty"`
	SeqNo     int       `json:"seqNo"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddVocabularyRequest uploads word pairs in "english:korean" line format.
type AddVocabularyRequest struct {
	Words []string `json:"words" binding:"required,min=1,dive,min=1"`
}
