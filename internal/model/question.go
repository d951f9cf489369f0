package model

import "time"

// AnswerType enumerates how a question is answered.
type AnswerType string

const (
	AnswerTypeChoice AnswerType = "CHOICE"
	AnswerTypeText   AnswerType = "TEXT"
)

// Question belongs to a round. Review questions are copies drawn from the
// previous round and are listed after the regular ones.
type Question struct {
	ID           int64      `json:"id"`
	RoundID      int64      `json:"roundId"`
	QuestionType string     `json:"questionType"`
	AnswerType   AnswerType `json:"answerType"`
	QuestionText string     `json:"questionText"`
	Answer       string     `json:"-"`
	AltAnswers   string     `json:"-"`
	Option1      string     `json:"option1,omitempty"`
	Option2      string     `json:"option2,omitempty"`
	Option3      string     `json:"option3,omitempty"`
	Option4      string     `json:"option4,omitempty"`
	Hint         string     `json:"hint,omitempty"`
	SeqNo        int        `json:"seqNo"`
	IsReview     bool       `json:"isReview"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// CreateQuestionRequest is the payload for adding a question to a round.
type CreateQuestionRequest struct {
	QuestionType string     `json:"questionType" binding:"omitempty,max=50"`
	AnswerType   AnswerType `json:"answerType" binding:"required,oneof=CHOICE TEXT"`
	QuestionText string     `json:"questionText" binding:"required,min=1"`
	Answer       string     `json:"answer" binding:"required,min=1"`
	AltAnswers   string     `json:"altAnswers"`
	Option1      string     `json:"option1"`
	Option2      string     `json:"option2"`
	Option3      string     `json:"option3"`
	Option4      string     `json:"option4"`
	Hint         string     `json:"hint"`
	SeqNo        int        `json:"seqNo" binding:"omitempty,min=1"`
}
