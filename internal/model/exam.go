package model

import "time"

// ExamMode distinguishes how an exam was taken.
type ExamMode string

const (
	ExamModeOnline  ExamMode = "ONLINE"
	ExamModeOffline ExamMode = "OFFLINE"
)

// ExamStatus enumerates exam attempt states. The transition
// IN_PROGRESS → COMPLETED happens only on the server, at submit.
type ExamStatus string

const (
	ExamStatusInProgress ExamStatus = "IN_PROGRESS"
	ExamStatusCompleted  ExamStatus = "COMPLETED"
)

// Exam is one user's attempt at a round.
type Exam struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	RoundID      int64      `json:"roundId"`
	Mode         ExamMode   `json:"mode"`
	TotalCount   int        `json:"totalCount"`
	CorrectCount int        `json:"correctCount"`
	Score        int        `json:"score"`
	IsPassed     bool       `json:"isPassed"`
	Status       ExamStatus `json:"status"`
	StartedAt    time.Time  `json:"startedAt"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty"`
}

// ExamAnswer is one question's answer within an exam. A blank row is
// created for every round question when the exam starts, so an exam's
// answer set always has the round's full shape.
type ExamAnswer struct {
	ID         int64     `json:"id"`
	ExamID     int64     `json:"examId"`
	QuestionID int64     `json:"questionId"`
	UserAnswer string    `json:"userAnswer"`
	IsCorrect  bool      `json:"isCorrect"`
	OCRRawText string    `json:"ocrRawText,omitempty"`
	ImagePath  string    `json:"imagePath,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// StartExamRequest begins (or resumes) an exam for a round.
type StartExamRequest struct {
	UserID  int64    `json:"userId" binding:"required"`
	RoundID int64    `json:"roundId" binding:"required"`
	Mode    ExamMode `json:"mode" binding:"omitempty,oneof=ONLINE OFFLINE"`
}

// SaveAnswerRequest stores one question's answer during an exam.
type SaveAnswerRequest struct {
	Answer string `json:"answer"`
}

// AnswerResult is returned after grading a single answer.
type AnswerResult struct {
	QuestionID    int64  `json:"questionId"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

// RankingEntry is one row of a round's leaderboard, ordered by score
// descending with earlier submission breaking ties.
type RankingEntry struct {
	Rank         int        `json:"rank"`
	UserID       int64      `json:"userId"`
	UserName     string     `json:"userName"`
	Score        int        `json:"score"`
	CorrectCount int        `json:"correctCount"`
	TotalCount   int        `json:"totalCount"`
	IsPassed     bool       `json:"isPassed"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty"`
}

// OCRResult is one extracted answer from an uploaded answer sheet.
// Extraction never grades: correctness is decided at offline submit.
type OCRResult struct {
	QuestionNumber int    `json:"questionNumber"`
	UserAnswer     string `json:"userAnswer"`
}

// OCRResponse is returned by the answer-sheet extraction endpoint.
type OCRResponse struct {
	OCRResults    []OCRResult `json:"ocrResults"`
	QuestionCount int         `json:"questionCount"`
}

// OfflineAnswer is one reviewed answer submitted after OCR extraction,
// keyed by the question's position within the round.
type OfflineAnswer struct {
	QuestionNumber int    `json:"questionNumber" binding:"required,min=1"`
	UserAnswer     string `json:"userAnswer"`
}

// SubmitOfflineRequest carries the full reviewed answer sheet.
type SubmitOfflineRequest struct {
	Answers []OfflineAnswer `json:"answers" binding:"required,min=1,dive"`
}
