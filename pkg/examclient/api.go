package examclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"time"
)

// Exam modes.
const (
	ModeOnline  = "ONLINE"
	ModeOffline = "OFFLINE"
)

// Session is one attempt at a round. The server owns every field; the
// client holds a read-mostly snapshot refreshed after submit.
type Session struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	RoundID      int64      `json:"roundId"`
	Mode         string     `json:"mode"`
	TotalCount   int        `json:"totalCount"`
	CorrectCount int        `json:"correctCount"`
	Score        int        `json:"score"`
	IsPassed     bool       `json:"isPassed"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"startedAt"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty"`
}

// Question is immutable for the duration of a session. The server
// returns non-review questions first, then review questions.
type Question struct {
	ID           int64  `json:"id"`
	RoundID      int64  `json:"roundId"`
	QuestionType string `json:"questionType"`
	AnswerType   string `json:"answerType"`
	QuestionText string `json:"questionText"`
	Option1      string `json:"option1,omitempty"`
	Option2      string `json:"option2,omitempty"`
	Option3      string `json:"option3,omitempty"`
	Option4      string `json:"option4,omitempty"`
	Hint         string `json:"hint,omitempty"`
	SeqNo        int    `json:"seqNo"`
	IsReview     bool   `json:"isReview"`
}

// Answer is one saved answer within a session.
type Answer struct {
	QuestionID int64  `json:"questionId"`
	UserAnswer string `json:"userAnswer"`
	IsCorrect  bool   `json:"isCorrect"`
}

// OCRResult is one extracted answer, keyed by sheet position.
type OCRResult struct {
	QuestionNumber int    `json:"questionNumber"`
	UserAnswer     string `json:"userAnswer"`
}

// OCRReport is the extraction endpoint's full response.
type OCRReport struct {
	OCRResults    []OCRResult `json:"ocrResults"`
	QuestionCount int         `json:"questionCount"`
}

// OfflineAnswer is one reviewed answer for an offline submission.
type OfflineAnswer struct {
	QuestionNumber int    `json:"questionNumber"`
	UserAnswer     string `json:"userAnswer"`
}

// RankingEntry is one leaderboard row, ordered by score descending.
type RankingEntry struct {
	Rank         int    `json:"rank"`
	UserID       int64  `json:"userId"`
	UserName     string `json:"userName"`
	Score        int    `json:"score"`
	CorrectCount int    `json:"correctCount"`
	TotalCount   int    `json:"totalCount"`
	IsPassed     bool   `json:"isPassed"`
}

// StartExam begins (or resumes) an exam for a round.
func (c *Client) StartExam(ctx context.Context, userID, roundID int64, mode string) (*Session, error) {
	body := map[string]any{"userId": userID, "roundId": roundID, "mode": mode}
	var out struct {
		Exam *Session `json:"exam"`
	}
	if err := c.Post(ctx, "/api/exams/start", body, &out); err != nil {
		return nil, err
	}
	return out.Exam, nil
}

// Questions retrieves a round's question list in server order.
func (c *Client) Questions(ctx context.Context, roundID int64) ([]Question, error) {
	var out struct {
		Questions []Question `json:"questions"`
	}
	if err := c.Get(ctx, fmt.Sprintf("/api/rounds/%d/questions", roundID), &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

// Answers retrieves a session's saved answers, for resume.
func (c *Client) Answers(ctx context.Context, examID int64) ([]Answer, error) {
	var out struct {
		Answers []Answer `json:"answers"`
	}
	if err := c.Get(ctx, fmt.Sprintf("/api/exams/%d/answers", examID), &out); err != nil {
		return nil, err
	}
	return out.Answers, nil
}

// SaveAnswer stores one question's answer.
func (c *Client) SaveAnswer(ctx context.Context, examID, questionID int64, answer string) error {
	body := map[string]string{"answer": answer}
	return c.Put(ctx, fmt.Sprintf("/api/exams/%d/answers/%d", examID, questionID), body, nil)
}

// Submit grades the session and returns the final snapshot.
func (c *Client) Submit(ctx context.Context, examID int64) (*Session, error) {
	var out struct {
		Exam *Session `json:"exam"`
	}
	if err := c.Post(ctx, fmt.Sprintf("/api/exams/%d/submit", examID), nil, &out); err != nil {
		return nil, err
	}
	return out.Exam, nil
}

// SubmitOffline submits a full reviewed answer sheet.
func (c *Client) SubmitOffline(ctx context.Context, examID int64, answers []OfflineAnswer) (*Session, error) {
	body := map[string]any{"answers": answers}
	var out struct {
		Exam *Session `json:"exam"`
	}
	if err := c.Post(ctx, fmt.Sprintf("/api/exams/%d/submit-offline", examID), body, &out); err != nil {
		return nil, err
	}
	return out.Exam, nil
}

// ExtractAnswers uploads an answer-sheet photo for OCR extraction.
func (c *Client) ExtractAnswers(ctx context.Context, examID int64, filename string, image io.Reader) (*OCRReport, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var report OCRReport
	if err := c.PostMultipart(ctx, fmt.Sprintf("/api/exams/%d/ocr", examID), mw.FormDataContentType(), &buf, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Ranking retrieves a round's leaderboard.
func (c *Client) Ranking(ctx context.Context, roundID int64) ([]RankingEntry, error) {
	var out struct {
		Ranking []RankingEntry `json:"ranking"`
	}
	if err := c.Get(ctx, fmt.Sprintf("/api/rounds/%d/ranking", roundID), &out); err != nil {
		return nil, err
	}
	return out.Ranking, nil
}
