// Package ocr extracts handwritten answers from answer-sheet photos.
package ocr

import (
	"context"
	"errors"
)

// Result is one extracted answer, keyed by the question's position on
// the sheet. Unreadable or blank answers come back as "".
type Result struct {
	QuestionNumber int    `json:"questionNumber"`
	UserAnswer     string `json:"userAnswer"`
}

// ErrNotConfigured is returned when no vision provider is available.
var ErrNotConfigured = errors.New("ocr: vision provider not configured")

// Provider reads a photographed answer sheet and returns the answers
// written on it, one per question. Extraction never grades.
type Provider interface {
	ExtractAnswers(ctx context.Context, image []byte, mimeType string, questionCount int) ([]Result, error)
	Name() string
}

// Disabled is the Provider used when no API key is configured. Every
// extraction fails with ErrNotConfigured so the flow surfaces a clear
// error instead of silently returning empty answers.
type Disabled struct{}

func (Disabled) ExtractAnswers(context.Context, []byte, string, int) ([]Result, error) {
	return nil, ErrNotConfigured
}

func (Disabled) Name() string { return "disabled" }
