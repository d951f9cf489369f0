package model

// BookChapter is one chapter of the study book catalog.
type BookChapter struct {
	ID              int64  `json:"id"`
	BookID          string `json:"bookId"`
	BookTitle       string `json:"bookTitle"`
	PartNumber      int    `json:"partNumber"`
	PartTitle       string `json:"partTitle"`
	ChapterLabel    string `json:"chapterLabel"`
	ChapterTitle    string `json:"chapterTitle"`
	SeqNo           int    `json:"seqNo"`
	VocabularyCount int    `json:"vocabularyCount"`
}

// ChapterUsage is a chapter plus the rounds that cover it.
type ChapterUsage struct {
	BookChapter
	RoundIDs []int64 `json:"roundIds"`
}

// ChapterProgress is a chapter plus one user's completion state, derived
// from the rounds the user has passed.
type ChapterProgress struct {
	BookChapter
	Completed bool `json:"completed"`
}

// PartProgress groups chapter progress under a book part.
type PartProgress struct {
	PartNumber     int               `json:"partNumber"`
	PartTitle      string            `json:"partTitle"`
	Chapters       []ChapterProgress `json:"chapters"`
	CompletedCount int               `json:"completedCount"`
}

// BookProgress is one book's full progress tree for a user.
type BookProgress struct {
	BookID         string         `json:"bookId"`
	BookTitle      string         `json:"bookTitle"`
	Parts          []PartProgress `json:"parts"`
	CompletedCount int            `json:"completedCount"`
	ChapterCount   int            `json:"chapterCount"`
}

// AssignChaptersRequest links chapters to a round.
type AssignChaptersRequest struct {
	ChapterIDs []int64 `json:"chapterIds" binding:"required,min=1"`
}
