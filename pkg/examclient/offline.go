package examclient

import (
	"bytes"
	"context"
	"errors"
	"sort"
)

// WizardStep is the offline wizard's phase.
type WizardStep string

const (
	StepUpload WizardStep = "UPLOAD"
	StepReview WizardStep = "REVIEW"
)

var (
	// ErrNoImage is returned when OCR runs before an image is attached.
	ErrNoImage = errors.New("examclient: no answer-sheet image attached")
	// ErrWrongStep is returned for actions outside the current step.
	ErrWrongStep = errors.New("examclient: action not valid in this step")
)

// OfflineWizard walks the two-step offline flow: upload a photographed
// answer sheet, review the extracted text, submit. OCR output is a
// first draft, never ground truth, so every extracted answer stays
// editable until submit.
type OfflineWizard struct {
	client        *Client
	examID        int64
	questionCount int

	step      WizardStep
	imageName string
	image     []byte
	answers   map[int]string
}

// NewOfflineWizard creates a wizard for one offline session.
func NewOfflineWizard(client *Client, examID int64, questionCount int) *OfflineWizard {
	return &OfflineWizard{
		client:        client,
		examID:        examID,
		questionCount: questionCount,
		step:          StepUpload,
		answers:       make(map[int]string),
	}
}

// Step returns the current phase.
func (w *OfflineWizard) Step() WizardStep { return w.step }

// SetImage attaches the answer-sheet photo. A second call replaces the
// first: the wizard holds exactly one image.
func (w *OfflineWizard) SetImage(name string, data []byte) error {
	if w.step != StepUpload {
		return ErrWrongStep
	}
	w.imageName = name
	w.image = data
	return nil
}

// RunOCR extracts answers from the attached image and advances to the
// review step.
func (w *OfflineWizard) RunOCR(ctx context.Context) error {
	if w.step != StepUpload {
		return ErrWrongStep
	}
	if len(w.image) == 0 {
		return ErrNoImage
	}

	report, err := w.client.ExtractAnswers(ctx, w.examID, w.imageName, bytes.NewReader(w.image))
	if err != nil {
		return err
	}

	for _, r := range report.OCRResults {
		if r.QuestionNumber >= 1 && r.QuestionNumber <= w.questionCount {
			w.answers[r.QuestionNumber] = r.UserAnswer
		}
	}
	w.step = StepReview
	return nil
}

// SetAnswer edits one extracted answer during review.
func (w *OfflineWizard) SetAnswer(questionNumber int, text string) error {
	if w.step != StepReview {
		return ErrWrongStep
	}
	if questionNumber < 1 || questionNumber > w.questionCount {
		return errors.New("examclient: question number out of range")
	}
	w.answers[questionNumber] = text
	return nil
}

// Answers returns the current answer sheet in question order.
func (w *OfflineWizard) Answers() []OfflineAnswer {
	nums := make([]int, 0, len(w.answers))
	for n := range w.answers {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	out := make([]OfflineAnswer, 0, len(nums))
	for _, n := range nums {
		out = append(out, OfflineAnswer{QuestionNumber: n, UserAnswer: w.answers[n]})
	}
	return out
}

// Reset discards all captured state and returns to the upload step.
func (w *OfflineWizard) Reset() {
	w.step = StepUpload
	w.imageName = ""
	w.image = nil
	w.answers = make(map[int]string)
}

// Submit posts the full sheet. The payload always carries exactly one
// entry per question, "" for anything OCR missed, so the server grades
// a complete sheet every time.
func (w *OfflineWizard) Submit(ctx context.Context) (*Session, error) {
	if w.step != StepReview {
		return nil, ErrWrongStep
	}

	sheet := make([]OfflineAnswer, w.questionCount)
	for i := range sheet {
		sheet[i] = OfflineAnswer{QuestionNumber: i + 1, UserAnswer: w.answers[i+1]}
	}
	return w.client.SubmitOffline(ctx, w.examID, sheet)
}
