package examclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func offlineServer(t *testing.T, ocr []OCRResult, submitted *[]OfflineAnswer) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/exams/42/ocr", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ocr request is not multipart: %v", err)
		}
		payload, _ := json.Marshal(OCRReport{OCRResults: ocr, QuestionCount: 5})
		fmt.Fprintf(w, `{"data":%s}`, payload)
	})
	mux.HandleFunc("POST /api/exams/42/submit-offline", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Answers []OfflineAnswer `json:"answers"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		*submitted = body.Answers
		fmt.Fprint(w, `{"data":{"exam":{"id":42,"status":"COMPLETED"}}}`)
	})

	return httptest.NewServer(mux)
}

func TestOfflineWizardPadsMissingAnswers(t *testing.T) {
	ocr := []OCRResult{
		{QuestionNumber: 1, UserAnswer: "cat"},
		{QuestionNumber: 3, UserAnswer: "dog"},
		{QuestionNumber: 5, UserAnswer: "bird"},
	}
	var submitted []OfflineAnswer
	srv := offlineServer(t, ocr, &submitted)
	defer srv.Close()

	w := NewOfflineWizard(New(srv.URL), 42, 5)
	if err := w.SetImage("sheet.jpg", []byte("fake-image")); err != nil {
		t.Fatalf("set image: %v", err)
	}
	if err := w.RunOCR(context.Background()); err != nil {
		t.Fatalf("run ocr: %v", err)
	}
	if w.Step() != StepReview {
		t.Fatalf("step = %s, want %s", w.Step(), StepReview)
	}

	result, err := w.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Status != "COMPLETED" {
		t.Errorf("status = %s, want COMPLETED", result.Status)
	}

	if len(submitted) != 5 {
		t.Fatalf("payload size = %d, want 5", len(submitted))
	}
	want := map[int]string{1: "cat", 2: "", 3: "dog", 4: "", 5: "bird"}
	for i, a := range submitted {
		if a.QuestionNumber != i+1 {
			t.Errorf("entry %d question = %d, want %d", i, a.QuestionNumber, i+1)
		}
		if a.UserAnswer != want[a.QuestionNumber] {
			t.Errorf("q%d answer = %q, want %q", a.QuestionNumber, a.UserAnswer, want[a.QuestionNumber])
		}
	}
}

func TestOfflineWizardReviewEdits(t *testing.T) {
	ocr := []OCRResult{{QuestionNumber: 2, UserAnswer: "cot"}}
	var submitted []OfflineAnswer
	srv := offlineServer(t, ocr, &submitted)
	defer srv.Close()

	w := NewOfflineWizard(New(srv.URL), 42, 3)
	w.SetImage("sheet.jpg", []byte("fake-image"))
	if err := w.RunOCR(context.Background()); err != nil {
		t.Fatalf("run ocr: %v", err)
	}

	// OCR is a draft: the user corrects it.
	if err := w.SetAnswer(2, "cat"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if _, err := w.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted[1].UserAnswer != "cat" {
		t.Errorf("q2 answer = %q, want %q", submitted[1].UserAnswer, "cat")
	}
}

func TestOfflineWizardStepGuards(t *testing.T) {
	w := NewOfflineWizard(New("http://unused"), 42, 3)

	if err := w.RunOCR(context.Background()); err != ErrNoImage {
		t.Errorf("ocr without image err = %v, want ErrNoImage", err)
	}
	if err := w.SetAnswer(1, "x"); err != ErrWrongStep {
		t.Errorf("edit in upload step err = %v, want ErrWrongStep", err)
	}
	if _, err := w.Submit(context.Background()); err != ErrWrongStep {
		t.Errorf("submit in upload step err = %v, want ErrWrongStep", err)
	}
}

func TestOfflineWizardReset(t *testing.T) {
	ocr := []OCRResult{{QuestionNumber: 1, UserAnswer: "cat"}}
	var submitted []OfflineAnswer
	srv := offlineServer(t, ocr, &submitted)
	defer srv.Close()

	w := NewOfflineWizard(New(srv.URL), 42, 3)
	w.SetImage("sheet.jpg", []byte("fake-image"))
	if err := w.RunOCR(context.Background()); err != nil {
		t.Fatalf("run ocr: %v", err)
	}

	w.Reset()
	if w.Step() != StepUpload {
		t.Errorf("step after reset = %s, want %s", w.Step(), StepUpload)
	}
	if len(w.Answers()) != 0 {
		t.Errorf("answers after reset = %v, want empty", w.Answers())
	}
}
