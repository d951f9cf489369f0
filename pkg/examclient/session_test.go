package examclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeExamAPI records the save/submit traffic a controller generates.
type fakeExamAPI struct {
	mu        sync.Mutex
	questions []Question
	saves     []string // "questionID=answer" in arrival order
	submits   int
}

func (f *fakeExamAPI) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	writeData := func(w http.ResponseWriter, v any) {
		payload, _ := json.Marshal(v)
		fmt.Fprintf(w, `{"data":%s}`, payload)
	}

	mux.HandleFunc("POST /api/exams/start", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, map[string]any{"exam": Session{ID: 42, RoundID: 5, Status: "IN_PROGRESS"}})
	})
	mux.HandleFunc("GET /api/rounds/5/questions", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, map[string]any{"questions": f.questions})
	})
	mux.HandleFunc("GET /api/exams/42/answers", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, map[string]any{"answers": []Answer{}})
	})
	mux.HandleFunc("PUT /api/exams/42/answers/{qid}", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Answer string `json:"answer"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.saves = append(f.saves, r.PathValue("qid")+"="+body.Answer)
		f.mu.Unlock()
		writeData(w, map[string]any{})
	})
	mux.HandleFunc("POST /api/exams/42/submit", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.submits++
		f.mu.Unlock()
		writeData(w, map[string]any{"exam": Session{
			ID: 42, RoundID: 5, Status: "COMPLETED",
			TotalCount: len(f.questions), CorrectCount: 2, Score: 2, IsPassed: false,
		}})
	})

	return httptest.NewServer(mux)
}

func sessionQuestions() []Question {
	return []Question{
		{ID: 1, AnswerType: "CHOICE", SeqNo: 1},
		{ID: 2, AnswerType: "CHOICE", SeqNo: 2},
		{ID: 3, AnswerType: "TEXT", SeqNo: 3, IsReview: true},
	}
}

func TestControllerFullFlow(t *testing.T) {
	api := &fakeExamAPI{questions: sessionQuestions()}
	srv := api.server(t)
	defer srv.Close()

	c := NewController(New(srv.URL), 9, 5, zerolog.Nop())
	defer c.Close()

	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if c.State() != StateInProgress {
		t.Fatalf("state = %s, want %s", c.State(), StateInProgress)
	}

	c.Answer(1, "B")
	c.Next(ctx)
	c.Answer(2, "A")
	c.Next(ctx)
	c.Answer(3, "fox")

	result, err := c.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Status != "COMPLETED" {
		t.Errorf("result status = %s, want COMPLETED", result.Status)
	}
	if c.State() != StateSubmitted {
		t.Errorf("state = %s, want %s", c.State(), StateSubmitted)
	}

	// Every visited answer flushed exactly once, in visit order, the
	// last one as part of submit.
	want := []string{"1=B", "2=A", "3=fox"}
	if len(api.saves) != len(want) {
		t.Fatalf("saves = %v, want %v", api.saves, want)
	}
	for i := range want {
		if api.saves[i] != want[i] {
			t.Errorf("save[%d] = %s, want %s", i, api.saves[i], want[i])
		}
	}
	if api.submits != 1 {
		t.Errorf("submits = %d, want 1", api.submits)
	}

	// The countdown is dead after submit.
	if c.timer.Tick() {
		t.Error("timer still live after submit")
	}

	// A second submit cannot reach the server.
	if _, err := c.Submit(ctx); err != ErrNotInProgress {
		t.Errorf("second submit err = %v, want ErrNotInProgress", err)
	}
	if api.submits != 1 {
		t.Errorf("submits after double call = %d, want 1", api.submits)
	}
}

func TestControllerExpiryAutoSubmits(t *testing.T) {
	api := &fakeExamAPI{questions: sessionQuestions()}
	srv := api.server(t)
	defer srv.Close()

	c := NewController(New(srv.URL), 9, 5, zerolog.Nop())
	defer c.Close()
	ticks := manualTicks(c.timer)
	c.SetDuration(2)

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	c.Answer(1, "B")

	ticks <- time.Time{}
	ticks <- time.Time{}

	deadline := time.After(time.Second)
	for c.State() != StateSubmitted {
		select {
		case <-deadline:
			t.Fatalf("state = %s, want %s", c.State(), StateSubmitted)
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
	if api.submits != 1 {
		t.Errorf("submits = %d, want 1", api.submits)
	}
	if len(api.saves) != 1 || api.saves[0] != "1=B" {
		t.Errorf("saves = %v, want [1=B]", api.saves)
	}
}

func TestControllerLoadFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"INTERNAL_ERROR","message":"boom"}}`))
	}))
	defer srv.Close()

	c := NewController(New(srv.URL), 9, 5, zerolog.Nop())
	defer c.Close()

	err := c.Start(context.Background())
	if err == nil {
		t.Fatal("start succeeded against failing server")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Errorf("err = %v, want APIError 500", err)
	}
	if c.State() != StateError {
		t.Errorf("state = %s, want %s", c.State(), StateError)
	}
}
