package examclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDraftSetIsIdempotent(t *testing.T) {
	d := NewDraft()
	d.Set(7, "apple")
	d.Set(7, "apple")
	if got := d.Value(7); got != "apple" {
		t.Errorf("value = %q, want %q", got, "apple")
	}
	if len(d.answers) != 1 {
		t.Errorf("draft size = %d, want 1", len(d.answers))
	}
}

func TestDraftFlushSkipsEmpty(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	d := NewDraft()

	// Never set, then set to empty: neither reaches the server.
	if err := d.Flush(context.Background(), client, 1, 7); err != nil {
		t.Fatalf("flush untouched: %v", err)
	}
	d.Set(7, "")
	if err := d.Flush(context.Background(), client, 1, 7); err != nil {
		t.Fatalf("flush empty: %v", err)
	}
	if calls != 0 {
		t.Fatalf("server calls = %d, want 0", calls)
	}

	d.Set(7, "fox")
	if err := d.Flush(context.Background(), client, 1, 7); err != nil {
		t.Fatalf("flush value: %v", err)
	}
	if calls != 1 {
		t.Errorf("server calls = %d, want 1", calls)
	}
}

func TestDraftSeedIgnoresBlanks(t *testing.T) {
	d := NewDraft()
	d.Seed([]Answer{
		{QuestionID: 1, UserAnswer: "cat"},
		{QuestionID: 2, UserAnswer: ""},
	})
	if d.Value(1) != "cat" {
		t.Errorf("value(1) = %q, want %q", d.Value(1), "cat")
	}
	if _, ok := d.answers[2]; ok {
		t.Error("blank answer was seeded")
	}
}
