package examclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization = %q, want bearer token", got)
		}
		w.Write([]byte(`{"data":{"exam":{"id":7,"status":"IN_PROGRESS"}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"))
	var out struct {
		Exam *Session `json:"exam"`
	}
	if err := c.Get(context.Background(), "/api/exams/7", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Exam == nil || out.Exam.ID != 7 {
		t.Errorf("exam = %+v, want id 7", out.Exam)
	}
}

func TestClientErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":{"code":"ROUND_COMPLETED","message":"round already completed"}}`))
	}))
	defer srv.Close()

	err := New(srv.URL).Post(context.Background(), "/api/exams/start", map[string]int{"roundId": 1}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Code != "ROUND_COMPLETED" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestClientEmptyBodyResolvesWithoutDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var out struct{ Anything string }
	if err := New(srv.URL).Get(context.Background(), "/api/whatever", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
}
