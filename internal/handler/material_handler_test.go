package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dnflvus-wq/engTest-sub000/internal/response"
)

// The upload guards run before the service is touched, so a nil service
// is enough to exercise them.
func materialUploadRouter(maxBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMaterialHandler(nil, maxBytes)
	r := gin.New()
	r.POST("/api/rounds/:id/materials/file", h.AddFile)
	return r
}

func materialForm(t *testing.T, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if payload != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="file"; filename="slides.pdf"`)
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(payload); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}
	return &body, w.FormDataContentType()
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) response.ErrCode {
	t.Helper()
	var env response.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Error == nil {
		t.Fatalf("expected an error body, got %s", rec.Body.String())
	}
	return env.Error.Code
}

func TestMaterialUploadRequiresFile(t *testing.T) {
	r := materialUploadRouter(1 << 20)
	body, contentType := materialForm(t, "", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/rounds/1/materials/file", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if code := decodeErrorCode(t, rec); code != response.ErrFileRequired {
		t.Errorf("code = %s, want %s", code, response.ErrFileRequired)
	}
}

func TestMaterialUploadRejectsOversize(t *testing.T) {
	r := materialUploadRouter(8)
	body, contentType := materialForm(t, "application/pdf", bytes.Repeat([]byte("a"), 64))

	req := httptest.NewRequest(http.MethodPost, "/api/rounds/1/materials/file", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
	if code := decodeErrorCode(t, rec); code != response.ErrFileTooLarge {
		t.Errorf("code = %s, want %s", code, response.ErrFileTooLarge)
	}
}

func TestMaterialUploadRejectsUnsupportedType(t *testing.T) {
	r := materialUploadRouter(1 << 20)
	body, contentType := materialForm(t, "image/png", []byte("not a document"))

	req := httptest.NewRequest(http.MethodPost, "/api/rounds/1/materials/file", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnsupportedMediaType)
	}
	if code := decodeErrorCode(t, rec); code != response.ErrUnsupportedFile {
		t.Errorf("code = %s, want %s", code, response.ErrUnsupportedFile)
	}
}

func TestMaterialUploadRejectsBadRoundID(t *testing.T) {
	r := materialUploadRouter(1 << 20)
	body, contentType := materialForm(t, "application/pdf", []byte("%PDF-1.4"))

	req := httptest.NewRequest(http.MethodPost, "/api/rounds/abc/materials/file", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if code := decodeErrorCode(t, rec); code != response.ErrInvalidID {
		t.Errorf("code = %s, want %s", code, response.ErrInvalidID)
	}
}
