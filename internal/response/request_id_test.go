package response

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func requestIDRouter(captured *string, logged *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		*captured = c.GetString(ContextKeyRequestID)
		logger := zerolog.Ctx(c.Request.Context()).Output(logged)
		logger.Info().Msg("ping")
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequestIDPreservesCallerHeader(t *testing.T) {
	var captured string
	var logged bytes.Buffer
	r := requestIDRouter(&captured, &logged)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "caller-supplied-id")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "caller-supplied-id" {
		t.Errorf("response header = %q, want caller's id", got)
	}
	if captured != "caller-supplied-id" {
		t.Errorf("context value = %q, want caller's id", captured)
	}
	if !bytes.Contains(logged.Bytes(), []byte("caller-supplied-id")) {
		t.Errorf("request-scoped log %q missing request id", logged.String())
	}
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	var captured string
	var logged bytes.Buffer
	r := requestIDRouter(&captured, &logged)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	header := rec.Header().Get("X-Request-ID")
	if header == "" {
		t.Fatal("expected a generated X-Request-ID header")
	}
	if captured != header {
		t.Errorf("context value %q does not match header %q", captured, header)
	}
}
