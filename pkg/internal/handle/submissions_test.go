package handle_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/artvault/pkg/internal/handle"
)

// postSubmission 以 multipart 表单提交投稿.
func postSubmission(t *testing.T, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	engine := gin.New()
	engine.POST("/submissions", handle.Submit)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submissions", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	engine.ServeHTTP(rec, req)

	return rec
}

// 声明了 duration_seconds 就必须是合法非负数，否则 400 而非静默忽略.
func TestSubmitRejectsMalformedDuration(t *testing.T) {
	cases := []struct {
		name     string
		duration string
	}{
		{"not a number", "abc"},
		{"negative", "-5"},
		{"trailing garbage", "12.5s"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postSubmission(t, map[string]string{
				"title":            "clip",
				"author_name":      "anon",
				"duration_seconds": tc.duration,
			})

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestSubmitRejectsMissingMetadata(t *testing.T) {
	rec := postSubmission(t, map[string]string{"title": "untitled"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
