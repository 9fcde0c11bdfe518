package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSecretToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		secret   string
		header   string
		expected int
	}{
		{name: "match", secret: "abc", header: "abc", expected: http.StatusOK},
		{name: "mismatch", secret: "abc", header: "abd", expected: http.StatusUnauthorized},
		{name: "missing", secret: "abc", expected: http.StatusUnauthorized},
		{name: "empty secret", secret: "", header: "", expected: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/", SecretToken("X-Token", tt.secret), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set("X-Token", tt.header)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, resp.Code)
			}
		})
	}
}

func TestRequestLoggerLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	router := gin.New()
	router.Use(RequestLogger(logger, "/healthz"))
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if buf.Len() != 0 {
		t.Fatalf("quiet path must log below info, got %s", buf.String())
	}

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	out := buf.String()
	if !strings.Contains(out, `"level":"ERROR"`) || !strings.Contains(out, `"path":"/boom"`) || !strings.Contains(out, `"status":500`) {
		t.Fatalf("unexpected log output %s", out)
	}
}
