package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// captureLogs redirects the global zerolog output for the duration of fn and
// returns what was written.
func captureLogs(fn func()) string {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()
	fn()
	return buf.String()
}

func TestRedactingLogger_ScrubsPIIFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RedactingLogger(RedactOptions{}))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	out := captureLogs(func() {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/ok?email=jane@example.com&phone=%2B1-555-123-4567&id=6f1e0a52-9f9d-4cf0-8c0e-2b1f6d6f7a11", nil)
		r.ServeHTTP(w, req)
	})

	for _, leaked := range []string{"jane@example.com", "555-123-4567", "6f1e0a52"} {
		if strings.Contains(out, leaked) {
			t.Fatalf("log leaked %q: %s", leaked, out)
		}
	}
	for _, marker := range []string{"[REDACTED:email]", "[REDACTED:phone]", "[REDACTED:id]"} {
		if !strings.Contains(out, marker) {
			t.Fatalf("log missing %q: %s", marker, out)
		}
	}
}

func TestRedactingLogger_MasksSensitiveHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RedactingLogger(RedactOptions{MaskHeaders: []string{"Cf-Access-Jwt-Assertion"}}))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	out := captureLogs(func() {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("Authorization", "Bearer super-secret")
		req.Header.Set("Cf-Access-Jwt-Assertion", "eyJhbGciOi.header.payload")
		r.ServeHTTP(w, req)
	})

	if strings.Contains(out, "super-secret") || strings.Contains(out, "eyJhbGciOi") {
		t.Fatalf("log leaked credential material: %s", out)
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Fatalf("expected masked header marker: %s", out)
	}
}

func TestRedactingLogger_LevelFollowsStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RedactingLogger(RedactOptions{}))
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	out := captureLogs(func() {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bad", nil))
	})
	if !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("4xx should log at warn: %s", out)
	}

	out = captureLogs(func() {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})
	if !strings.Contains(out, `"level":"error"`) {
		t.Fatalf("5xx should log at error: %s", out)
	}
}
