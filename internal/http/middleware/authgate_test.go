package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chrimage/atlas-firebird-intake-speed/internal/auth"
	"github.com/chrimage/atlas-firebird-intake-speed/internal/config"
)

const testHeader = "Cf-Access-Jwt-Assertion"

func testAssertion(t *testing.T, email string, exp time.Time) string {
	t.Helper()
	seg := func(v map[string]any) string {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal segment: %v", err)
		}
		return base64.RawURLEncoding.EncodeToString(b)
	}
	return seg(map[string]any{"alg": "RS256", "typ": "JWT"}) + "." +
		seg(map[string]any{"email": email, "exp": exp.Unix()}) + ".sig"
}

func gateRouter(t *testing.T, cfg config.AuthConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AuthGate(auth.NewGate(cfg), cfg.IdentityHeader), func(c *gin.Context) {
		email := ""
		if id := IdentityFrom(c); id != nil {
			email = id.Email
		}
		c.JSON(http.StatusOK, gin.H{"email": email})
	})
	return r
}

func TestAuthGate_AllowlistOutcomes(t *testing.T) {
	r := gateRouter(t, config.AuthConfig{
		Mode:           config.AuthAllowlist,
		AdminEmails:    []string{"Admin@Example.com"},
		IdentityHeader: testHeader,
	})
	exp := time.Now().Add(time.Hour)

	// No header -> 401
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no header -> %d", w.Code)
	}

	// Garbage token -> 401 (not 403: no identity was established)
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(testHeader, "not.a.jwt")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token -> %d", w.Code)
	}

	// Expired token -> 401
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(testHeader, testAssertion(t, "admin@example.com", time.Now().Add(-time.Minute)))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expired token -> %d", w.Code)
	}

	// Decodable but not allowlisted -> 403
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(testHeader, testAssertion(t, "stranger@example.com", exp))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-member -> %d", w.Code)
	}

	// Member (case-insensitive) -> 200 with identity in context
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(testHeader, testAssertion(t, "ADMIN@example.COM", exp))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("member -> %d body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if out.Email != "ADMIN@example.COM" {
		t.Fatalf("identity email = %q", out.Email)
	}
}

func TestAuthGate_DisabledAdmitsAnonymous(t *testing.T) {
	r := gateRouter(t, config.AuthConfig{
		Mode:           config.AuthDisabled,
		IdentityHeader: testHeader,
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("disabled mode -> %d", w.Code)
	}
	var out struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if out.Email != "" {
		t.Fatalf("disabled mode produced identity %q", out.Email)
	}
}

func TestAuthGate_DelegatedRequiresDecodableIdentity(t *testing.T) {
	r := gateRouter(t, config.AuthConfig{
		Mode:           config.AuthDelegated,
		IdentityHeader: testHeader,
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("delegated without header -> %d", w.Code)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(testHeader, testAssertion(t, "anyone@example.com", time.Now().Add(time.Hour)))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delegated with identity -> %d", w.Code)
	}
}

func TestIdentityFrom_MissingOrWrongType(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if IdentityFrom(c) != nil {
		t.Fatalf("expected nil identity on empty context")
	}
	c.Set(identityKey, "not-an-identity")
	if IdentityFrom(c) != nil {
		t.Fatalf("expected nil identity on wrong type")
	}
}
