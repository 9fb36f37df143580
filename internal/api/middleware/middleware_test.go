package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/D4rfT/SistemaGestaoCursos/config"
	"github.com/D4rfT/SistemaGestaoCursos/internal/model"
	"github.com/D4rfT/SistemaGestaoCursos/pkg/jwt"
	"github.com/D4rfT/SistemaGestaoCursos/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:         "middleware-test-secret-2026",
		Issuer:            "SistemaGestaoCursos",
		Audience:          "SistemaGestaoCursosClients",
		ExpirationMinutes: 60,
	})
}

type fakeChecker struct {
	revoked map[string]bool
	err     error
}

func (f *fakeChecker) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], f.err
}

type fakeLimiter struct {
	allowed bool
	err     error
	lastKey string
}

func (f *fakeLimiter) CheckRateLimit(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	f.lastKey = key
	return f.allowed, f.err
}

func okHandler(c *gin.Context) { c.Status(http.StatusOK) }

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ── JWTAuth ──

func TestJWTAuth_MissingOrMalformedHeader(t *testing.T) {
	r := gin.New()
	r.GET("/p", JWTAuth(newTestJWT(), nil), okHandler)

	for _, header := range []string{"", "Token abc", "Bearer ", "Bearer not.a.jwt"} {
		req := httptest.NewRequest("GET", "/p", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		if w := do(r, req); w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestJWTAuth_ValidTokenInjectsClaims(t *testing.T) {
	mgr := newTestJWT()
	token, _, err := mgr.GenerateAccessToken("acc-1", "Admin", "admin@x.com", string(model.RoleAdministrator))
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var gotID, gotRole, gotJTI string
	r := gin.New()
	r.GET("/p", JWTAuth(mgr, &fakeChecker{}), func(c *gin.Context) {
		gotID = c.GetString(ContextAccountID)
		gotRole = c.GetString(ContextRole)
		gotJTI = c.GetString(ContextTokenJTI)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	if w := do(r, req); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotID != "acc-1" || gotRole != "administrator" || gotJTI == "" {
		t.Errorf("unexpected context id=%q role=%q jti=%q", gotID, gotRole, gotJTI)
	}
}

func TestJWTAuth_Blacklist(t *testing.T) {
	mgr := newTestJWT()
	token, _, _ := mgr.GenerateAccessToken("acc-1", "Admin", "admin@x.com", "administrator")
	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	tests := []struct {
		name    string
		checker *fakeChecker
		want    int
	}{
		{"revoked", &fakeChecker{revoked: map[string]bool{claims.ID: true}}, http.StatusUnauthorized},
		{"not revoked", &fakeChecker{}, http.StatusOK},
		{"lookup failure degrades", &fakeChecker{revoked: map[string]bool{claims.ID: true}, err: errors.New("redis down")}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/p", JWTAuth(mgr, tt.checker), okHandler)
			req := httptest.NewRequest("GET", "/p", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			if w := do(r, req); w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

// ── RequireCapability ──

func TestRequireCapability(t *testing.T) {
	tests := []struct {
		name string
		role string
		cap  model.Capability
		want int
	}{
		{"staff manages courses", "staff", model.CapManageCourses, http.StatusOK},
		{"staff cannot manage accounts", "staff", model.CapManageAccounts, http.StatusForbidden},
		{"student cannot manage students", "student", model.CapManageStudents, http.StatusForbidden},
		{"student views own data", "student", model.CapViewOwnData, http.StatusOK},
		{"admin runs migrations", "administrator", model.CapRunMigrations, http.StatusOK},
		{"unknown role", "guest", model.CapViewCatalog, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/p", func(c *gin.Context) { c.Set(ContextRole, tt.role) }, RequireCapability(tt.cap), okHandler)
			if w := do(r, httptest.NewRequest("GET", "/p", nil)); w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestRequireCapability_Unauthenticated(t *testing.T) {
	r := gin.New()
	r.GET("/p", RequireCapability(model.CapViewCatalog), okHandler)
	if w := do(r, httptest.NewRequest("GET", "/p", nil)); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ── RateLimit ──

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name    string
		limiter RateLimiter
		limit   int
		want    int
	}{
		{"allowed", &fakeLimiter{allowed: true}, 10, http.StatusOK},
		{"denied", &fakeLimiter{allowed: false}, 10, http.StatusTooManyRequests},
		{"limiter error degrades", &fakeLimiter{err: errors.New("redis down")}, 10, http.StatusOK},
		{"no limiter", nil, 10, http.StatusOK},
		{"disabled", &fakeLimiter{allowed: false}, 0, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/login", RateLimit(tt.limiter, tt.limit, time.Minute), okHandler)
			if w := do(r, httptest.NewRequest("POST", "/login", nil)); w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestRateLimit_KeyIncludesRoute(t *testing.T) {
	limiter := &fakeLimiter{allowed: true}
	r := gin.New()
	r.POST("/login", RateLimit(limiter, 10, time.Minute), okHandler)
	do(r, httptest.NewRequest("POST", "/login", nil))

	if !strings.HasPrefix(limiter.lastKey, "rate_limit:") || !strings.HasSuffix(limiter.lastKey, ":/login") {
		t.Errorf("unexpected key %q", limiter.lastKey)
	}
}

// ── BodyLimit ──

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.POST("/p", BodyLimit(16), okHandler)

	small := httptest.NewRequest("POST", "/p", strings.NewReader(`{"a":1}`))
	if w := do(r, small); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	large := httptest.NewRequest("POST", "/p", strings.NewReader(strings.Repeat("x", 64)))
	if w := do(r, large); w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}

// ── RequestID ──

func TestRequestID(t *testing.T) {
	fallback := zap.NewNop()
	var fromCtx *zap.Logger
	r := gin.New()
	r.GET("/p", RequestID(zap.NewNop()), func(c *gin.Context) {
		fromCtx = logger.FromContext(c.Request.Context(), fallback)
		c.Status(http.StatusOK)
	})

	w := do(r, httptest.NewRequest("GET", "/p", nil))
	if len(w.Header().Get("X-Request-ID")) != 36 {
		t.Errorf("expected generated uuid, got %q", w.Header().Get("X-Request-ID"))
	}
	if fromCtx == fallback {
		t.Error("expected request-scoped logger in context")
	}

	req := httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	if got := do(r, req).Header().Get("X-Request-ID"); got != "trace-123" {
		t.Errorf("expected propagated id, got %q", got)
	}

	req = httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("a", 65))
	if got := do(r, req).Header().Get("X-Request-ID"); got == strings.Repeat("a", 65) {
		t.Error("oversized request id must be replaced")
	}
}

// ── SecurityHeaders / CORS ──

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.GET("/p", SecurityHeaders(), okHandler)
	w := do(r, httptest.NewRequest("GET", "/p", nil))
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Errorf("missing nosniff header")
	}
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.OPTIONS("/p", okHandler)
	r.GET("/p", okHandler)

	req := httptest.NewRequest("OPTIONS", "/p", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := do(r, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Errorf("unexpected allow origin %q", w.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("Origin", "http://evil.example")
	if got := do(r, req).Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected allow origin for foreign origin %q", got)
	}
}
