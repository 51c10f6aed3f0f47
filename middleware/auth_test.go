package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodieride-api/models"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGatedRouter(m *SessionManager, role models.UserRole, page string) *gin.Engine {
	r := gin.New()
	r.Use(LoadSession(m))
	r.GET("/page", RequireRole(m, role, page), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	return r
}

func TestRequireRole_NoSession(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, nil)
	r := newGatedRouter(m, models.RoleCustomer, "home")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/page", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["login"] != "/login?next=home" {
		t.Fatalf("unexpected login hint %q", body["login"])
	}
}

func TestRequireRole_AllowsMatchingRoleViaBearer(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, nil)
	token, _, err := m.Issue(&models.User{ID: 5, Role: models.RoleCaptain})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	r := newGatedRouter(m, models.RoleCaptain, "captain")

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRequireRole_MismatchClearsRoleKeepsUser(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, nil)
	token, issued, _ := m.Issue(&models.User{ID: 9, Role: models.RoleCustomer})
	r := newGatedRouter(m, models.RoleCaptain, "captain")

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	var replaced string
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			replaced = c.Value
		}
	}
	if replaced == "" {
		t.Fatalf("expected a replacement session cookie")
	}
	s, err := m.Parse(context.Background(), replaced)
	if err != nil {
		t.Fatalf("replacement token invalid: %v", err)
	}
	if s.Role != "" {
		t.Fatalf("expected role to be cleared, got %q", s.Role)
	}
	if s.UserID != 9 || !s.ExpiresAt.Equal(issued.ExpiresAt.Truncate(time.Second)) {
		t.Fatalf("expected identity to survive, got %+v", s)
	}
	if s.ID == issued.ID {
		t.Fatalf("expected a fresh session id")
	}

	// replaying the original token must not pass the gate it used to pass
	customer := newGatedRouter(m, models.RoleCustomer, "home")
	req = httptest.NewRequest(http.MethodGet, "/page", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	customer.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected revoked token to be anonymous, got %d", rec.Code)
	}
}

func TestLoadSession_IgnoresBadTokens(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, nil)
	other := NewSessionManager("other-secret", time.Hour, nil)
	forged, _, _ := other.Issue(&models.User{ID: 1, Role: models.RoleCustomer})

	r := newGatedRouter(m, models.RoleCustomer, "home")
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected forged token to be treated as anonymous, got %d", rec.Code)
	}
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") != "abc" {
		t.Fatalf("expected caller request id to be echoed")
	}
}
