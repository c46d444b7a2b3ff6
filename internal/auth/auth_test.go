package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mentorapp/internal/config"
	"mentorapp/internal/models"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	prev := config.Config
	cfg := config.DefaultConfig()
	cfg.JWTSecret = "test-secret"
	config.Config = cfg
	t.Cleanup(func() { config.Config = prev })
}

func TestAccessTokenRoundTrip(t *testing.T) {
	setTestConfig(t)

	token, err := NewAccessToken("user-1", "ana@example.com", models.RoleMentor)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if claims.UserID != "user-1" || claims.Email != "ana@example.com" || claims.Role != models.RoleMentor {
		t.Errorf("Expected claims to round trip, got %+v", claims)
	}
	if claims.Subject != "user-1" || claims.ID == "" {
		t.Errorf("Expected subject and token id to be set, got %q and %q", claims.Subject, claims.ID)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := newAccessToken("secret-a", "mentorapp", time.Minute, "user-1", "", models.RoleUser, time.Now())
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := parseToken("secret-b", "mentorapp", token); err == nil {
		t.Errorf("Expected a token signed with another secret to be rejected")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := newAccessToken("secret", "mentorapp", time.Minute, "user-1", "", models.RoleUser, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := parseToken("secret", "mentorapp", token); err == nil {
		t.Errorf("Expected an expired token to be rejected")
	}
}

func TestParseTokenRejectsWrongIssuer(t *testing.T) {
	token, err := newAccessToken("secret", "someone-else", time.Minute, "user-1", "", models.RoleUser, time.Now())
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := parseToken("secret", "mentorapp", token); err == nil {
		t.Errorf("Expected a token from another issuer to be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if hash == "secret" {
		t.Errorf("Expected the password not to be stored in clear")
	}
	if err := CheckPassword(hash, "secret"); err != nil {
		t.Errorf("Expected password to match")
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Errorf("Expected password mismatch")
	}
}

type revokeAll struct{}

func (revokeAll) Revoke(context.Context, string, time.Time) error { return nil }

func (revokeAll) IsRevoked(context.Context, string) (bool, error) { return true, nil }

func protected() http.Handler {
	return AuthCtx()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetIdentity(r)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(id.UserID))
	}))
}

func TestAuthCtxMissingHeader(t *testing.T) {
	setTestConfig(t)

	rec := httptest.NewRecorder()
	protected().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"message"`) {
		t.Errorf("Expected a JSON message body, got %s", rec.Body.String())
	}
}

func TestAuthCtxInvalidTokenHasNoDetail(t *testing.T) {
	setTestConfig(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	protected().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "segment") || strings.Contains(rec.Body.String(), "malformed") {
		t.Errorf("Expected no verification detail in the body, got %s", rec.Body.String())
	}
}

func TestAuthCtxValidToken(t *testing.T) {
	setTestConfig(t)

	token, err := NewAccessToken("user-1", "ana@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "user-1" {
		t.Errorf("Expected 200 with the user id, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestAuthCtxRevokedToken(t *testing.T) {
	setTestConfig(t)
	prev := Revocations
	Revocations = revokeAll{}
	t.Cleanup(func() { Revocations = prev })

	token, err := NewAccessToken("user-1", "ana@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected a revoked token to get 401, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), &Identity{UserID: "u", Role: models.RoleUser}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for a regular user, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), &Identity{UserID: "a", Role: models.RoleAdmin}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected admin to pass, got %d", rec.Code)
	}
}
