package middleware

import (
	"budget-tracker-server/src/config"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AccessSecret:  []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

func signTestToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAuthResolvesUserID(t *testing.T) {
	cfg := testAuthConfig()
	token := signTestToken(t, cfg.AccessSecret, jwt.MapClaims{
		"userId": 42,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	var gotUserID int64
	var gotOK bool
	handler := Auth(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = UserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !gotOK || gotUserID != 42 {
		t.Errorf("UserID = (%d, %v), want (42, true)", gotUserID, gotOK)
	}
}

func TestAuthRejections(t *testing.T) {
	cfg := testAuthConfig()

	tests := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"malformed token", "Bearer not.a.jwt"},
		{
			"wrong secret",
			"Bearer " + signTestToken(t, []byte("other-secret"), jwt.MapClaims{
				"userId": 1,
				"exp":    time.Now().Add(time.Hour).Unix(),
			}),
		},
		{
			"expired token",
			"Bearer " + signTestToken(t, cfg.AccessSecret, jwt.MapClaims{
				"userId": 1,
				"exp":    time.Now().Add(-time.Hour).Unix(),
			}),
		},
		{
			"refresh token used as access token",
			"Bearer " + signTestToken(t, cfg.RefreshSecret, jwt.MapClaims{
				"userId": 1,
				"exp":    time.Now().Add(time.Hour).Unix(),
			}),
		},
		{
			"no user id claim",
			"Bearer " + signTestToken(t, cfg.AccessSecret, jwt.MapClaims{
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := Auth(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", tt.token)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if called {
				t.Error("inner handler must not run for rejected requests")
			}
		})
	}
}
