package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/config"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: 24 * time.Hour}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := GenerateToken(userID, "alice", cfg)
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}

	claims, err := ValidateToken(token, cfg)
	if err != nil {
		t.Fatalf("ValidateToken() failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want %q", claims.Username, "alice")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: -time.Minute}
	token, err := GenerateToken(uuid.New(), "alice", cfg)
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}
	if _, err := ValidateToken(token, cfg); err == nil {
		t.Fatal("expired token validated")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "alice", testJWTConfig())
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}
	other := &config.JWTConfig{Secret: "other-secret", AccessTokenTTL: 24 * time.Hour}
	if _, err := ValidateToken(token, other); err == nil {
		t.Fatal("token with wrong signature validated")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token", testJWTConfig()); err == nil {
		t.Fatal("malformed token validated")
	}
}

func TestAuthenticateMiddleware(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	token, err := GenerateToken(userID, "alice", cfg)
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}

	var gotID uuid.UUID
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}, cfg)

	cases := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"bad scheme", "Basic " + token, http.StatusForbidden},
		{"garbage token", "Bearer garbage", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}

	if gotID != userID {
		t.Errorf("context user id = %s, want %s", gotID, userID)
	}
}
