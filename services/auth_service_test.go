package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/DhruvKhambhata/trackflow/internal/notification"
)

func newTestAuthService(t *testing.T, secret string) *AuthService {
	t.Helper()
	t.Setenv("JWT_SECRET", secret)
	svc, err := NewAuthService(nil, notification.NewEmailService())
	if err != nil {
		t.Fatalf("NewAuthService failed: %v", err)
	}
	return svc
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := NewAuthService(nil, notification.NewEmailService()); err == nil {
		t.Error("Expected error when JWT_SECRET is not set")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(t, "test-secret")
	userID := uuid.New()

	token, err := svc.issueToken(userID)
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	got, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if got != userID {
		t.Errorf("Expected user id %s, got %s", userID, got)
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	issuer := newTestAuthService(t, "secret-one")
	token, err := issuer.issueToken(uuid.New())
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	verifier := newTestAuthService(t, "secret-two")
	if _, err := verifier.VerifyToken(token); err == nil {
		t.Error("Expected verification to fail for a token signed with a different secret")
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(t, "test-secret")
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.VerifyToken(tok); err == nil {
			t.Errorf("Expected verification to fail for %q", tok)
		}
	}
}

func TestVerifyTokenRejectsUnsignedAlgorithm(t *testing.T) {
	svc := newTestAuthService(t, "test-secret")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": uuid.New().String(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("Failed to build unsigned token: %v", err)
	}

	if _, err := svc.VerifyToken(token); err == nil {
		t.Error("Expected verification to reject alg=none tokens")
	}
}

func TestNormalizeReminderTime(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "20:00", false},
		{"08:30", "08:30", false},
		{"23:59", "23:59", false},
		{"8:30pm", "", true},
		{"25:00", "", true},
		{"nope", "", true},
	}

	for _, tt := range tests {
		got, err := normalizeReminderTime(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("normalizeReminderTime(%q): expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("normalizeReminderTime(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("normalizeReminderTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
