package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("test-secret", time.Hour)
	subjectID := uuid.New()

	token, err := svc.GenerateToken(subjectID, RoleCandidate)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.SubjectID != subjectID {
		t.Fatalf("subject id mismatch")
	}
	if claims.Role != RoleCandidate {
		t.Fatalf("role mismatch: %s", claims.Role)
	}
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("test-secret", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.GenerateToken(uuid.New(), RoleRecruiter)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_WrongSecret(t *testing.T) {
	issuer := NewHMACService("secret-a", time.Hour)
	verifier := NewHMACService("secret-b", time.Hour)

	token, err := issuer.GenerateToken(uuid.New(), RoleCandidate)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := verifier.ValidateToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
