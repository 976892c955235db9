package auth

import (
	"testing"
	"time"

	"github.com/pooya1361/makerspace/internal/models"
)

func newTestTokenService() *TokenService {
	return NewTokenService("test-secret-key", time.Hour, 24*time.Hour)
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTestTokenService()
	user := &models.User{
		ID:       1,
		Email:    "anna@example.com",
		UserType: models.UserTypeInstructor,
	}

	token, err := svc.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.Subject != user.Email {
		t.Errorf("subject = %q, want %q", claims.Subject, user.Email)
	}
	if claims.UserType != string(models.UserTypeInstructor) {
		t.Errorf("userType = %q, want %q", claims.UserType, models.UserTypeInstructor)
	}
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	user := &models.User{Email: "anna@example.com", UserType: models.UserTypeNormal}

	token, err := newTestTokenService().GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	other := NewTokenService("different-secret", time.Hour, 24*time.Hour)
	if _, err := other.ParseToken(token); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc := NewTokenService("test-secret-key", -time.Minute, 24*time.Hour)
	user := &models.User{Email: "anna@example.com", UserType: models.UserTypeNormal}

	token, err := svc.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := svc.ParseToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	if _, err := newTestTokenService().ParseToken("not.a.token"); err == nil {
		t.Error("expected malformed token to be rejected")
	}
}
