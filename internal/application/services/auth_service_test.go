package services

import (
	"errors"
	"testing"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/security"
	"github.com/anja687gutierrez-jpg/goiconicway/pkg/config"
)

func withSysopCredentials(t *testing.T, password string) {
	t.Helper()
	hash, err := security.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	oldHash, oldSecret := config.SysopPasswordHash, config.JWTSecret
	config.SysopPasswordHash = hash
	config.JWTSecret = "test-jwt-secret"
	t.Cleanup(func() {
		config.SysopPasswordHash = oldHash
		config.JWTSecret = oldSecret
	})
}

func TestLoginSysop_IssuesValidToken(t *testing.T) {
	withSysopCredentials(t, "hunter2")
	svc := NewAuthService(newTestLogger(t))

	token, err := svc.LoginSysop("hunter2")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !svc.ValidateSysopToken(token) {
		t.Fatal("freshly minted token rejected")
	}
}

func TestLoginSysop_RejectsWrongPassword(t *testing.T) {
	withSysopCredentials(t, "hunter2")
	svc := NewAuthService(newTestLogger(t))

	if _, err := svc.LoginSysop("wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginSysop_RejectsWhenUnconfigured(t *testing.T) {
	oldHash, oldSecret := config.SysopPasswordHash, config.JWTSecret
	config.SysopPasswordHash = ""
	config.JWTSecret = ""
	t.Cleanup(func() {
		config.SysopPasswordHash = oldHash
		config.JWTSecret = oldSecret
	})

	svc := NewAuthService(newTestLogger(t))
	if _, err := svc.LoginSysop("anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateSysopToken_RejectsSubscriberToken(t *testing.T) {
	withSysopCredentials(t, "hunter2")
	svc := NewAuthService(newTestLogger(t))

	token, err := security.GenerateSubscriberToken("lead-1", "fp-1", "traveler@example.com", config.JWTSecret)
	if err != nil {
		t.Fatalf("failed to mint subscriber token: %v", err)
	}
	if svc.ValidateSysopToken(token) {
		t.Fatal("subscriber token passed the sysop check")
	}
	if svc.ValidateSysopToken("garbage") {
		t.Fatal("garbage passed the sysop check")
	}
}
