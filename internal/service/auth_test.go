package service

import (
	"strings"
	"testing"
)

func TestSignAndVerifyToken(t *testing.T) {
	svc := NewAuthService("test-jwt-secret-32bytes-minimum!", 24)

	tokenStr, err := svc.SignToken("user-abc", "admin")
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	claims, err := svc.VerifyToken(tokenStr)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.UserID != "user-abc" {
		t.Errorf("UserID: got %q, want %q", claims.UserID, "user-abc")
	}
	if claims.Role != "admin" {
		t.Errorf("Role: got %q, want %q", claims.Role, "admin")
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	signer := NewAuthService("secret-one-secret-one-secret-one", 24)
	verifier := NewAuthService("secret-two-secret-two-secret-two", 24)

	tokenStr, err := signer.SignToken("user-abc", "member")
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	if _, err := verifier.VerifyToken(tokenStr); err == nil {
		t.Error("expected verification failure with wrong secret")
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc := NewAuthService("test-jwt-secret-32bytes-minimum!", 24)
	if _, err := svc.VerifyToken("not.a.jwt"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestVerifyToken_MissingClaims(t *testing.T) {
	svc := NewAuthService("test-jwt-secret-32bytes-minimum!", 24)

	tokenStr, err := svc.SignToken("", "admin")
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}
	if _, err := svc.VerifyToken(tokenStr); err == nil || !strings.Contains(err.Error(), "sub") {
		t.Errorf("expected missing-sub error, got %v", err)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	svc := NewAuthService("secret", 24)

	hash, err := svc.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if err := svc.CheckPassword(hash, "hunter2"); err != nil {
		t.Errorf("CheckPassword with correct password: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); err == nil {
		t.Error("CheckPassword should fail for wrong password")
	}
}
