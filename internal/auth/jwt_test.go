package auth

import (
	"testing"
)

func TestGenerateAndVerify(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if err := InitJWTSecret(); err != nil {
		t.Fatalf("InitJWTSecret error: %v", err)
	}

	token, err := GenerateJWT(42, "alex@example.com")
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	userID, err := UserIDFromToken(token)
	if err != nil {
		t.Fatalf("UserIDFromToken error: %v", err)
	}
	if userID != 42 {
		t.Fatalf("userID mismatch: got %d want 42", userID)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if err := InitJWTSecret(); err != nil {
		t.Fatalf("InitJWTSecret error: %v", err)
	}

	token, err := GenerateJWT(1, "a@example.com")
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"

	if _, err := UserIDFromToken(tampered); err == nil {
		t.Fatal("expected error for tampered token, got nil")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "right-secret")

	if err := InitJWTSecret(); err != nil {
		t.Fatalf("InitJWTSecret error: %v", err)
	}

	token, err := GenerateJWT(1, "a@example.com")
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	t.Setenv("JWT_SECRET", "wrong-secret")
	if err := InitJWTSecret(); err != nil {
		t.Fatalf("InitJWTSecret error: %v", err)
	}

	if _, err := VerifyJWT(token); err == nil {
		t.Fatal("expected error for wrong secret, got nil")
	}
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if err := InitJWTSecret(); err != nil {
		t.Fatalf("InitJWTSecret error: %v", err)
	}

	if _, err := VerifyJWT("not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token, got nil")
	}
}

func TestInitJWTSecretRequiresEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if err := InitJWTSecret(); err == nil {
		t.Fatal("expected error when JWT_SECRET is unset, got nil")
	}
}
