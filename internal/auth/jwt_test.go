package auth

import (
	"testing"
	"time"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Generate(42, "alice", true)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want %q", claims.Username, "alice")
	}
	if !claims.IsAdmin {
		t.Error("IsAdmin = false, want true")
	}
	if claims.ID == "" {
		t.Error("token should carry a JTI")
	}
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	signer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := signer.Generate(1, "bob", false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("token signed with a different secret should not verify")
	}
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Generate(1, "bob", false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := svc.Verify(token); err == nil {
		t.Fatal("expired token should not verify")
	}
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	if _, err := svc.Verify("not-a-token"); err == nil {
		t.Fatal("garbage input should not verify")
	}
}

func TestTokenService_UniqueJTIs(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	t1, _ := svc.Generate(1, "bob", false)
	t2, _ := svc.Generate(1, "bob", false)

	c1, err := svc.Verify(t1)
	if err != nil {
		t.Fatalf("Verify t1: %v", err)
	}
	c2, err := svc.Verify(t2)
	if err != nil {
		t.Fatalf("Verify t2: %v", err)
	}

	if c1.ID == c2.ID {
		t.Error("two tokens for the same user should have distinct JTIs")
	}
}
