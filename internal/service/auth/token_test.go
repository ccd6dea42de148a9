package auth

import (
	"testing"
	"time"
)

func TestTokenIssueVerify(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)

	token, err := issuer.Issue("user-123", "maria")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	sub, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if sub != "user-123" {
		t.Errorf("subject = %q, want %q", sub, "user-123")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Hour).Issue("user-123", "maria")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := NewTokenIssuer("secret-b", time.Hour).Verify(token); err == nil {
		t.Error("Verify() with wrong secret: error = nil")
	}
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", -time.Minute)

	token, err := issuer.Issue("user-123", "maria")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := issuer.Verify(token); err == nil {
		t.Error("Verify() of expired token: error = nil")
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, err := NewTokenIssuer("secret-a", time.Hour).Verify("not.a.token"); err == nil {
		t.Error("Verify() of garbage: error = nil")
	}
}
