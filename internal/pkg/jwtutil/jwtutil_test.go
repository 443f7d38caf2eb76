package jwtutil

import (
	"errors"
	"testing"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := "super-secret"
	userID := "user-123"

	tok, err := GenerateToken(secret, userID)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(secret, tok)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", claims.UserID, userID)
	}
}

func TestParseToken_NoExpiry(t *testing.T) {
	t.Parallel()

	// Tokens carry no exp claim and must stay valid indefinitely.
	tok, err := GenerateToken("k", "u1")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken("k", tok)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.ExpiresAt != nil {
		t.Fatalf("expected no expiry claim, got %v", claims.ExpiresAt)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("right-secret", "u2")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken("wrong-secret", tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("k", "not.a.jwt")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestParseToken_DistinctUsers(t *testing.T) {
	t.Parallel()

	secret := "shared-secret"
	tokA, err := GenerateToken(secret, "user-a")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	tokB, err := GenerateToken(secret, "user-b")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claimsA, err := ParseToken(secret, tokA)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	claimsB, err := ParseToken(secret, tokB)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claimsA.UserID == claimsB.UserID {
		t.Fatalf("tokens for distinct users resolved to the same id %q", claimsA.UserID)
	}
	if claimsA.UserID != "user-a" || claimsB.UserID != "user-b" {
		t.Fatalf("claims do not match issuing users: %q %q", claimsA.UserID, claimsB.UserID)
	}
}
