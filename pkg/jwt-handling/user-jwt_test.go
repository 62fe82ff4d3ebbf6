package jwthandling

import (
	"testing"
	"time"
)

func TestUserTokenRoundtrip(t *testing.T) {
	token, err := GenerateNewUserToken(
		30*time.Minute,
		"account-1",
		"alice",
		[]string{"User", "Admin"},
		"issuer",
		"audience",
		"supersecret",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, valid, err := ValidateUserToken(token, "supersecret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !valid {
		t.Fatal("expected valid token")
	}
	if claims.AccountID != "account-1" {
		t.Errorf("unexpected account id: %s", claims.AccountID)
	}
	if claims.Subject != "alice" {
		t.Errorf("unexpected subject: %s", claims.Subject)
	}
	if !claims.HasRole("User") || !claims.HasRole("Admin") {
		t.Errorf("missing role claims: %v", claims.Roles)
	}
	if claims.HasRole("Other") {
		t.Error("unexpected role claim")
	}
}

func TestValidateUserTokenWithWrongKey(t *testing.T) {
	token, err := GenerateNewUserToken(
		30*time.Minute,
		"account-1",
		"alice",
		[]string{"User"},
		"issuer",
		"audience",
		"supersecret",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, valid, err := ValidateUserToken(token, "wrongkey")
	if err == nil && valid {
		t.Error("expected validation to fail with wrong key")
	}
}

func TestValidateExpiredUserToken(t *testing.T) {
	token, err := GenerateNewUserToken(
		-time.Minute,
		"account-1",
		"alice",
		[]string{"User"},
		"issuer",
		"audience",
		"supersecret",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, valid, _ := ValidateUserToken(token, "supersecret")
	if valid {
		t.Error("expected expired token to be invalid")
	}
}
