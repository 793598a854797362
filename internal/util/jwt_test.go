package util

import (
	"errors"
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("sess-1", "user-1", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}

	claims, err := ParseSessionToken(token, "secret")
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if claims.SessionID != "sess-1" || claims.UserID != "user-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	token, err := GenerateSessionToken("sess-1", "user-1", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}

	_, err = ParseSessionToken(token, "other")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseSessionToken_Expired(t *testing.T) {
	token, err := GenerateSessionToken("sess-1", "user-1", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}

	if _, err := ParseSessionToken(token, "secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
