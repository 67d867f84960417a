package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewResetToken(t *testing.T) {
	before := time.Now().UTC()
	tok, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken: %v", err)
	}
	if len(tok.Raw) != 40 {
		t.Fatalf("token length = %d, want 40 hex chars", len(tok.Raw))
	}
	// Expiry must land one hour out, give or take scheduling slack.
	want := before.Add(ResetTokenTTL)
	if tok.Exp.Before(want.Add(-time.Minute)) || tok.Exp.After(want.Add(time.Minute)) {
		t.Fatalf("expiry %v not within a minute of %v", tok.Exp, want)
	}

	other, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken: %v", err)
	}
	if other.Raw == tok.Raw {
		t.Fatal("two reset tokens collided")
	}
}

func TestNewSessionID(t *testing.T) {
	a, err := NewSessionID()
	if err != nil {
		t.Fatalf("NewSessionID: %v", err)
	}
	b, _ := NewSessionID()
	if len(a) != 64 || a == b {
		t.Fatalf("session ids must be 64 hex chars and unique, got %q %q", a, b)
	}
}

func TestNewAccessTokenClaims(t *testing.T) {
	const secret = "test-secret"
	at, err := NewAccessToken(secret, 42, "alice", true, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	parsed, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse signed token: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"].(float64) != 42 {
		t.Fatalf("sub = %v, want 42", claims["sub"])
	}
	if claims["username"].(string) != "alice" {
		t.Fatalf("username = %v", claims["username"])
	}
	if claims["admin"].(bool) != true {
		t.Fatalf("admin claim missing")
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "hunter2") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "hunter3") {
		t.Fatal("wrong password accepted")
	}
}
