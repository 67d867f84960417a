package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"  // secure random number generation
	"encoding/hex" // hex encoding for random tokens
	"time"         // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ResetTokenTTL is how long a password-reset token stays valid.
const ResetTokenTTL = time.Hour

// AccessToken represents a signed JWT access token along with its expiry.
// Access tokens are issued at login for API clients and carried in the
// Authorization header; browser clients use the session cookie instead.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// ResetToken is a single-use, time-boxed password recovery secret. Raw is
// the hex string mailed to the account; Exp is when it stops being valid.
type ResetToken struct {
	Raw string    // hex token embedded in the reset link
	Exp time.Time // UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for an account. The JWT
// includes standard claims: subject (sub), the username, an admin flag,
// expiration (exp) and issued at (iat).
func NewAccessToken(secret string, userID uint64, username string, isAdmin bool, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"admin":    isAdmin,
		"exp":      exp.Unix(),
		"iat":      time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewResetToken returns a cryptographically random password-reset token
// and its expiration, one hour from now. 20 random bytes hex-encode to a
// 40 character token, matching the reset_token column width.
func NewResetToken() (ResetToken, error) {
	raw, err := randomHex(20) // 20 bytes -> 40 hex chars
	if err != nil {
		return ResetToken{}, err
	}
	return ResetToken{
		Raw: raw,
		Exp: time.Now().UTC().Add(ResetTokenTTL),
	}, nil
}

// NewSessionID returns a random identifier for a server-side session.
// 32 bytes of entropy keep session ids unguessable.
func NewSessionID() (string, error) {
	return randomHex(32) // 32 bytes -> 64 hex chars
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
