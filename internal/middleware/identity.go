package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing bearer tokens
	"github.com/labstack/echo/v4"  // Echo framework used for middleware and handlers
	"strings"

	"github.com/campora/campground-api/internal/auth"
	"github.com/campora/campground-api/internal/repository"
	"github.com/campora/campground-api/internal/session"
)

// identityKey is the context key the resolved identity lives under.
const identityKey = "identity"

// Identity returns middleware that resolves the caller's identity and
// stores an immutable auth.Identity in the request context. Resolution is
// optional here: anonymous requests pass through with no identity, and
// RequireAuth (or the ownership guard) decides whether that is acceptable
// for a given route.
//
// Two credentials are accepted, in order:
//  1. the session cookie, resolved against the Redis session store
//     (browser clients);
//  2. an Authorization: Bearer JWT signed with jwtSecret (API clients).
// Either way the account row is re-read on every request, so admin or
// paid-status changes take effect immediately instead of living on in a
// stale claim.
func Identity(store *session.Store, users *repository.UserRepo, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, ok := sessionUserID(c, store); ok {
				attachIdentity(c, users, userID)
				return next(c)
			}
			if userID, ok := bearerUserID(c, jwtSecret); ok {
				attachIdentity(c, users, userID)
			}
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity attached to the request, or nil
// for anonymous requests.
func CurrentIdentity(c echo.Context) *auth.Identity {
	if v, ok := c.Get(identityKey).(*auth.Identity); ok {
		return v
	}
	return nil
}

// SetIdentity attaches an identity to the request context. Exposed for
// handler tests that bypass the resolution middleware.
func SetIdentity(c echo.Context, ident *auth.Identity) {
	c.Set(identityKey, ident)
}

func sessionUserID(c echo.Context, store *session.Store) (uint64, bool) {
	cookie, err := c.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return 0, false
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	userID, err := store.Lookup(ctx, cookie.Value)
	if err != nil {
		return 0, false
	}
	return userID, true
}

func bearerUserID(c echo.Context, secret string) (uint64, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return 0, false
	}
	raw := strings.TrimPrefix(authHeader, "Bearer ")
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, false
	}
	return uint64(sub), true
}

// attachIdentity loads the account and stores its identity view in the
// context. A lookup failure leaves the request anonymous; the account may
// have been removed since the credential was issued.
func attachIdentity(c echo.Context, users *repository.UserRepo, userID uint64) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	acct, err := users.GetByID(ctx, userID)
	if err != nil {
		return
	}
	SetIdentity(c, &auth.Identity{
		ID:       acct.ID,
		Username: acct.Username,
		IsAdmin:  acct.IsAdmin,
		IsPaid:   acct.IsPaid,
	})
}
