package handler

// password_reset.go implements the recovery flow: a reset request mails a
// time-boxed single-use token; presenting the token with matching
// password fields changes the credential, consumes the token and logs
// the account in.

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campora/campground-api/internal/config"
	"github.com/campora/campground-api/internal/model"
	"github.com/campora/campground-api/internal/queue"
	"github.com/campora/campground-api/internal/repository"
	"github.com/campora/campground-api/internal/session"
	"github.com/campora/campground-api/internal/utils"
)

// MailPublishFunc queues one outbound mail. It matches
// queue_publisher.PublishMailRequested and is a field so tests can swap
// in a recorder.
type MailPublishFunc func(ctx context.Context, ev queue.MailRequestedEvent) error

// UserStore is the slice of the user repository the reset flow needs.
// Satisfied by *repository.UserRepo; tests swap in a fake.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.Account, error)
	GetByResetToken(ctx context.Context, token string) (model.Account, error)
	SetResetToken(ctx context.Context, userID uint64, token string, expires time.Time) error
	ConsumeResetToken(ctx context.Context, userID uint64, token, newHash string) error
}

// ResetHandler bundles dependencies for the password-reset endpoints.
type ResetHandler struct {
	Cfg      config.Config
	Users    UserStore
	Sessions *session.Store
	Mail     MailPublishFunc
}

func NewResetHandler(cfg config.Config, u UserStore, s *session.Store, mail MailPublishFunc) *ResetHandler {
	return &ResetHandler{Cfg: cfg, Users: u, Sessions: s, Mail: mail}
}

type forgotReq struct {
	Email string `json:"email"`
}
type resetReq struct {
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// Forgot issues a reset token for a known email and mails the reset
// link. A request for an email with a token already pending simply
// overwrites it; the old link stops working.
//
// An unknown email gets an explicit 404, which does reveal whether an
// address has an account. Clients depend on the distinction to prompt
// for a signup instead.
func (h *ResetHandler) Forgot(c echo.Context) error {
	var req forgotReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no account with that email address exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	tok, err := utils.NewResetToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	if err := h.Users.SetResetToken(ctx, u.ID, tok.Raw, tok.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save token failed"})
	}

	link := h.Cfg.BaseURL + "/v1/auth/reset/" + tok.Raw
	body := "You are receiving this because you (or someone else) have requested the reset of the password for your account.\n\n" +
		"Please click on the following link, or paste this into your browser to complete the process:\n\n" +
		link + "\n\n" +
		"If you did not request this, please ignore this email and your password will remain unchanged.\n"
	// Fire-and-forget: a broker outage must not fail the request, the
	// user can always ask again.
	if err := h.Mail(ctx, queue.MailRequestedEvent{
		To:      u.Email,
		Subject: "Password Reset",
		Body:    body,
	}); err != nil {
		c.Logger().Warnf("forgot: queue mail failed: %v", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("an e-mail has been sent to %s with further instructions", u.Email),
	})
}

// ValidateToken reports whether a reset token is still usable. Clients
// call it before showing the new-password form.
func (h *ResetHandler) ValidateToken(c echo.Context) error {
	token := c.Param("token")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByResetToken(ctx, token)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "password reset token is invalid or has expired"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true, "username": u.Username})
}

// Reset consumes a valid token and sets the new password. Mismatched
// password fields leave the token untouched so the user can retry with
// the same link. On success the account is logged in and a confirmation
// mail is queued.
func (h *ResetHandler) Reset(c echo.Context) error {
	token := c.Param("token")
	var req resetReq
	if err := c.Bind(&req); err != nil || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByResetToken(ctx, token)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "password reset token is invalid or has expired"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	// Check the confirmation only after the token lookup, so an expired
	// link reports expiry rather than a field error.
	if req.Password != req.Confirm {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passwords do not match"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}
	// Consumption clears the token in the same statement that writes the
	// hash; a raced second submission sees zero rows and fails here.
	if err := h.Users.ConsumeResetToken(ctx, u.ID, token, hash); err != nil {
		if err == repository.ErrResetTokenInvalid {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "password reset token is invalid or has expired"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update password failed"})
	}

	if err := startSession(c, h.Sessions, u.ID); err != nil {
		c.Logger().Warnf("reset: session create failed: %v", err)
	}

	if err := h.Mail(ctx, queue.MailRequestedEvent{
		To:      u.Email,
		Subject: "Your password has been changed",
		Body: "Hello,\n\nThis is a confirmation that the password for your account " +
			u.Email + " has just been changed.\n",
	}); err != nil {
		c.Logger().Warnf("reset: queue mail failed: %v", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "success! your password has been changed"})
}
