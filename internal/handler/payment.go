package handler

// payment.go implements the one-time registration fee: a checkout
// endpoint that hands the client an idempotency key, and a single
// synchronous confirm exchange with the payment processor that flips the
// account's paid flag.

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/campora/campground-api/internal/middleware"
	"github.com/campora/campground-api/internal/payment"
	"github.com/campora/campground-api/internal/repository"
)

// RegistrationFeeCents is the fixed one-time fee. The client's item list
// is accepted for interface compatibility but never priced.
const RegistrationFeeCents = 2000

// authRequiredMessage is shown for cards the processor declines with
// authentication_required.
const authRequiredMessage = "This card requires authentication in order to proceed. Please use a different card."

// Charger performs the confirm exchange with the payment processor.
type Charger interface {
	ConfirmIntent(ctx context.Context, req payment.IntentRequest) (payment.Intent, error)
}

// PaymentHandler bundles dependencies for checkout and payment.
type PaymentHandler struct {
	Users   *repository.UserRepo
	Charger Charger
}

func NewPaymentHandler(u *repository.UserRepo, ch Charger) *PaymentHandler {
	return &PaymentHandler{Users: u, Charger: ch}
}

type payReq struct {
	PaymentMethodID string   `json:"payment_method_id"`
	Currency        string   `json:"currency"`
	Items           []string `json:"items"` // accepted, unused
	IdempotencyKey  string   `json:"idempotency_key"`
}

// Checkout describes the fee and issues the idempotency key for this
// attempt. Reusing the key on retries of the same attempt makes the
// processor deduplicate the charge.
func (h *PaymentHandler) Checkout(c echo.Context) error {
	ident := middleware.CurrentIdentity(c)
	if ident == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "you need to be logged in to do that"})
	}
	if ident.IsPaid {
		return c.JSON(http.StatusOK, echo.Map{"message": "your account is already paid"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"amount_cents":    RegistrationFeeCents,
		"currency":        "usd",
		"idempotency_key": uuid.NewString(),
	})
}

// Pay confirms the registration fee with the processor and marks the
// account paid. The amount is fixed server-side; the client only chooses
// the payment method and currency.
func (h *PaymentHandler) Pay(c echo.Context) error {
	ident := middleware.CurrentIdentity(c)
	if ident == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "you need to be logged in to do that"})
	}

	var req payReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.PaymentMethodID = strings.TrimSpace(req.PaymentMethodID)
	if req.PaymentMethodID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_method_id required"})
	}
	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "usd"
	}
	// Tolerate clients that skipped checkout; the key then only protects
	// against transport-level retries of this very request.
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	intent, err := h.Charger.ConfirmIntent(ctx, payment.IntentRequest{
		AmountCents:     RegistrationFeeCents,
		Currency:        currency,
		PaymentMethodID: req.PaymentMethodID,
		IdempotencyKey:  req.IdempotencyKey,
	})
	if err != nil {
		var perr *payment.Error
		if errors.As(err, &perr) {
			if perr.Code == payment.CodeAuthenticationRequired {
				return c.JSON(http.StatusPaymentRequired, echo.Map{"error": authRequiredMessage})
			}
			return c.JSON(http.StatusPaymentRequired, echo.Map{"error": perr.Message})
		}
		c.Logger().Errorf("pay: processor exchange failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment service unavailable"})
	}

	if err := h.Users.MarkPaid(ctx, ident.ID); err != nil {
		// The charge went through; surface the inconsistency loudly.
		c.Logger().Errorf("pay: charge confirmed but paid flag update failed for user %d: %v", ident.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment recorded but account update failed, contact support"})
	}

	return c.JSON(http.StatusOK, echo.Map{"client_secret": intent.ClientSecret})
}
