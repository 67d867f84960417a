package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/campora/campground-api/internal/auth"
	"github.com/campora/campground-api/internal/middleware"
	"github.com/campora/campground-api/internal/payment"
)

type fakeCharger struct {
	gotReq payment.IntentRequest
	intent payment.Intent
	err    error
}

func (f *fakeCharger) ConfirmIntent(ctx context.Context, req payment.IntentRequest) (payment.Intent, error) {
	f.gotReq = req
	return f.intent, f.err
}

func payContext(t *testing.T, body string, ident *auth.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/pay", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if ident != nil {
		middleware.SetIdentity(c, ident)
	}
	return c, rec
}

func TestPayAnonymous(t *testing.T) {
	h := NewPaymentHandler(nil, &fakeCharger{})
	c, rec := payContext(t, `{"payment_method_id":"pm_card"}`, nil)
	if err := h.Pay(c); err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestPayFixedAmountAndIdempotencyKey(t *testing.T) {
	ch := &fakeCharger{err: &payment.Error{Code: "card_declined", Message: "Your card was declined."}}
	h := NewPaymentHandler(nil, ch)
	c, rec := payContext(t,
		`{"payment_method_id":"pm_card","currency":"EUR","items":["ignored"],"idempotency_key":"k-1"}`,
		&auth.Identity{ID: 3, Username: "carol"})
	if err := h.Pay(c); err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if ch.gotReq.AmountCents != RegistrationFeeCents {
		t.Fatalf("amount = %d, want fixed fee", ch.gotReq.AmountCents)
	}
	if ch.gotReq.Currency != "eur" || ch.gotReq.IdempotencyKey != "k-1" {
		t.Fatalf("request = %+v", ch.gotReq)
	}
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "Your card was declined." {
		t.Fatalf("error = %q, want processor message", body["error"])
	}
}

func TestPayAuthenticationRequiredMessage(t *testing.T) {
	ch := &fakeCharger{err: &payment.Error{Code: payment.CodeAuthenticationRequired, Message: "3DS needed"}}
	h := NewPaymentHandler(nil, ch)
	c, rec := payContext(t, `{"payment_method_id":"pm_3ds"}`, &auth.Identity{ID: 3, Username: "carol"})
	if err := h.Pay(c); err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != authRequiredMessage {
		t.Fatalf("error = %q, want the fixed authentication message", body["error"])
	}
}

func TestPayMissingPaymentMethod(t *testing.T) {
	h := NewPaymentHandler(nil, &fakeCharger{})
	c, rec := payContext(t, `{}`, &auth.Identity{ID: 3, Username: "carol"})
	if err := h.Pay(c); err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCheckoutAlreadyPaid(t *testing.T) {
	h := NewPaymentHandler(nil, &fakeCharger{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/checkout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetIdentity(c, &auth.Identity{ID: 3, Username: "carol", IsPaid: true})

	if err := h.Checkout(c); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	var body map[string]any
	json.Unmarshal(rec.Body.Bytes(), &body)
	if _, hasKey := body["idempotency_key"]; hasKey {
		t.Fatal("paid account should not receive a checkout key")
	}
}

func TestCheckoutIssuesIdempotencyKey(t *testing.T) {
	h := NewPaymentHandler(nil, &fakeCharger{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/checkout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetIdentity(c, &auth.Identity{ID: 3, Username: "carol"})

	if err := h.Checkout(c); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	var body map[string]any
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["amount_cents"].(float64) != RegistrationFeeCents {
		t.Fatalf("amount_cents = %v", body["amount_cents"])
	}
	if key, _ := body["idempotency_key"].(string); key == "" {
		t.Fatal("idempotency key missing")
	}
}
