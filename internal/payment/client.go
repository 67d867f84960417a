// Package payment is a thin client for the payment processor's
// payment-intent API. The app performs exactly one synchronous exchange:
// create an intent for the fixed registration fee and confirm it
// immediately. Every checkout attempt carries an idempotency key, so a
// duplicate submission of the same attempt cannot double-charge.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CodeAuthenticationRequired is the processor decline code for cards that
// need an additional authentication step. Callers show a specific message
// for this code and the processor's own message for everything else.
const CodeAuthenticationRequired = "authentication_required"

// Error is a processor-reported failure.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment: %s (%s)", e.Message, e.Code)
	}
	return "payment: " + e.Message
}

// Intent is the confirmed payment intent. ClientSecret is opaque to the
// server and handed back to the caller.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// IntentRequest carries everything needed for the single exchange.
type IntentRequest struct {
	AmountCents     int    // fixed fee, in the smallest currency unit
	Currency        string // ISO currency code, e.g. "usd"
	PaymentMethodID string // client-supplied payment method reference
	IdempotencyKey  string // one key per checkout attempt
}

// Client calls the processor's HTTP API.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

// New returns a Client authenticated with the given secret key.
func New(baseURL, secret string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ConfirmIntent creates a payment intent and confirms it in the same
// call. error_on_requires_action makes the processor fail fast instead of
// parking the intent, so the outcome is known before this returns. A
// processor-reported failure comes back as *Error; transport failures are
// returned as-is.
func (c *Client) ConfirmIntent(ctx context.Context, req IntentRequest) (Intent, error) {
	if c.secret == "" {
		return Intent{}, errors.New("payment: no secret key configured")
	}
	form := url.Values{}
	form.Set("amount", strconv.Itoa(req.AmountCents))
	form.Set("currency", req.Currency)
	form.Set("payment_method", req.PaymentMethodID)
	form.Set("confirm", "true")
	form.Set("error_on_requires_action", "true")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return Intent{}, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+c.secret)
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Intent{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var in Intent
		if err := json.NewDecoder(resp.Body).Decode(&in); err != nil {
			return Intent{}, err
		}
		if in.ClientSecret == "" {
			return Intent{}, errors.New("payment: intent missing client secret")
		}
		return in, nil
	}

	var body struct {
		Error Error `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error.Message == "" {
		return Intent{}, fmt.Errorf("payment: processor returned %s", resp.Status)
	}
	return Intent{}, &body.Error
}
