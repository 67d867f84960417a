package payment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestConfirmIntentSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payment_intents" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Idempotency-Key"); got != "attempt-1" {
			t.Errorf("Idempotency-Key = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test" {
			t.Errorf("Authorization = %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("amount") != "2000" ||
			r.PostForm.Get("currency") != "usd" ||
			r.PostForm.Get("payment_method") != "pm_card" ||
			r.PostForm.Get("confirm") != "true" ||
			r.PostForm.Get("error_on_requires_action") != "true" {
			t.Errorf("form = %v", r.PostForm)
		}
		w.Write([]byte(`{"id":"pi_1","client_secret":"pi_1_secret_x","status":"succeeded"}`))
	}))
	defer srv.Close()

	in, err := New(srv.URL, "sk_test").ConfirmIntent(context.Background(), IntentRequest{
		AmountCents:     2000,
		Currency:        "usd",
		PaymentMethodID: "pm_card",
		IdempotencyKey:  "attempt-1",
	})
	if err != nil {
		t.Fatalf("ConfirmIntent: %v", err)
	}
	if in.ClientSecret != "pi_1_secret_x" {
		t.Fatalf("client secret = %q", in.ClientSecret)
	}
}

func TestConfirmIntentAuthenticationRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"code":"authentication_required","message":"Your card requires authentication."}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "sk_test").ConfirmIntent(context.Background(), IntentRequest{
		AmountCents: 2000, Currency: "usd", PaymentMethodID: "pm_3ds",
	})
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if perr.Code != CodeAuthenticationRequired {
		t.Fatalf("code = %q", perr.Code)
	}
}

func TestConfirmIntentOtherDecline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"code":"card_declined","message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "sk_test").ConfirmIntent(context.Background(), IntentRequest{
		AmountCents: 2000, Currency: "usd", PaymentMethodID: "pm_bad",
	})
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if perr.Message != "Your card was declined." {
		t.Fatalf("message = %q", perr.Message)
	}
}

func TestConfirmIntentMalformedFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "sk_test").ConfirmIntent(context.Background(), IntentRequest{
		AmountCents: 2000, Currency: "usd", PaymentMethodID: "pm_card",
	})
	var perr *Error
	if err == nil || errors.As(err, &perr) {
		t.Fatalf("err = %v, want generic upstream error", err)
	}
}
