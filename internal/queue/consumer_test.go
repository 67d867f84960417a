package queue

import (
	"errors"
	"testing"
)

func TestHandleMessageDelivers(t *testing.T) {
	var gotTo, gotSubject string
	send := func(to, subject, body string) error {
		gotTo, gotSubject = to, subject
		return nil
	}
	body := []byte(`{"to":"alice@example.com","subject":"Password Reset","body":"link"}`)
	if err := handleMessage(body, send); err != nil {
		t.Fatalf("handleMessage: %v", err)
	}
	if gotTo != "alice@example.com" || gotSubject != "Password Reset" {
		t.Fatalf("delivered to %q subject %q", gotTo, gotSubject)
	}
}

func TestHandleMessageRejectsBadPayload(t *testing.T) {
	send := func(to, subject, body string) error { return nil }
	if err := handleMessage([]byte("not json"), send); err == nil {
		t.Fatal("expected error for malformed payload")
	}
	if err := handleMessage([]byte(`{"subject":"no recipient"}`), send); err == nil {
		t.Fatal("expected error for missing recipient")
	}
}

func TestHandleMessagePropagatesSendError(t *testing.T) {
	boom := errors.New("relay down")
	send := func(to, subject, body string) error { return boom }
	err := handleMessage([]byte(`{"to":"a@b","subject":"s","body":"b"}`), send)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped relay error", err)
	}
}
