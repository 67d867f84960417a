package mailer

import (
	"strings"
	"testing"
)

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("no-reply@campora.local", "alice@example.com",
		"Password Reset", "Click the link.\n"))
	for _, want := range []string{
		"From: no-reply@campora.local\r\n",
		"To: alice@example.com\r\n",
		"Subject: Password Reset\r\n",
		"\r\n\r\nClick the link.\n",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildMessageStripsHeaderInjection(t *testing.T) {
	msg := string(buildMessage("a@b", "c@d", "hi\r\nBcc: evil@e", "body"))
	if strings.Contains(msg, "Bcc:") && strings.Contains(msg, "\r\nBcc:") {
		t.Fatalf("subject newlines survived: %q", msg)
	}
}

func TestSendWithoutHost(t *testing.T) {
	m := New("", "587", "", "", "no-reply@campora.local")
	if err := m.Send("x@y", "s", "b"); err == nil {
		t.Fatal("expected error when SMTP host unset")
	}
}
