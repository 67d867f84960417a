// Package mailer delivers plain-text mail over an SMTP relay. Senders
// treat delivery as fire-and-forget: the queue consumer logs failures
// and moves on, it never surfaces them to the request that queued the
// message.
package mailer

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer holds the relay coordinates and the From address.
type Mailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// New builds a Mailer. host may be empty; Send then fails with a clear
// error that the consumer logs.
func New(host, port, user, pass, from string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from}
}

// Send delivers one message to a single recipient.
func (m *Mailer) Send(to, subject, body string) error {
	if m.host == "" {
		return errors.New("mailer: no SMTP host configured")
	}
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	msg := buildMessage(m.from, to, subject, body)
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, msg)
}

// buildMessage assembles a minimal RFC 5322 message. Header values are
// kept on one line; the callers only ever pass short subjects.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// sanitizeHeader strips CR/LF so a subject can never inject headers.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
