// Package queue defines message payloads exchanged over the message broker.
package queue

// MailQueueName is the durable queue carrying outbound mail requests.
const MailQueueName = "mail.outbound"

// MailRequestedEvent is published when a handler wants a mail delivered
// out-of-band: password reset links, reset confirmations. It carries the
// fully rendered message so the consumer needs no database access.
type MailRequestedEvent struct {
	To          string `json:"to"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	RequestedAt string `json:"requested_at"`
}
