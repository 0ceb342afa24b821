// Package mail provides outbound email delivery. The sender is treated as
// unreliable: callers log failures and move on, they never retry or queue.
package mail

import "context"

// Message is a single outbound email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
