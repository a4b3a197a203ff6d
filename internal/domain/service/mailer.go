package service

import "context"

// MailMessage is one outbound email. Text and HTML are alternative bodies for
// the same content.
type MailMessage struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer defines the interface for the outbound mail transport. Delivery is
// binary success/failure with no retry and no queue; callers decide whether a
// failure matters.
type Mailer interface {
	Send(ctx context.Context, msg *MailMessage) error
}
