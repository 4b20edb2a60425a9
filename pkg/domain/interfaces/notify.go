package interfaces

import "context"

// Notifier defines the outbound notification channel. Implementations
// deliver a plain-text rendering of detected patterns to a configured
// recipient (SMTP email, Slack channel, ...).
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}
