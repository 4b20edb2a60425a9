package notify

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/msp-lab/deskhawk/pkg/domain/interfaces"
	"github.com/wneessen/go-mail"
)

// Mailer delivers alert messages over SMTP with STARTTLS and plain auth
type Mailer struct {
	client    *mail.Client
	from      string
	recipient string
}

// NewMailer creates an SMTP notifier. All parameters are required; the
// configuration layer validates completeness before calling this.
func NewMailer(host string, port int, username, password, recipient string) (*Mailer, error) {
	if host == "" {
		return nil, goerr.New("SMTP host is required")
	}
	if username == "" || password == "" {
		return nil, goerr.New("SMTP credentials are incomplete",
			goerr.V("has_username", username != ""),
			goerr.V("has_password", password != ""))
	}
	if recipient == "" {
		return nil, goerr.New("notification recipient is required")
	}

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create SMTP client",
			goerr.V("host", host),
			goerr.V("port", port))
	}

	return &Mailer{
		client:    client,
		from:      username,
		recipient: recipient,
	}, nil
}

// Notify sends a plain-text alert email to the configured recipient
func (m *Mailer) Notify(ctx context.Context, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return goerr.Wrap(err, "invalid sender address", goerr.V("from", m.from))
	}
	if err := msg.To(m.recipient); err != nil {
		return goerr.Wrap(err, "invalid recipient address", goerr.V("to", m.recipient))
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return goerr.Wrap(err, "failed to send alert email",
			goerr.V("to", m.recipient))
	}

	return nil
}

var _ interfaces.Notifier = (*Mailer)(nil)
