package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/msp-lab/deskhawk/pkg/service/notify"
	"github.com/urfave/cli/v3"
)

// SMTP holds email notification configuration
type SMTP struct {
	Host      string
	Port      int64
	Username  string
	Password  string
	Recipient string
}

// Flags returns CLI flags for SMTP configuration
func (s *SMTP) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "smtp-host",
			Usage:       "SMTP server host",
			Category:    "Notification",
			Sources:     cli.EnvVars("DESKHAWK_SMTP_HOST"),
			Destination: &s.Host,
		},
		&cli.Int64Flag{
			Name:        "smtp-port",
			Usage:       "SMTP server port",
			Category:    "Notification",
			Value:       587,
			Sources:     cli.EnvVars("DESKHAWK_SMTP_PORT"),
			Destination: &s.Port,
		},
		&cli.StringFlag{
			Name:        "smtp-username",
			Usage:       "SMTP username (also used as the sender address)",
			Category:    "Notification",
			Sources:     cli.EnvVars("DESKHAWK_SMTP_USERNAME"),
			Destination: &s.Username,
		},
		&cli.StringFlag{
			Name:        "smtp-password",
			Usage:       "SMTP password",
			Category:    "Notification",
			Sources:     cli.EnvVars("DESKHAWK_SMTP_PASSWORD"),
			Destination: &s.Password,
		},
		&cli.StringFlag{
			Name:        "notification-email",
			Usage:       "Alert recipient address",
			Category:    "Notification",
			Sources:     cli.EnvVars("DESKHAWK_NOTIFICATION_EMAIL"),
			Destination: &s.Recipient,
		},
	}
}

// IsConfigured checks if any SMTP setting is present
func (s *SMTP) IsConfigured() bool {
	return s.Host != "" || s.Username != "" || s.Password != "" || s.Recipient != ""
}

// Configure creates the SMTP notifier. Returns nil when SMTP is entirely
// unconfigured; a partially filled configuration is a startup error.
func (s *SMTP) Configure() (*notify.Mailer, error) {
	if !s.IsConfigured() {
		return nil, nil
	}

	mailer, err := notify.NewMailer(s.Host, int(s.Port), s.Username, s.Password, s.Recipient)
	if err != nil {
		return nil, goerr.Wrap(err, "SMTP notification configuration is incomplete")
	}
	return mailer, nil
}

// LogValue returns structured log value
func (s SMTP) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("host", s.Host),
		slog.Int64("port", s.Port),
		slog.Bool("has_username", s.Username != ""),
		slog.Bool("has_password", s.Password != ""),
		slog.String("recipient", s.Recipient),
	)
}
