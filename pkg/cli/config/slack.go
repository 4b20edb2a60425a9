package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/msp-lab/deskhawk/pkg/service/notify"
	"github.com/urfave/cli/v3"
)

// Slack holds the optional Slack notification channel configuration
type Slack struct {
	OAuthToken string
	ChannelID  string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token for alert delivery",
			Category:    "Notification",
			Sources:     cli.EnvVars("DESKHAWK_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID for alert delivery",
			Category:    "Notification",
			Sources:     cli.EnvVars("DESKHAWK_SLACK_CHANNEL"),
			Destination: &s.ChannelID,
		},
	}
}

// IsConfigured checks if any Slack setting is present
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != "" || s.ChannelID != ""
}

// ConfigureOptional creates a Slack notifier if configured, returns nil if
// not. A partially filled configuration is a startup error.
func (s *Slack) ConfigureOptional(ctx context.Context) (*notify.Slack, error) {
	if !s.IsConfigured() {
		ctxlog.From(ctx).Debug("Slack notification not configured")
		return nil, nil
	}

	notifier, err := notify.NewSlack(s.OAuthToken, s.ChannelID)
	if err != nil {
		return nil, goerr.Wrap(err, "Slack notification configuration is incomplete")
	}
	return notifier, nil
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.ChannelID),
	)
}
