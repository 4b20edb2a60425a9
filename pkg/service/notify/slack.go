package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/msp-lab/deskhawk/pkg/domain/interfaces"
	"github.com/slack-go/slack"
)

// Slack delivers alert messages to a Slack channel. It is an optional
// secondary notification channel next to the SMTP mailer.
type Slack struct {
	client    *slack.Client
	channelID string
}

// NewSlack creates a Slack notifier
func NewSlack(token, channelID string) (*Slack, error) {
	if token == "" {
		return nil, goerr.New("Slack OAuth token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	return &Slack{
		client:    slack.New(token),
		channelID: channelID,
	}, nil
}

// Notify posts the alert as a single message to the configured channel
func (s *Slack) Notify(ctx context.Context, subject, body string) error {
	text := fmt.Sprintf("*%s*\n```%s```", subject, body)

	_, _, err := s.client.PostMessageContext(ctx, s.channelID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post alert to Slack",
			goerr.V("channel", s.channelID))
	}

	return nil
}

var _ interfaces.Notifier = (*Slack)(nil)
