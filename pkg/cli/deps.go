package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/msp-lab/deskhawk/pkg/cli/config"
	"github.com/msp-lab/deskhawk/pkg/domain/interfaces"
	"github.com/msp-lab/deskhawk/pkg/service/llm"
	"github.com/msp-lab/deskhawk/pkg/service/notify"
	"github.com/msp-lab/deskhawk/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// monitorConfigs bundles the configuration shared by the serve, monitor and
// analyze commands.
type monitorConfigs struct {
	connectwise config.ConnectWise
	analysis    config.Analysis
	claude      config.Claude
	smtp        config.SMTP
	slack       config.Slack
}

func (c *monitorConfigs) flags() []cli.Flag {
	return joinFlags(
		c.connectwise.Flags(),
		c.analysis.Flags(),
		c.claude.Flags(),
		c.smtp.Flags(),
		c.slack.Flags(),
	)
}

// buildMonitor wires the full dependency graph once at startup: ticket
// source, analyzer, optional narrative service and notification channels.
// Incomplete required configuration fails here, before any cycle runs.
func buildMonitor(ctx context.Context, cfgs *monitorConfigs) (*usecase.Monitor, error) {
	source, err := cfgs.connectwise.Configure(ctx)
	if err != nil {
		return nil, err
	}

	analyzer, err := cfgs.analysis.Configure()
	if err != nil {
		return nil, err
	}

	opts := []usecase.MonitorOption{
		usecase.WithLookbackDays(int(cfgs.analysis.TimeframeDays)),
	}

	if llmClient := cfgs.claude.ConfigureOptional(ctx); llmClient != nil {
		opts = append(opts, usecase.WithNarrator(llm.NewService(llmClient)))
	}

	notifier, err := buildNotifier(ctx, cfgs)
	if err != nil {
		return nil, err
	}
	if notifier != nil {
		opts = append(opts, usecase.WithNotifier(notifier))
	}

	monitor, err := usecase.NewMonitor(source, analyzer, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create monitor")
	}
	return monitor, nil
}

// buildNotifier assembles the notification channel from the configured
// sinks: none, one, or a fanout over both.
func buildNotifier(ctx context.Context, cfgs *monitorConfigs) (interfaces.Notifier, error) {
	var notifiers []interfaces.Notifier

	mailer, err := cfgs.smtp.Configure()
	if err != nil {
		return nil, err
	}
	if mailer != nil {
		notifiers = append(notifiers, mailer)
	}

	slackNotifier, err := cfgs.slack.ConfigureOptional(ctx)
	if err != nil {
		return nil, err
	}
	if slackNotifier != nil {
		notifiers = append(notifiers, slackNotifier)
	}

	switch len(notifiers) {
	case 0:
		ctxlog.From(ctx).Info("No notification channel configured, alerts disabled")
		return nil, nil
	case 1:
		return notifiers[0], nil
	default:
		return notify.NewMulti(notifiers...), nil
	}
}
