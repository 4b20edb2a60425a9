package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/msp-lab/deskhawk/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdMonitor() *cli.Command {
	var (
		cfgs     monitorConfigs
		interval time.Duration
	)

	flags := joinFlags(
		cfgs.flags(),
		[]cli.Flag{
			&cli.DurationFlag{
				Name:        "interval",
				Usage:       "Time between analysis cycles (e.g. 30m, 1h, 24h)",
				Value:       time.Hour,
				Sources:     cli.EnvVars("DESKHAWK_INTERVAL"),
				Destination: &interval,
			},
		},
	)

	return &cli.Command{
		Name:  "monitor",
		Usage: "Run the scheduled fetch-analyze-notify loop",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting deskhawk monitor",
				slog.Duration("interval", interval),
				slog.Any("connectwise", cfgs.connectwise),
				slog.Any("analysis", cfgs.analysis),
				slog.Any("narrative", cfgs.claude),
				slog.Any("smtp", cfgs.smtp),
				slog.Any("slack", cfgs.slack),
			)

			monitor, err := buildMonitor(ctx, &cfgs)
			if err != nil {
				return err
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			// One cycle owns the working set exclusively; ticks are handled
			// strictly sequentially and never overlap. A failed or panicked
			// cycle is logged and skipped; the loop waits for the next tick.
			runCycle := func() {
				if err := safe.Call(ctx, func(ctx context.Context) error {
					_, err := monitor.RunCycle(ctx)
					return err
				}); err != nil {
					logger.Error("Analysis cycle failed, skipping", slog.Any("error", err))
				}
			}

			runCycle()

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					runCycle()
				case <-ctx.Done():
					logger.Info("Context cancelled, stopping monitor")
					return nil
				case sig := <-sigChan:
					logger.Info("Signal received, stopping monitor", slog.Any("signal", sig))
					return nil
				}
			}
		},
	}
}
