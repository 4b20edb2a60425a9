package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/msp-lab/deskhawk/pkg/domain/types"
	"github.com/msp-lab/deskhawk/pkg/service/notify"
	"github.com/urfave/cli/v3"
)

func cmdAnalyze() *cli.Command {
	var (
		cfgs   monitorConfigs
		member string
	)

	flags := joinFlags(
		cfgs.flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "member",
				Usage:       "Reporting member identifier to analyze (e.g. sarah.smith)",
				Required:    true,
				Sources:     cli.EnvVars("DESKHAWK_MEMBER"),
				Destination: &member,
			},
		},
	)

	return &cli.Command{
		Name:  "analyze",
		Usage: "Run a one-shot member-centric pattern analysis",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			monitor, err := buildMonitor(ctx, &cfgs)
			if err != nil {
				return err
			}

			patterns, err := monitor.MemberPatterns(ctx, types.MemberID(member))
			if err != nil {
				return err
			}

			if len(patterns) == 0 {
				logger.Info("No significant patterns found", slog.String("member", member))
				return nil
			}

			logger.Info("Patterns found",
				slog.String("member", member),
				slog.Int("count", len(patterns)),
			)
			fmt.Print(notify.RenderPatterns(member, patterns))

			return nil
		},
	}
}
