package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/msp-lab/deskhawk/pkg/cli/config"
	controller "github.com/msp-lab/deskhawk/pkg/controller/http"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		cfgs      monitorConfigs
	)

	flags := joinFlags(
		serverCfg.Flags(),
		cfgs.flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start the pattern API server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting deskhawk server",
				slog.String("addr", serverCfg.Addr),
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

			server := controller.NewServer(ctx, serverCfg.Addr, monitor)

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
