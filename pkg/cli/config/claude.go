package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/claude"
	"github.com/urfave/cli/v3"
)

// Claude holds the text-generation service configuration for the narrative
// summarizer
type Claude struct {
	APIKey string
	Model  string
}

// Flags returns CLI flags for Claude configuration
func (c *Claude) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "anthropic-api-key",
			Usage:       "Anthropic API key for narrative summaries",
			Category:    "Narrative",
			Sources:     cli.EnvVars("DESKHAWK_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"),
			Destination: &c.APIKey,
		},
		&cli.StringFlag{
			Name:        "anthropic-model",
			Usage:       "Anthropic model name",
			Category:    "Narrative",
			Value:       "claude-sonnet-4-20250514",
			Sources:     cli.EnvVars("DESKHAWK_ANTHROPIC_MODEL"),
			Destination: &c.Model,
		},
	}
}

// IsConfigured checks if the narrative service is configured
func (c *Claude) IsConfigured() bool {
	return c.APIKey != ""
}

// ConfigureOptional creates a gollem LLM client if configured, returns nil
// if not. The narrative step is purely additive; the analysis pipeline runs
// without it.
func (c *Claude) ConfigureOptional(ctx context.Context) gollem.LLMClient {
	logger := ctxlog.From(ctx)

	if !c.IsConfigured() {
		logger.Info("Narrative summarizer not configured")
		return nil
	}

	client, err := claude.New(ctx, c.APIKey, claude.WithModel(c.Model))
	if err != nil {
		logger.Warn("Failed to create LLM client, narratives disabled", "error", err)
		return nil
	}

	logger.Info("Narrative summarizer configured", slog.String("model", c.Model))
	return client
}

// LogValue returns structured log value
func (c Claude) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_api_key", c.APIKey != ""),
		slog.String("model", c.Model),
	)
}
