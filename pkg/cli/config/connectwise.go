package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/msp-lab/deskhawk/pkg/domain/interfaces"
	"github.com/msp-lab/deskhawk/pkg/service/connectwise"
	"github.com/urfave/cli/v3"
)

// ConnectWise holds ticket source configuration
type ConnectWise struct {
	BaseURL    string
	CompanyID  string
	PublicKey  string
	PrivateKey string
	ClientID   string
	MockSource bool
	MockSeed   int64
}

// Flags returns CLI flags for ConnectWise configuration
func (c *ConnectWise) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cw-base-url",
			Usage:       "ConnectWise API base URL",
			Category:    "ConnectWise",
			Sources:     cli.EnvVars("DESKHAWK_CW_BASE_URL"),
			Destination: &c.BaseURL,
		},
		&cli.StringFlag{
			Name:        "cw-company-id",
			Usage:       "ConnectWise company ID",
			Category:    "ConnectWise",
			Sources:     cli.EnvVars("DESKHAWK_CW_COMPANY_ID"),
			Destination: &c.CompanyID,
		},
		&cli.StringFlag{
			Name:        "cw-public-key",
			Usage:       "ConnectWise API public key",
			Category:    "ConnectWise",
			Sources:     cli.EnvVars("DESKHAWK_CW_PUBLIC_KEY"),
			Destination: &c.PublicKey,
		},
		&cli.StringFlag{
			Name:        "cw-private-key",
			Usage:       "ConnectWise API private key",
			Category:    "ConnectWise",
			Sources:     cli.EnvVars("DESKHAWK_CW_PRIVATE_KEY"),
			Destination: &c.PrivateKey,
		},
		&cli.StringFlag{
			Name:        "cw-client-id",
			Usage:       "ConnectWise client ID header value",
			Category:    "ConnectWise",
			Sources:     cli.EnvVars("DESKHAWK_CW_CLIENT_ID"),
			Destination: &c.ClientID,
		},
		&cli.BoolFlag{
			Name:        "mock-source",
			Usage:       "Use the deterministic mock ticket source instead of the API (development)",
			Category:    "ConnectWise",
			Sources:     cli.EnvVars("DESKHAWK_MOCK_SOURCE"),
			Destination: &c.MockSource,
		},
		&cli.Int64Flag{
			Name:        "mock-seed",
			Usage:       "Seed for the mock ticket source",
			Category:    "ConnectWise",
			Value:       1,
			Sources:     cli.EnvVars("DESKHAWK_MOCK_SEED"),
			Destination: &c.MockSeed,
		},
	}
}

// Configure creates the ticket source. Missing credentials fail here, at
// startup, rather than mid-run.
func (c *ConnectWise) Configure(ctx context.Context) (interfaces.TicketSource, error) {
	if c.MockSource {
		ctxlog.From(ctx).Info("Using mock ticket source", "seed", c.MockSeed)
		return connectwise.NewMock(c.MockSeed), nil
	}

	source, err := connectwise.New(c.BaseURL, c.CompanyID, c.PublicKey, c.PrivateKey, c.ClientID)
	if err != nil {
		return nil, goerr.Wrap(err, "ConnectWise ticket source configuration is incomplete")
	}
	return source, nil
}

// LogValue returns structured log value
func (c ConnectWise) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", c.BaseURL),
		slog.String("company_id", c.CompanyID),
		slog.Bool("has_public_key", c.PublicKey != ""),
		slog.Bool("has_private_key", c.PrivateKey != ""),
		slog.Bool("has_client_id", c.ClientID != ""),
		slog.Bool("mock_source", c.MockSource),
	)
}
