package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/msp-lab/deskhawk/pkg/analysis"
	"github.com/urfave/cli/v3"
)

// Analysis holds the pattern-detection thresholds and windows
type Analysis struct {
	UserRepeatThreshold int64
	CompanyThreshold    int64
	AlertThreshold      int64
	TimeframeDays       int64
	ClusterGap          time.Duration
	CategoriesPath      string
}

// Flags returns CLI flags for Analysis configuration
func (a *Analysis) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "user-repeat-threshold",
			Usage:       "Minimum tickets per (user, issue category) group for a user-repeat pattern",
			Category:    "Analysis",
			Value:       2,
			Sources:     cli.EnvVars("DESKHAWK_USER_REPEAT_THRESHOLD"),
			Destination: &a.UserRepeatThreshold,
		},
		&cli.Int64Flag{
			Name:        "company-threshold",
			Usage:       "Minimum network-related tickets (and cluster size) for a company-network pattern",
			Category:    "Analysis",
			Value:       3,
			Sources:     cli.EnvVars("DESKHAWK_COMPANY_THRESHOLD"),
			Destination: &a.CompanyThreshold,
		},
		&cli.Int64Flag{
			Name:        "alert-threshold",
			Usage:       "Minimum group size for the generic member-centric filter",
			Category:    "Analysis",
			Value:       3,
			Sources:     cli.EnvVars("DESKHAWK_ALERT_THRESHOLD"),
			Destination: &a.AlertThreshold,
		},
		&cli.Int64Flag{
			Name:        "timeframe-days",
			Usage:       "Trailing analysis window in days",
			Category:    "Analysis",
			Value:       7,
			Sources:     cli.EnvVars("DESKHAWK_ALERT_TIMEFRAME_DAYS"),
			Destination: &a.TimeframeDays,
		},
		&cli.DurationFlag{
			Name:        "cluster-gap",
			Usage:       "Maximum gap between consecutive events in one temporal cluster",
			Category:    "Analysis",
			Value:       analysis.DefaultClusterGap,
			Sources:     cli.EnvVars("DESKHAWK_CLUSTER_GAP"),
			Destination: &a.ClusterGap,
		},
		&cli.StringFlag{
			Name:        "categories",
			Usage:       "Path to a YAML classifier keyword table (built-in table when unset)",
			Category:    "Analysis",
			Sources:     cli.EnvVars("DESKHAWK_CATEGORIES"),
			Destination: &a.CategoriesPath,
		},
	}
}

// Configure builds the analyzer from the configured thresholds and keyword
// table
func (a *Analysis) Configure() (*analysis.Analyzer, error) {
	categories, err := a.loadCategories()
	if err != nil {
		return nil, err
	}

	analyzer, err := analysis.New(analysis.NewClassifier(categories), analysis.Config{
		UserRepeatThreshold: int(a.UserRepeatThreshold),
		CompanyThreshold:    int(a.CompanyThreshold),
		GenericThreshold:    int(a.AlertThreshold),
		ClusterGap:          a.ClusterGap,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "invalid analysis configuration")
	}
	return analyzer, nil
}

// LogValue returns structured log value
func (a Analysis) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("user_repeat_threshold", a.UserRepeatThreshold),
		slog.Int64("company_threshold", a.CompanyThreshold),
		slog.Int64("alert_threshold", a.AlertThreshold),
		slog.Int64("timeframe_days", a.TimeframeDays),
		slog.Duration("cluster_gap", a.ClusterGap),
		slog.String("categories_path", a.CategoriesPath),
	)
}
