package analysis

import (
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/msp-lab/deskhawk/pkg/domain/model"
	"github.com/msp-lab/deskhawk/pkg/domain/types"
)

// Config holds the significance thresholds and the temporal cluster gap
type Config struct {
	// UserRepeatThreshold is the minimum ticket count for a (user, issue
	// category) group to qualify as a user-repeat pattern.
	UserRepeatThreshold int
	// CompanyThreshold is the minimum count of network-related tickets, and
	// the minimum temporal cluster size, for a company-network pattern.
	CompanyThreshold int
	// GenericThreshold is the minimum group size for the generic
	// multi-dimension filter used by the member-centric path.
	GenericThreshold int
	// ClusterGap is the maximum distance between consecutive events in one
	// temporal cluster.
	ClusterGap time.Duration
}

// DefaultConfig returns the default analysis configuration
func DefaultConfig() Config {
	return Config{
		UserRepeatThreshold: 2,
		CompanyThreshold:    3,
		GenericThreshold:    3,
		ClusterGap:          DefaultClusterGap,
	}
}

// Validate validates the configuration
func (c Config) Validate() error {
	if c.UserRepeatThreshold < 1 {
		return goerr.New("user repeat threshold must be positive",
			goerr.V("threshold", c.UserRepeatThreshold))
	}
	if c.CompanyThreshold < 1 {
		return goerr.New("company threshold must be positive",
			goerr.V("threshold", c.CompanyThreshold))
	}
	if c.GenericThreshold < 1 {
		return goerr.New("generic threshold must be positive",
			goerr.V("threshold", c.GenericThreshold))
	}
	if c.ClusterGap <= 0 {
		return goerr.New("cluster gap must be positive",
			goerr.V("gap", c.ClusterGap))
	}
	return nil
}

// Analyzer runs grouping, temporal clustering and significance filtering
// across the configured pattern kinds. It is a pure function over the ticket
// snapshot it is given: it never fetches data and never mutates tickets. A
// thin caller owns scheduling and data fetching.
type Analyzer struct {
	classifier *Classifier
	cfg        Config
}

// New creates an Analyzer with the given classifier and configuration. A nil
// classifier selects the built-in default keyword table.
func New(classifier *Classifier, cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid analysis config")
	}
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	return &Analyzer{
		classifier: classifier,
		cfg:        cfg,
	}, nil
}

// Classifier returns the classifier used by the analyzer
func (a *Analyzer) Classifier() *Classifier {
	return a.classifier
}

// Analyze runs the kind-specific significance filters over the snapshot and
// merges the results into one list. An empty snapshot, or a snapshot with no
// qualifying groups, yields an empty list and no error. The output order is
// deterministic (kind, then value) so repeated runs over one unchanged
// snapshot produce identical results.
func (a *Analyzer) Analyze(tickets []model.Ticket, kinds ...types.PatternKind) ([]*model.Pattern, error) {
	if len(kinds) == 0 {
		kinds = []types.PatternKind{types.KindUserRepeat, types.KindCompanyNetwork}
	}

	var patterns []*model.Pattern
	for _, kind := range kinds {
		var (
			found []*model.Pattern
			err   error
		)
		switch kind {
		case types.KindUserRepeat:
			found, err = a.userRepeatPatterns(tickets)
		case types.KindCompanyNetwork:
			found, err = a.companyNetworkPatterns(tickets)
		case types.KindDimensionThreshold:
			found, err = a.dimensionPatterns(tickets)
		default:
			return nil, goerr.New("unknown pattern kind", goerr.V("kind", kind))
		}
		if err != nil {
			return nil, goerr.Wrap(err, "pattern analysis failed", goerr.V("kind", kind))
		}
		patterns = append(patterns, found...)
	}

	sortPatterns(patterns)
	return patterns, nil
}

// AnalyzeMember runs the generic multi-dimension filter over one member's
// tickets. This is the member-centric (legacy) analysis path; the
// kind-specific filters in Analyze are the primary policy.
func (a *Analyzer) AnalyzeMember(tickets []model.Ticket) ([]*model.Pattern, error) {
	return a.Analyze(tickets, types.KindDimensionThreshold)
}

// sortPatterns orders patterns by kind, then dimension, then value, then
// category so analysis output is stable across runs.
func sortPatterns(patterns []*model.Pattern) {
	sort.Slice(patterns, func(i, j int) bool {
		a, b := patterns[i], patterns[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Dimension != b.Dimension {
			return a.Dimension < b.Dimension
		}
		if a.Value != b.Value {
			return a.Value < b.Value
		}
		return a.Category < b.Category
	})
}
