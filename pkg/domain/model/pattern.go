package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/msp-lab/deskhawk/pkg/domain/types"
)

// Pattern represents a reportable cluster of tickets sharing a dimension
// value and meeting a count threshold. Patterns are constructed fresh on
// every analysis run and are immutable once returned to a caller.
type Pattern struct {
	ID        string                `json:"id"`
	Kind      types.PatternKind     `json:"kind"`
	Dimension types.Dimension       `json:"dimension,omitempty"` // set for dimension_threshold patterns
	Value     string                `json:"value"`               // user name, company name, or group value
	Category  types.IssueCategoryID `json:"category,omitempty"`  // set for user_repeat patterns
	Count     int                   `json:"ticket_count"`
	Tickets   []Ticket              `json:"tickets"`
	FirstSeen time.Time             `json:"first_occurrence"`
	LastSeen  time.Time             `json:"last_occurrence"`
	Level     types.AlertLevel      `json:"alert_level"`
	Narrative *Narrative            `json:"narrative,omitempty"`
}

// NewPattern creates a Pattern over the given member tickets. FirstSeen and
// LastSeen are the min and max of the members' usable timestamps; both stay
// zero when no member carries one.
func NewPattern(kind types.PatternKind, value string, level types.AlertLevel, tickets []Ticket) (*Pattern, error) {
	if !kind.IsValid() {
		return nil, goerr.New("invalid pattern kind", goerr.V("kind", kind))
	}
	if len(tickets) == 0 {
		return nil, goerr.New("pattern requires at least one ticket")
	}

	p := &Pattern{
		ID:      uuid.New().String(),
		Kind:    kind,
		Value:   value,
		Count:   len(tickets),
		Tickets: tickets,
		Level:   level,
	}

	for _, t := range tickets {
		if !t.HasCreatedAt() {
			continue
		}
		if p.FirstSeen.IsZero() || t.CreatedAt.Before(p.FirstSeen) {
			p.FirstSeen = t.CreatedAt
		}
		if p.LastSeen.IsZero() || t.CreatedAt.After(p.LastSeen) {
			p.LastSeen = t.CreatedAt
		}
	}

	return p, nil
}

// Narrative represents the structured verdict returned by the narrative
// summarizer for a repeat-pattern candidate. All fields come from the
// external text-generation service and are validated before use.
type Narrative struct {
	HasPattern   bool             `json:"has_pattern"`
	IssueType    string           `json:"issue_type"`
	Significance types.AlertLevel `json:"significance"`
	UserImpact   string           `json:"user_impact"`
}

// Validate checks the narrative satisfies the structured response contract
func (n *Narrative) Validate() error {
	if n.IssueType == "" {
		return goerr.New("narrative missing issue type")
	}
	switch n.Significance {
	case types.AlertLow, types.AlertMedium, types.AlertHigh:
	default:
		return goerr.New("narrative has invalid significance",
			goerr.V("significance", n.Significance))
	}
	return nil
}
