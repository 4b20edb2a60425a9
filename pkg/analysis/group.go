package analysis

import (
	"github.com/msp-lab/deskhawk/pkg/domain/model"
	"github.com/msp-lab/deskhawk/pkg/domain/types"
)

// GroupBy partitions tickets into buckets by the given dimension. The
// partition is stable: each ticket keeps its relative input order within its
// group. A ticket lacking the dimension's field is excluded from that
// dimension only, never from the whole run. Summary values are normalized so
// that textual variants of the same issue share one group.
func (a *Analyzer) GroupBy(tickets []model.Ticket, dim types.Dimension) map[string][]model.Ticket {
	groups := make(map[string][]model.Ticket)

	for _, t := range tickets {
		key, ok := a.groupKey(t, dim)
		if !ok {
			continue
		}
		groups[key] = append(groups[key], t)
	}

	return groups
}

// groupKey returns the group value of a ticket for a dimension, and whether
// the ticket has the field the dimension requires.
func (a *Analyzer) groupKey(t model.Ticket, dim types.Dimension) (string, bool) {
	switch dim {
	case types.DimensionSummary:
		return Normalize(t.Summary), true
	case types.DimensionType:
		return t.Type, t.HasType()
	case types.DimensionPriority:
		return t.Priority, t.HasPriority()
	case types.DimensionCategory:
		return a.classifier.Classify(t).String(), true
	case types.DimensionUser:
		return t.User, t.HasUser()
	case types.DimensionCompany:
		return t.Company, t.HasCompany()
	}
	return "", false
}
