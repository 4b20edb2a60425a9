package analysis

import (
	"strings"
	"time"

	"github.com/msp-lab/deskhawk/pkg/domain/model"
	"github.com/msp-lab/deskhawk/pkg/domain/types"
)

// networkKeywords select tickets relevant to the company-network pattern.
// Matching is case-insensitive substring containment over summary and
// description.
var networkKeywords = []string{
	"network",
	"connection",
	"internet",
	"wifi",
	"ethernet",
	"connectivity",
}

// userRepeatPatterns finds users who filed several tickets in the same issue
// category within the snapshot. A (user, category) group qualifies when its
// ticket count reaches the user-repeat threshold; the alert level is high
// from three tickets on, medium below.
func (a *Analyzer) userRepeatPatterns(tickets []model.Ticket) ([]*model.Pattern, error) {
	var patterns []*model.Pattern

	byUser := a.GroupBy(tickets, types.DimensionUser)
	for user, userTickets := range byUser {
		byCategory := a.GroupBy(userTickets, types.DimensionCategory)
		for category, members := range byCategory {
			if len(members) < a.cfg.UserRepeatThreshold {
				continue
			}

			level := types.AlertMedium
			if len(members) >= 3 {
				level = types.AlertHigh
			}

			p, err := model.NewPattern(types.KindUserRepeat, user, level, members)
			if err != nil {
				return nil, err
			}
			p.Category = types.IssueCategoryID(category)
			patterns = append(patterns, p)
		}
	}

	return patterns, nil
}

// companyNetworkPatterns finds companies whose network-related tickets both
// reach the company threshold and bunch up in time: at least one temporal
// cluster must itself reach the threshold, which guards against issues
// spread thinly over a long period. The alert level is high from five
// tickets on, medium below.
func (a *Analyzer) companyNetworkPatterns(tickets []model.Ticket) ([]*model.Pattern, error) {
	var patterns []*model.Pattern

	byCompany := a.GroupBy(tickets, types.DimensionCompany)
	for company, companyTickets := range byCompany {
		netTickets := filterNetworkTickets(companyTickets)
		if len(netTickets) < a.cfg.CompanyThreshold {
			continue
		}

		clusters := ClusterTimes(usableTimestamps(netTickets), a.cfg.ClusterGap)
		if LargestClusterSize(clusters) < a.cfg.CompanyThreshold {
			continue
		}

		level := types.AlertMedium
		if len(netTickets) >= 5 {
			level = types.AlertHigh
		}

		p, err := model.NewPattern(types.KindCompanyNetwork, company, level, netTickets)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}

	return patterns, nil
}

// dimensionPatterns is the generic multi-dimension filter used by the
// member-centric analysis path: group by summary, type and priority
// simultaneously and report any group meeting the generic threshold, tagged
// with its dimension and value.
func (a *Analyzer) dimensionPatterns(tickets []model.Ticket) ([]*model.Pattern, error) {
	dims := []types.Dimension{
		types.DimensionSummary,
		types.DimensionType,
		types.DimensionPriority,
	}

	var patterns []*model.Pattern
	for _, dim := range dims {
		for value, members := range a.GroupBy(tickets, dim) {
			if len(members) < a.cfg.GenericThreshold {
				continue
			}

			p, err := model.NewPattern(types.KindDimensionThreshold, value, countLevel(len(members)), members)
			if err != nil {
				return nil, err
			}
			p.Dimension = dim
			patterns = append(patterns, p)
		}
	}

	return patterns, nil
}

// countLevel derives the alert tier for generic dimension patterns
func countLevel(count int) types.AlertLevel {
	switch {
	case count >= 5:
		return types.AlertHigh
	case count >= 3:
		return types.AlertMedium
	default:
		return types.AlertLow
	}
}

// filterNetworkTickets keeps tickets whose text mentions any network keyword
func filterNetworkTickets(tickets []model.Ticket) []model.Ticket {
	var filtered []model.Ticket
	for _, t := range tickets {
		text := Normalize(t.Text())
		for _, kw := range networkKeywords {
			if strings.Contains(text, kw) {
				filtered = append(filtered, t)
				break
			}
		}
	}
	return filtered
}

// usableTimestamps collects the creation timestamps of tickets that carry
// one. Tickets without a usable timestamp count toward group sizes but are
// excluded from clustering.
func usableTimestamps(tickets []model.Ticket) []time.Time {
	var ts []time.Time
	for _, t := range tickets {
		if t.HasCreatedAt() {
			ts = append(ts, t.CreatedAt)
		}
	}
	return ts
}
