package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/msp-lab/deskhawk/pkg/analysis"
	"github.com/msp-lab/deskhawk/pkg/domain/interfaces"
	"github.com/msp-lab/deskhawk/pkg/domain/model"
	"github.com/msp-lab/deskhawk/pkg/domain/types"
	"github.com/msp-lab/deskhawk/pkg/service/llm"
	"github.com/msp-lab/deskhawk/pkg/service/notify"
	"github.com/msp-lab/deskhawk/pkg/utils/apperr"
)

const defaultLookbackDays = 7

// MonitorOption is a functional option for configuring Monitor
type MonitorOption func(*Monitor)

// WithNarrator enables LLM narrative enrichment of user-repeat patterns
func WithNarrator(narrator *llm.Service) MonitorOption {
	return func(m *Monitor) {
		m.narrator = narrator
	}
}

// WithNotifier enables outbound alert delivery
func WithNotifier(notifier interfaces.Notifier) MonitorOption {
	return func(m *Monitor) {
		m.notifier = notifier
	}
}

// WithLookbackDays sets the trailing fetch window for analysis runs
func WithLookbackDays(days int) MonitorOption {
	return func(m *Monitor) {
		if days > 0 {
			m.lookbackDays = days
		}
	}
}

// Monitor owns one fetch-analyze-enrich-notify cycle over the ticket
// source. It is constructed once at process start and injected into the
// HTTP handlers and the scheduler loop; there is no module-level shared
// state. Cycles are synchronous and run to completion; the narrator and
// notifier are optional and their failures never abort a cycle.
type Monitor struct {
	source       interfaces.TicketSource
	analyzer     *analysis.Analyzer
	narrator     *llm.Service
	notifier     interfaces.Notifier
	lookbackDays int
}

// NewMonitor creates a Monitor instance
func NewMonitor(source interfaces.TicketSource, analyzer *analysis.Analyzer, opts ...MonitorOption) (*Monitor, error) {
	if source == nil {
		return nil, goerr.Wrap(model.ErrNoTicketSource, "monitor requires a ticket source")
	}
	if analyzer == nil {
		return nil, goerr.New("monitor requires an analyzer")
	}

	m := &Monitor{
		source:       source,
		analyzer:     analyzer,
		lookbackDays: defaultLookbackDays,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// LookbackDays returns the configured analysis window in days
func (m *Monitor) LookbackDays() int {
	return m.lookbackDays
}

// Snapshot fetches the ticket snapshot for the trailing lookback window
func (m *Monitor) Snapshot(ctx context.Context) ([]model.Ticket, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -m.lookbackDays)

	tickets, err := m.source.FetchTickets(ctx, start, end)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch ticket snapshot",
			goerr.V("lookbackDays", m.lookbackDays))
	}
	return tickets, nil
}

// Patterns fetches the current snapshot, runs the kind-specific analysis
// and enriches qualifying user-repeat patterns with narratives. An empty
// result is success, not an error.
func (m *Monitor) Patterns(ctx context.Context) ([]*model.Pattern, error) {
	tickets, err := m.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	patterns, err := m.analyzer.Analyze(tickets)
	if err != nil {
		return nil, err
	}

	m.enrich(ctx, patterns)
	return patterns, nil
}

// LiveResult carries the live-endpoint payload: the standard pattern
// analysis plus the ticket count of the trailing one-hour window.
type LiveResult struct {
	TicketCount int              `json:"ticket_count"`
	Patterns    []*model.Pattern `json:"patterns"`
}

// Live returns the current patterns together with the number of tickets
// created in the trailing hour.
func (m *Monitor) Live(ctx context.Context) (*LiveResult, error) {
	end := time.Now()
	recent, err := m.source.FetchTickets(ctx, end.Add(-time.Hour), end)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch trailing-hour tickets")
	}

	patterns, err := m.Patterns(ctx)
	if err != nil {
		return nil, err
	}

	return &LiveResult{
		TicketCount: len(recent),
		Patterns:    patterns,
	}, nil
}

// MemberPatterns runs the member-centric generic analysis path for one
// reporting member.
func (m *Monitor) MemberPatterns(ctx context.Context, member types.MemberID) ([]*model.Pattern, error) {
	tickets, err := m.source.FetchMemberTickets(ctx, member, m.lookbackDays)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch member tickets",
			goerr.V("member", member))
	}

	return m.analyzer.AnalyzeMember(tickets)
}

// Stats holds aggregate counts for the stats endpoint
type Stats struct {
	TotalTickets int    `json:"total_tickets"`
	TimePeriod   string `json:"time_period"`
	ActiveUsers  int    `json:"active_users"`
	Companies    int    `json:"companies"`
}

// Stats computes aggregate counts over the current snapshot
func (m *Monitor) Stats(ctx context.Context) (*Stats, error) {
	tickets, err := m.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	users := make(map[string]bool)
	companies := make(map[string]bool)
	for _, t := range tickets {
		if t.HasUser() {
			users[t.User] = true
		}
		if t.HasCompany() {
			companies[t.Company] = true
		}
	}

	return &Stats{
		TotalTickets: len(tickets),
		TimePeriod:   fmt.Sprintf("%d Days", m.lookbackDays),
		ActiveUsers:  len(users),
		Companies:    len(companies),
	}, nil
}

// RunCycle performs one full fetch-analyze-notify cycle. Fetch failures
// propagate to the caller; narrative and notification failures are recovered
// locally and only logged.
func (m *Monitor) RunCycle(ctx context.Context) ([]*model.Pattern, error) {
	logger := ctxlog.From(ctx)

	patterns, err := m.Patterns(ctx)
	if err != nil {
		return nil, err
	}

	if len(patterns) == 0 {
		logger.Info("No significant patterns detected",
			"lookbackDays", m.lookbackDays)
		return patterns, nil
	}

	logger.Info("Patterns detected",
		"count", len(patterns),
		"lookbackDays", m.lookbackDays)

	m.deliver(ctx, patterns)
	return patterns, nil
}

// enrich attaches narratives to user-repeat patterns. Any narrator failure
// degrades to "no narrative available" for that pattern; the analysis result
// itself is never affected.
func (m *Monitor) enrich(ctx context.Context, patterns []*model.Pattern) {
	if m.narrator == nil {
		return
	}

	for _, p := range patterns {
		if p.Kind != types.KindUserRepeat {
			continue
		}

		narrative, err := m.narrator.SummarizeUserPattern(ctx, p.Value, p.Tickets, m.lookbackDays)
		if err != nil {
			ctxlog.From(ctx).Warn("Narrative unavailable for pattern",
				"pattern", p.Value,
				"category", p.Category,
				"error", err)
			continue
		}
		p.Narrative = narrative
	}
}

// deliver sends the rendered alert over the notification channel when any
// pattern's tier reaches medium. Delivery failure does not abort the cycle.
func (m *Monitor) deliver(ctx context.Context, patterns []*model.Pattern) {
	if m.notifier == nil {
		return
	}

	notable := make([]*model.Pattern, 0, len(patterns))
	for _, p := range patterns {
		if p.Level.AtLeast(types.AlertMedium) {
			notable = append(notable, p)
		}
	}
	if len(notable) == 0 {
		return
	}

	subject := fmt.Sprintf("Ticket Pattern Alert (%d patterns)", len(notable))
	body := notify.RenderPatterns("recent helpdesk activity", notable)

	if err := m.notifier.Notify(ctx, subject, body); err != nil {
		apperr.Handle(ctx, goerr.Wrap(err, "alert delivery failed"))
	}
}
