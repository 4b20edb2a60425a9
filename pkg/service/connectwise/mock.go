package connectwise

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/msp-lab/deskhawk/pkg/domain/interfaces"
	"github.com/msp-lab/deskhawk/pkg/domain/model"
	"github.com/msp-lab/deskhawk/pkg/domain/types"
)

// Mock is a deterministic in-memory ticket source for development and
// tests. It generates a spread of ordinary tickets plus one deliberate
// repeat pattern so the analysis pipeline always has something to find.
// The same seed always produces the same tickets.
type Mock struct {
	seed int64
}

var (
	mockTypes      = []string{"Service Request", "Problem", "Incident"}
	mockPriorities = []string{"Low", "Medium", "High"}
	mockIssues     = []string{
		"Password Reset",
		"Network Connection Issue",
		"Software Installation",
		"Email Problems",
		"Printer Not Working",
	}
	mockCompanies = []string{"Acme Corp", "Globex", "Initech"}
)

// NewMock creates a deterministic mock ticket source
func NewMock(seed int64) *Mock {
	return &Mock{seed: seed}
}

// FetchTickets generates tickets spread over the date range
func (m *Mock) FetchTickets(ctx context.Context, start, end time.Time) ([]model.Ticket, error) {
	return m.generate(start, end, "sarah.smith"), nil
}

// FetchMemberTickets generates tickets for one member over the trailing
// lookback window
func (m *Mock) FetchMemberTickets(ctx context.Context, member types.MemberID, lookbackDays int) ([]model.Ticket, error) {
	end := time.Now().Truncate(time.Hour)
	start := end.AddDate(0, 0, -lookbackDays)
	return m.generate(start, end, member.String()), nil
}

func (m *Mock) generate(start, end time.Time, member string) []model.Ticket {
	rng := rand.New(rand.NewSource(m.seed))
	window := end.Sub(start)

	var tickets []model.Ticket

	// Ordinary background noise
	count := 5 + rng.Intn(6)
	for i := 0; i < count; i++ {
		tickets = append(tickets, m.ticket(rng, start, window, member, ""))
	}

	// One deliberate repeat pattern: four similar tickets of the same type
	patternIssue := mockIssues[rng.Intn(len(mockIssues))]
	for i := 0; i < 4; i++ {
		t := m.ticket(rng, start, window, member, patternIssue)
		t.Type = mockTypes[0]
		tickets = append(tickets, t)
	}

	return tickets
}

func (m *Mock) ticket(rng *rand.Rand, start time.Time, window time.Duration, member, issue string) model.Ticket {
	if issue == "" {
		issue = mockIssues[rng.Intn(len(mockIssues))]
	}
	offset := time.Duration(rng.Int63n(int64(window) + 1))

	return model.Ticket{
		ID:        types.TicketID(1000 + rng.Intn(9000)),
		Summary:   fmt.Sprintf("%s - %d", issue, 100+rng.Intn(900)),
		CreatedAt: start.Add(offset),
		User:      member,
		Company:   mockCompanies[rng.Intn(len(mockCompanies))],
		Type:      mockTypes[rng.Intn(len(mockTypes))],
		Priority:  mockPriorities[rng.Intn(len(mockPriorities))],
	}
}

var _ interfaces.TicketSource = (*Mock)(nil)
