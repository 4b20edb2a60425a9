package interfaces

import (
	"context"
	"time"

	"github.com/msp-lab/deskhawk/pkg/domain/model"
	"github.com/msp-lab/deskhawk/pkg/domain/types"
)

// TicketSource defines the interface for fetching tickets from the helpdesk
// ticketing API. The analysis core only consumes this interface; it never
// talks to the upstream API directly.
type TicketSource interface {
	// FetchTickets returns tickets created within the date range. Both
	// bounds are inclusive.
	FetchTickets(ctx context.Context, start, end time.Time) ([]model.Ticket, error)

	// FetchMemberTickets returns tickets entered by the given member within
	// the trailing lookback window.
	FetchMemberTickets(ctx context.Context, member types.MemberID, lookbackDays int) ([]model.Ticket, error)
}
