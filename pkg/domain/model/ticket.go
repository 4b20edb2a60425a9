package model

import (
	"time"

	"github.com/msp-lab/deskhawk/pkg/domain/types"
)

// Ticket represents a helpdesk ticket as returned by the ticket source.
// The analysis core treats tickets as read-only input; optional fields are
// absent when empty (strings) or zero (CreatedAt), and consumers must check
// the Has* accessors before relying on them.
type Ticket struct {
	ID          types.TicketID `json:"id"`
	Summary     string         `json:"summary"`
	Description string         `json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at,omitempty"`
	User        string         `json:"user,omitempty"`
	Company     string         `json:"company,omitempty"`
	Type        string         `json:"type,omitempty"`
	Priority    string         `json:"priority,omitempty"`
}

// HasUser reports whether the ticket has an associated user name
func (t Ticket) HasUser() bool {
	return t.User != ""
}

// HasCompany reports whether the ticket has an associated company name
func (t Ticket) HasCompany() bool {
	return t.Company != ""
}

// HasType reports whether the ticket has a type name
func (t Ticket) HasType() bool {
	return t.Type != ""
}

// HasPriority reports whether the ticket has a priority name
func (t Ticket) HasPriority() bool {
	return t.Priority != ""
}

// HasCreatedAt reports whether the ticket carries a usable creation
// timestamp. Tickets without one are excluded from temporal clustering but
// still count toward group sizes.
func (t Ticket) HasCreatedAt() bool {
	return !t.CreatedAt.IsZero()
}

// Text returns the summary and description joined for keyword matching
func (t Ticket) Text() string {
	if t.Description == "" {
		return t.Summary
	}
	return t.Summary + " " + t.Description
}
