package types

import "fmt"

// TicketID represents a helpdesk ticket identifier
type TicketID int

// String returns the string representation
func (id TicketID) String() string {
	return fmt.Sprintf("%d", id)
}

// Int returns the int representation
func (id TicketID) Int() int {
	return int(id)
}

// MemberID represents a reporting member identifier (e.g. "sarah.smith")
type MemberID string

// String returns the string representation
func (id MemberID) String() string {
	return string(id)
}

// IssueCategoryID represents a classifier category identifier
type IssueCategoryID string

// String returns the string representation
func (id IssueCategoryID) String() string {
	return string(id)
}

// CategoryOther is the fallback category when no keyword matches
const CategoryOther IssueCategoryID = "other"

// Dimension represents a ticket grouping dimension
type Dimension string

const (
	DimensionSummary  Dimension = "summary"
	DimensionType     Dimension = "type"
	DimensionPriority Dimension = "priority"
	DimensionCategory Dimension = "category"
	DimensionUser     Dimension = "user"
	DimensionCompany  Dimension = "company"
)

// String returns the string representation
func (d Dimension) String() string {
	return string(d)
}

// IsValid checks if the dimension is one of the known values
func (d Dimension) IsValid() bool {
	switch d {
	case DimensionSummary, DimensionType, DimensionPriority,
		DimensionCategory, DimensionUser, DimensionCompany:
		return true
	}
	return false
}

// PatternKind represents the kind of a detected ticket pattern
type PatternKind string

const (
	// KindUserRepeat marks repeated tickets from one user within one issue category
	KindUserRepeat PatternKind = "user_repeat"
	// KindCompanyNetwork marks temporally clustered network trouble across one company
	KindCompanyNetwork PatternKind = "company_network"
	// KindDimensionThreshold marks the generic per-dimension count patterns
	// produced by the member-centric analysis path
	KindDimensionThreshold PatternKind = "dimension_threshold"
)

// String returns the string representation
func (k PatternKind) String() string {
	return string(k)
}

// IsValid checks if the pattern kind is one of the known values
func (k PatternKind) IsValid() bool {
	switch k {
	case KindUserRepeat, KindCompanyNetwork, KindDimensionThreshold:
		return true
	}
	return false
}

// AlertLevel represents the significance tier of a pattern
type AlertLevel string

const (
	AlertLow    AlertLevel = "low"
	AlertMedium AlertLevel = "medium"
	AlertHigh   AlertLevel = "high"
)

// String returns the string representation
func (l AlertLevel) String() string {
	return string(l)
}

// AtLeast reports whether the level is at or above the given level
func (l AlertLevel) AtLeast(other AlertLevel) bool {
	return l.rank() >= other.rank()
}

func (l AlertLevel) rank() int {
	switch l {
	case AlertHigh:
		return 2
	case AlertMedium:
		return 1
	default:
		return 0
	}
}
