package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/msp-lab/deskhawk/pkg/domain/model"
)

const dateLayout = "2006-01-02 15:04"

// RenderPatterns renders one or more patterns into the plain-text alert body
// sent to the notification channel.
func RenderPatterns(title string, patterns []*model.Pattern) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Alert: Ticket Pattern Detected for %s\n\n", title)

	for _, p := range patterns {
		fmt.Fprintf(&b, "Pattern Kind: %s\n", p.Kind)
		if p.Dimension != "" {
			fmt.Fprintf(&b, "Dimension: %s\n", p.Dimension)
		}
		fmt.Fprintf(&b, "Value: %s\n", p.Value)
		if p.Category != "" {
			fmt.Fprintf(&b, "Issue Category: %s\n", p.Category)
		}
		fmt.Fprintf(&b, "Ticket Count: %d\n", p.Count)
		fmt.Fprintf(&b, "Alert Level: %s\n", p.Level)
		fmt.Fprintf(&b, "Date Range: %s to %s\n", renderTime(p.FirstSeen), renderTime(p.LastSeen))

		if p.Narrative != nil {
			fmt.Fprintf(&b, "Narrative: [%s] %s - %s\n",
				p.Narrative.Significance, p.Narrative.IssueType, p.Narrative.UserImpact)
		}

		b.WriteString("\nAffected Tickets:\n")
		for _, t := range p.Tickets {
			fmt.Fprintf(&b, "- Ticket #%s: %s\n", t.ID, t.Summary)
		}

		b.WriteString("\n" + strings.Repeat("-", 50) + "\n")
	}

	return b.String()
}

func renderTime(ts time.Time) string {
	if ts.IsZero() {
		return "unknown"
	}
	return ts.Format(dateLayout)
}
