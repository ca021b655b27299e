package usecase

import (
	"fmt"
	"strings"

	"alphahunter/internal/domain"
)

const (
	immediateHeader = "⚡ **IMMEDIATE TOKEN OPPORTUNITY** ⚡"
	standardHeader  = "🚀 **NEW ALPHA DETECTED** 🚀"
	alertFooter     = "🔗 *Check source for details.*"
)

// FormatAlert renders the operator-facing alert for one candidate. Blank
// fields fall back to placeholders; the source and cadence lines are
// omitted entirely when empty.
func FormatAlert(c domain.Candidate) string {
	header := standardHeader
	if c.Immediate {
		header = immediateHeader
	}

	project := strings.TrimSpace(c.Project)
	if project == "" {
		project = "Unknown"
	}
	action := strings.TrimSpace(c.Action)
	if action == "" {
		action = "N/A"
	}
	investors := "None"
	if len(c.Investors) > 0 {
		investors = strings.Join(c.Investors, ", ")
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "🔹 **Project:** %s\n", project)
	fmt.Fprintf(&b, "🛠 **Action:** %s\n", action)
	fmt.Fprintf(&b, "💰 **VC Score:** %d/10\n", c.Score)
	fmt.Fprintf(&b, "👥 **Investors:** %s\n", investors)
	if source := strings.TrimSpace(c.Source); source != "" {
		fmt.Fprintf(&b, "🔗 **Source:** %s\n", source)
	}
	if frequency := strings.TrimSpace(c.Frequency); frequency != "" {
		fmt.Fprintf(&b, "📅 **Cadence:** %s\n", frequency)
	}
	b.WriteString("\n")
	b.WriteString(alertFooter)

	return b.String()
}
