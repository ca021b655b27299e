package extract

import (
	"context"
	"regexp"
	"strings"

	"alphahunter/internal/domain"
)

// ManualReviewAction marks extractions produced without an LLM.
const ManualReviewAction = "Manual review required"

var projectLabelRe = regexp.MustCompile(`(?i)(?:project|protocol|app)\s*[:\-]\s*([A-Za-z0-9_\-. ]+)`)

// Rules is the terminal extraction strategy: a labeled-name regex plus a
// case-folded scan for known investors. It never fails.
type Rules struct {
	investors []string
}

var _ Strategy = (*Rules)(nil)

// NewRules builds the rule-based strategy over the known investor names,
// matched and reported in the given order.
func NewRules(knownInvestors []string) *Rules {
	return &Rules{investors: knownInvestors}
}

// Name identifies the strategy in logs.
func (r *Rules) Name() string {
	return "rules"
}

// Attempt extracts a project name from a Project/Protocol/App label (first
// token of the first non-empty line otherwise) and reports every known
// investor mentioned in the text, case-folded and deduplicated.
func (r *Rules) Attempt(_ context.Context, rawText string) (domain.Extraction, error) {
	project := ""
	if match := projectLabelRe.FindStringSubmatch(rawText); match != nil {
		project = match[1]
	} else {
		for _, line := range strings.Split(rawText, "\n") {
			if fields := strings.Fields(line); len(fields) > 0 {
				project = fields[0]
				break
			}
		}
	}

	lowered := strings.ToLower(rawText)
	seen := make(map[string]bool, len(r.investors))
	var investors []string
	for _, name := range r.investors {
		folded := strings.ToLower(name)
		if seen[folded] || !strings.Contains(lowered, folded) {
			continue
		}
		seen[folded] = true
		investors = append(investors, folded)
	}

	return domain.NewExtraction(project, ManualReviewAction, investors), nil
}
