package scoring

import (
	"strings"

	"alphahunter/internal/domain"
)

const (
	highThreshold   = 18
	mediumThreshold = 8
)

// AlertThreshold is the minimum score that passes the notification gate
// without an immediate or force flag.
const AlertThreshold = mediumThreshold

// Scorer computes deterministic opportunity scores from a tier table.
type Scorer struct {
	tiers  []Tier
	lookup map[string]int
}

// NewScorer flattens the tier table into a case-folded lookup built once.
func NewScorer(tiers []Tier) *Scorer {
	lookup := make(map[string]int)
	for _, tier := range tiers {
		for _, name := range tier.Investors {
			lookup[normalize(name)] = tier.Score
		}
	}
	return &Scorer{tiers: tiers, lookup: lookup}
}

// Score sums tier contributions over the investor list. Unmatched names
// contribute zero; duplicates count every time they appear; order is
// irrelevant.
func (s *Scorer) Score(investors []string) (int, domain.Priority) {
	total := 0
	for _, investor := range investors {
		total += s.lookup[normalize(investor)]
	}
	return total, PriorityFor(total)
}

// PriorityFor buckets a score: >= 18 HIGH, >= 8 MEDIUM, else LOW.
func PriorityFor(score int) domain.Priority {
	switch {
	case score >= highThreshold:
		return domain.PriorityHigh
	case score >= mediumThreshold:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// KnownInvestors returns the table's names in tier order, for mention
// scanning by the rule-based extractor.
func (s *Scorer) KnownInvestors() []string {
	names := make([]string, 0, len(s.lookup))
	for _, tier := range s.tiers {
		names = append(names, tier.Investors...)
	}
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
