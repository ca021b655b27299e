package domain

import "strings"

// Extraction is the normalized output of the extraction chain. All three
// fields are always present and coerced to their declared types.
type Extraction struct {
	Project   string
	Action    string
	Investors []string
}

// NewExtraction coerces raw extraction output into a well-formed record:
// project and action are trimmed, investor entries are trimmed and blank
// entries dropped.
func NewExtraction(project, action string, investors []string) Extraction {
	cleaned := make([]string, 0, len(investors))
	for _, inv := range investors {
		if v := strings.TrimSpace(inv); v != "" {
			cleaned = append(cleaned, v)
		}
	}

	return Extraction{
		Project:   strings.TrimSpace(project),
		Action:    strings.TrimSpace(action),
		Investors: cleaned,
	}
}

// Candidate is one scored opportunity flowing through the pipeline. It lives
// for a single scan cycle; only its SeenProject projection is persisted.
type Candidate struct {
	Project   string
	Action    string
	Investors []string
	Score     int
	Priority  Priority

	// Provenance, all optional.
	Source      string
	PublishedAt string
	SourceKind  string
	Frequency   string

	// Immediate marks launch/claim language detected in the raw item or the
	// extracted action. Force bypasses dedup and score gating entirely.
	Immediate bool
	Force     bool
}

// NewCandidate binds an extraction to its computed score and priority.
// Provenance and flags are filled in by the scan runner.
func NewCandidate(ex Extraction, score int, priority Priority) Candidate {
	return Candidate{
		Project:   ex.Project,
		Action:    ex.Action,
		Investors: ex.Investors,
		Score:     score,
		Priority:  priority,
	}
}

// Priority buckets a candidate's score for filtering and display.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Label returns the decorated form used in logs and operator output.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "🔥 HIGH PRIORITY"
	case PriorityMedium:
		return "✅ MEDIUM"
	case PriorityLow:
		return "👀 LOW"
	}
	return string(p)
}
