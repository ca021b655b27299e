package domain

import (
	"encoding/json"
	"strings"
)

// SeenProject is the persisted record of a previously observed project.
// One row per project name; every new sighting overwrites the row, so only
// the latest observation survives.
type SeenProject struct {
	ProjectName string
	LastScore   int
	// Timestamp is kept as stored (RFC 3339 UTC written by this system, but
	// legacy rows may carry other shapes), so presentation never fails on it.
	Timestamp string
	Action    string
	// Investors holds the JSON-encoded array exactly as stored.
	Investors string
	Source    string
	Frequency string
}

// DisplayInvestors decodes the stored investors JSON for presentation.
// Empty or null becomes "N/A", a valid array joins with commas, and
// anything malformed renders as the raw stored text rather than failing.
func (s SeenProject) DisplayInvestors() string {
	raw := strings.TrimSpace(s.Investors)
	if raw == "" || raw == "null" {
		return "N/A"
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return raw
	}
	if len(names) == 0 {
		return "N/A"
	}
	return strings.Join(names, ", ")
}
