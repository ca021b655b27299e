package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"alphahunter/internal/domain"
)

// CleanJSON rescues a JSON object from model output that wraps it in markdown
// fences or surrounding prose: strip a leading ``` fence (with optional json
// tag), then slice from the first '{' to the last '}'.
func CleanJSON(text string) string {
	cleaned := strings.TrimSpace(text)

	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.Trim(cleaned, "`"))
		if len(cleaned) >= 4 && strings.EqualFold(cleaned[:4], "json") {
			cleaned = strings.TrimSpace(cleaned[4:])
		}
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start != -1 && end >= start {
		cleaned = cleaned[start : end+1]
	}

	return cleaned
}

// ParseExtraction decodes cleaned model output into an Extraction. Fields of
// the wrong type coerce to their zero shape; list entries are stringified.
// A body that is not a JSON object after cleanup is a strategy failure.
func ParseExtraction(text string) (domain.Extraction, error) {
	var payload struct {
		Project   any `json:"project"`
		Action    any `json:"action"`
		Investors any `json:"investors"`
	}

	if err := json.Unmarshal([]byte(CleanJSON(text)), &payload); err != nil {
		return domain.Extraction{}, fmt.Errorf("parse model output: %w", err)
	}

	project, _ := payload.Project.(string)
	action, _ := payload.Action.(string)

	var investors []string
	if list, ok := payload.Investors.([]any); ok {
		for _, item := range list {
			investors = append(investors, fmt.Sprint(item))
		}
	}

	return domain.NewExtraction(project, action, investors), nil
}
