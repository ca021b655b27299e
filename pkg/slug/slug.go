// Package slug maps project names onto URL path segments.
package slug

import "strings"

// Make converts a project name to its URL slug: every space becomes a dash.
func Make(name string) string {
	return strings.ReplaceAll(name, " ", "-")
}

// Match reports whether the name's slug equals candidate, ignoring case.
func Match(name, candidate string) bool {
	return strings.EqualFold(Make(name), candidate)
}
