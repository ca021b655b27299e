package domain

import "strings"

// FeedItem is one raw entry pulled from a source before extraction.
type FeedItem struct {
	Text           string
	Link           string
	Published      string
	SourceInstance string
	SourceKind     string
	ImmediateHint  bool
}

// ImmediateKeywords flag launch/claim language that marks an opportunity as
// actionable right now rather than merely interesting.
var ImmediateKeywords = []string{
	"claim now",
	"claim live",
	"token live",
	"tge live",
	"airdrop live",
	"mint live",
	"instant reward",
	"redeem now",
}

// ImmediateSignal reports whether text contains any immediate-token keyword,
// case-insensitively.
func ImmediateSignal(text string) bool {
	normalized := strings.ToLower(text)
	for _, keyword := range ImmediateKeywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}
