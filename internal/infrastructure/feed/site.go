package feed

import (
	"context"
	"fmt"
	"strings"

	"alphahunter/internal/domain"
	"alphahunter/internal/ports"
)

// SiteSource reads one public RSS feed. Item text joins title and summary,
// since site feeds bury the project details in the description.
type SiteSource struct {
	feedURL string
	kind    string
	client  *RSSClient
}

var _ ports.Source = (*SiteSource)(nil)

// NewSiteSource builds a source over one feed URL. Kind tags the items
// ("site", "substack").
func NewSiteSource(feedURL, kind string, client *RSSClient) *SiteSource {
	return &SiteSource{
		feedURL: feedURL,
		kind:    kind,
		client:  client,
	}
}

// Name identifies the feed in logs and alerts.
func (s *SiteSource) Name() string {
	return s.feedURL
}

// Fetch returns the latest feed entries.
func (s *SiteSource) Fetch(ctx context.Context) ([]domain.FeedItem, error) {
	items, err := s.client.Fetch(ctx, s.feedURL)
	if err != nil {
		return nil, fmt.Errorf("site feed %s: %w", s.feedURL, err)
	}

	posts := make([]domain.FeedItem, 0, len(items))
	for _, item := range items {
		text := strings.TrimSpace(strings.TrimSpace(item.Title) + " " + strings.TrimSpace(item.Description))
		posts = append(posts, domain.FeedItem{
			Text:           text,
			Link:           item.Link,
			Published:      item.Published,
			SourceInstance: s.feedURL,
			SourceKind:     s.kind,
			ImmediateHint:  domain.ImmediateSignal(text),
		})
	}

	return posts, nil
}
