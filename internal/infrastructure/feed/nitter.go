package feed

import (
	"context"
	"fmt"
	"strings"

	"alphahunter/internal/domain"
	"alphahunter/internal/ports"
)

// NitterSource reads one X account through public nitter mirrors, trying
// instances in order until one returns a parseable, non-empty feed.
type NitterSource struct {
	account   string
	instances []string
	client    *RSSClient
}

var _ ports.Source = (*NitterSource)(nil)

// NewNitterSource builds a source for one account.
func NewNitterSource(account string, instances []string, client *RSSClient) *NitterSource {
	return &NitterSource{
		account:   account,
		instances: instances,
		client:    client,
	}
}

// Name identifies the account in logs and alerts.
func (s *NitterSource) Name() string {
	return "@" + s.account
}

// Fetch returns the latest posts for the account. Every instance failing
// fails the account with the joined instance errors.
func (s *NitterSource) Fetch(ctx context.Context) ([]domain.FeedItem, error) {
	var failures []string

	for _, instance := range s.instances {
		feedURL := fmt.Sprintf("%s/%s/rss", strings.TrimRight(instance, "/"), s.account)

		items, err := s.client.Fetch(ctx, feedURL)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", instance, err))
			continue
		}
		if len(items) == 0 {
			failures = append(failures, fmt.Sprintf("%s: empty feed entries", instance))
			continue
		}

		posts := make([]domain.FeedItem, 0, len(items))
		for _, item := range items {
			posts = append(posts, domain.FeedItem{
				Text:           item.Title,
				Link:           item.Link,
				Published:      item.Published,
				SourceInstance: instance,
				SourceKind:     "x",
				ImmediateHint:  domain.ImmediateSignal(item.Title),
			})
		}
		return posts, nil
	}

	return nil, fmt.Errorf("all nitter instances failed for @%s: %s", s.account, strings.Join(failures, " | "))
}
