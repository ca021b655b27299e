package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"
)

const (
	userAgent        = "alphahunter/1.0"
	defaultItemLimit = 5
)

// Item is one entry of an RSS channel.
type Item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Published   string `xml:"pubDate"`
	Description string `xml:"description"`
}

type rssDocument struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []Item `xml:"item"`
	} `xml:"channel"`
}

// RSSClient fetches and parses RSS feeds. One client is shared by every
// RSS-backed source.
type RSSClient struct {
	http  *http.Client
	limit int
}

// NewRSSClient builds a client capping each feed at limit items
// (default 5).
func NewRSSClient(limit int) *RSSClient {
	if limit <= 0 {
		limit = defaultItemLimit
	}
	return &RSSClient{
		http:  &http.Client{Timeout: 10 * time.Second},
		limit: limit,
	}
}

// Fetch downloads and parses one feed, returning at most the configured
// number of items. A parseable but empty channel is not an error; callers
// that require entries decide that themselves.
func (c *RSSClient) Fetch(ctx context.Context, feedURL string) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %s", resp.Status)
	}

	var doc rssDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := doc.Channel.Items
	if len(items) > c.limit {
		items = items[:c.limit]
	}

	return items, nil
}
