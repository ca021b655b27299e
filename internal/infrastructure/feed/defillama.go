package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"alphahunter/internal/domain"
	"alphahunter/internal/ports"
)

// DefiLlamaSource surfaces protocols recently listed on DefiLlama. Listings
// older than the cadence window are skipped so each scan only sees what is
// new since the previous one.
type DefiLlamaSource struct {
	endpoint string
	window   time.Duration
	limit    int
	http     *http.Client
	now      func() time.Time
}

var _ ports.Source = (*DefiLlamaSource)(nil)

type llamaProtocol struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	ListedAt    int64  `json:"listedAt"`
}

// NewDefiLlamaSource builds the source over the protocols endpoint.
func NewDefiLlamaSource(endpoint string, window time.Duration, limit int) *DefiLlamaSource {
	if limit <= 0 {
		limit = defaultItemLimit
	}
	return &DefiLlamaSource{
		endpoint: endpoint,
		window:   window,
		limit:    limit,
		http:     &http.Client{Timeout: 15 * time.Second},
		now:      time.Now,
	}
}

// Name identifies the source in logs and alerts.
func (s *DefiLlamaSource) Name() string {
	return "defillama"
}

// Fetch returns the newest protocol listings inside the window, newest
// first, capped at the item limit.
func (s *DefiLlamaSource) Fetch(ctx context.Context) ([]domain.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request protocols: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("defillama returned %s", resp.Status)
	}

	var protocols []llamaProtocol
	if err := json.NewDecoder(resp.Body).Decode(&protocols); err != nil {
		return nil, fmt.Errorf("decode protocols: %w", err)
	}

	cutoff := s.now().Add(-s.window)
	recent := protocols[:0]
	for _, p := range protocols {
		if p.ListedAt <= 0 || p.Name == "" {
			continue
		}
		if time.Unix(p.ListedAt, 0).Before(cutoff) {
			continue
		}
		recent = append(recent, p)
	}

	sort.Slice(recent, func(i, j int) bool {
		return recent[i].ListedAt > recent[j].ListedAt
	})
	if len(recent) > s.limit {
		recent = recent[:s.limit]
	}

	items := make([]domain.FeedItem, 0, len(recent))
	for _, p := range recent {
		text := fmt.Sprintf("New protocol '%s' listed. %s", p.Name, p.Description)
		items = append(items, domain.FeedItem{
			Text:           text,
			Link:           p.URL,
			Published:      time.Unix(p.ListedAt, 0).UTC().Format(time.RFC3339),
			SourceInstance: s.endpoint,
			SourceKind:     "defillama",
			ImmediateHint:  domain.ImmediateSignal(text),
		})
	}

	return items, nil
}
