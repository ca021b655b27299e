package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"alphahunter/internal/domain"
	"alphahunter/internal/ports"
)

// CryptoRankSource scrapes the public funding-rounds page for recent raises.
type CryptoRankSource struct {
	pageURL string
	limit   int
	client  *http.Client
}

var _ ports.Source = (*CryptoRankSource)(nil)

// NewCryptoRankSource builds the scraper, capping results at limit rows.
func NewCryptoRankSource(pageURL string, limit int) *CryptoRankSource {
	if limit <= 0 {
		limit = defaultItemLimit
	}
	return &CryptoRankSource{
		pageURL: pageURL,
		limit:   limit,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// Name identifies the source in logs and alerts.
func (s *CryptoRankSource) Name() string {
	return "cryptorank"
}

// Fetch scrapes the rounds table into feed items. A page with no parseable
// rows is treated as a fetch failure so the scan retry kicks in.
func (s *CryptoRankSource) Fetch(ctx context.Context) ([]domain.FeedItem, error) {
	doc, err := s.fetchDocument(ctx)
	if err != nil {
		return nil, err
	}

	var items []domain.FeedItem
	doc.Find("table tbody tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if len(items) >= s.limit {
			return false
		}
		item, ok := parseFundingRow(row, s.pageURL)
		if !ok {
			return true
		}
		items = append(items, item)
		return true
	})

	if len(items) == 0 {
		return nil, fmt.Errorf("no funding rounds parsed from %s", s.pageURL)
	}

	return items, nil
}

func (s *CryptoRankSource) fetchDocument(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cryptorank returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return doc, nil
}

// parseFundingRow reads one table row: project, round, amount, investors.
func parseFundingRow(row *goquery.Selection, baseURL string) (domain.FeedItem, bool) {
	cells := row.Find("td")
	if cells.Length() < 4 {
		return domain.FeedItem{}, false
	}

	name := cellText(cells.Eq(0))
	round := cellText(cells.Eq(1))
	amount := cellText(cells.Eq(2))
	investors := cellText(cells.Eq(3))
	if name == "" {
		return domain.FeedItem{}, false
	}
	if round == "" {
		round = "a funding round"
	}
	if amount == "" {
		amount = "an undisclosed amount"
	}
	if investors == "" {
		investors = "undisclosed investors"
	}

	link := baseURL
	if href, exists := cells.Eq(0).Find("a").First().Attr("href"); exists {
		link = absoluteLink(href, baseURL)
	}

	text := fmt.Sprintf("Project '%s' raised %s in %s led by %s.", name, amount, round, investors)

	return domain.FeedItem{
		Text:           text,
		Link:           link,
		SourceInstance: baseURL,
		SourceKind:     "cryptorank",
		ImmediateHint:  domain.ImmediateSignal(text),
	}, true
}

func cellText(cell *goquery.Selection) string {
	if anchor := cell.Find("a").First(); anchor.Length() > 0 {
		if text := strings.TrimSpace(anchor.Text()); text != "" {
			return text
		}
	}
	return strings.TrimSpace(cell.Text())
}

func absoluteLink(href, baseURL string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	ref, err := url.Parse(href)
	if err != nil {
		return baseURL
	}
	return base.ResolveReference(ref).String()
}
