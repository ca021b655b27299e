package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>sample</title>
    <item>
      <title>Project: Nexus backed by Paradigm</title>
      <link>https://example.com/posts/1</link>
      <pubDate>Sat, 22 Aug 2026 10:00:00 GMT</pubDate>
      <description>Claim now before the window closes</description>
    </item>
    <item>
      <title>Quiet update</title>
      <link>https://example.com/posts/2</link>
      <pubDate>Fri, 21 Aug 2026 10:00:00 GMT</pubDate>
      <description>Nothing urgent</description>
    </item>
  </channel>
</rss>`

func feedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != userAgent {
			t.Errorf("user agent = %q, want %q", got, userAgent)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)

	return server
}

func TestRSSFetchParsesItems(t *testing.T) {
	t.Parallel()

	server := feedServer(t, sampleFeed)
	client := NewRSSClient(5)

	items, err := client.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "Project: Nexus backed by Paradigm" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.Link != "https://example.com/posts/1" {
		t.Fatalf("unexpected link: %q", first.Link)
	}
	if first.Published == "" || first.Description == "" {
		t.Fatalf("missing fields: %+v", first)
	}
}

func TestRSSFetchCapsItems(t *testing.T) {
	t.Parallel()

	var items strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&items, "<item><title>post %d</title><link>https://example.com/%d</link></item>", i, i)
	}
	body := `<?xml version="1.0"?><rss version="2.0"><channel>` + items.String() + `</channel></rss>`

	server := feedServer(t, body)
	client := NewRSSClient(5)

	got, err := client.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected cap of 5, got %d", len(got))
	}
}

func TestRSSFetchRejectsMalformedFeed(t *testing.T) {
	t.Parallel()

	server := feedServer(t, "<html><body>not a feed</body></html>")
	client := NewRSSClient(5)

	if _, err := client.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected parse error for non-RSS body")
	}
}

func TestRSSFetchRejectsErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewRSSClient(5)

	if _, err := client.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 502 response")
	}
}
