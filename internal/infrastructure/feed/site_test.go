package feed

import (
	"context"
	"testing"
)

func TestSiteSourceJoinsTitleAndDescription(t *testing.T) {
	t.Parallel()

	server := feedServer(t, sampleFeed)
	source := NewSiteSource(server.URL, "site", NewRSSClient(5))

	items, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first := items[0]
	want := "Project: Nexus backed by Paradigm Claim now before the window closes"
	if first.Text != want {
		t.Fatalf("text = %q, want %q", first.Text, want)
	}
	if first.SourceKind != "site" {
		t.Fatalf("source kind = %q", first.SourceKind)
	}
	// "claim now" lives in the description, so site items do pick it up.
	if !first.ImmediateHint {
		t.Fatal("expected immediate hint from description")
	}
	if items[1].ImmediateHint {
		t.Fatal("second item has no immediate language")
	}
}

func TestSiteSourcePropagatesFetchFailure(t *testing.T) {
	t.Parallel()

	source := NewSiteSource("http://127.0.0.1:1/feed", "site", NewRSSClient(5))

	if _, err := source.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for unreachable feed")
	}
}
