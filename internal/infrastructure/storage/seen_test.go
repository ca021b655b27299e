package storage

import (
	"context"
	"testing"
	"time"

	"alphahunter/internal/domain"
)

func TestUpsertAndExists(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	seen, err := store.Exists(ctx, "Nexus")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if seen {
		t.Fatal("fresh store should not contain Nexus")
	}

	err = store.Upsert(ctx, domain.Candidate{
		Project:   "Nexus",
		Action:    "Bridge to mainnet",
		Investors: []string{"a16z crypto", "okx ventures"},
		Score:     15,
		Source:    "https://example.com/post",
		Frequency: "daily",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	seen, err = store.Exists(ctx, "Nexus")
	if err != nil {
		t.Fatalf("exists after upsert: %v", err)
	}
	if !seen {
		t.Fatal("Nexus should exist after upsert")
	}
}

func TestUpsertBlankNameIsNoOp(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, domain.Candidate{Project: "   ", Score: 20}); err != nil {
		t.Fatalf("upsert blank: %v", err)
	}

	projects, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("blank project was persisted: %+v", projects)
	}
}

func TestUpsertOverwritesSingleRow(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	first := domain.Candidate{Project: "Nexus", Score: 8, Action: "Join waitlist"}
	second := domain.Candidate{Project: "Nexus", Score: 15, Action: "Bridge funds"}

	for _, c := range []domain.Candidate{first, second, second} {
		if err := store.Upsert(ctx, c); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	projects, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 row, got %d", len(projects))
	}
	if projects[0].LastScore != 15 || projects[0].Action != "Bridge funds" {
		t.Fatalf("row not overwritten: %+v", projects[0])
	}
}

func TestListDecodesStoredFields(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	err := store.Upsert(ctx, domain.Candidate{
		Project:   "Nexus",
		Investors: []string{"paradigm", "dragonfly"},
		Score:     15,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.Upsert(ctx, domain.Candidate{Project: "Bare", Score: 0}); err != nil {
		t.Fatalf("upsert bare: %v", err)
	}

	projects, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(projects))
	}

	byName := map[string]domain.SeenProject{}
	for _, p := range projects {
		byName[p.ProjectName] = p
	}

	nexus := byName["Nexus"]
	if nexus.Investors != `["paradigm","dragonfly"]` {
		t.Fatalf("investors stored as %q", nexus.Investors)
	}
	if nexus.DisplayInvestors() != "paradigm, dragonfly" {
		t.Fatalf("display investors: %q", nexus.DisplayInvestors())
	}
	if _, err := time.Parse(time.RFC3339, nexus.Timestamp); err != nil {
		t.Fatalf("timestamp not RFC 3339: %q", nexus.Timestamp)
	}

	bare := byName["Bare"]
	if bare.Investors != "[]" {
		t.Fatalf("empty investors stored as %q", bare.Investors)
	}
	if bare.Action != "" || bare.Source != "" || bare.Frequency != "" {
		t.Fatalf("blank optional fields should read back empty: %+v", bare)
	}
	if bare.DisplayInvestors() != "N/A" {
		t.Fatalf("display investors for empty list: %q", bare.DisplayInvestors())
	}
}

func TestSeedBaselineInsertsAbsentOnly(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, domain.Candidate{Project: "Scroll", Score: 15}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	seeds := []domain.SeenProject{
		{ProjectName: "Scroll", LastScore: 0},
		{ProjectName: "LayerZero", LastScore: 10},
		{ProjectName: "  "},
	}
	if err := store.SeedBaseline(ctx, seeds); err != nil {
		t.Fatalf("seed baseline: %v", err)
	}

	projects, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(projects), projects)
	}

	for _, p := range projects {
		if p.ProjectName == "Scroll" && p.LastScore != 15 {
			t.Fatalf("seed overwrote existing row: %+v", p)
		}
		if p.ProjectName == "LayerZero" && p.Source != "baseline" {
			t.Fatalf("seed source not tagged: %+v", p)
		}
	}
}
