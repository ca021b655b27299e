package extract

import (
	"context"
	"reflect"
	"testing"

	"alphahunter/internal/scoring"
)

func knownNames() []string {
	return scoring.NewScorer(scoring.DefaultTiers).KnownInvestors()
}

func TestRulesLabeledProject(t *testing.T) {
	t.Parallel()

	rules := NewRules(knownNames())

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "project label", in: "Project: Nexus\nsome body", want: "Nexus"},
		{name: "protocol label", in: "Protocol - ZeroLend is live", want: "ZeroLend is live"},
		{name: "app label lowercase", in: "app: DropHunter", want: "DropHunter"},
		{name: "no label falls back to first token", in: "Eigenlayer announced a points program", want: "Eigenlayer"},
		{name: "leading blank lines skipped", in: "\n\n  Scroll mainnet is live", want: "Scroll"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := rules.Attempt(context.Background(), tc.in)
			if err != nil {
				t.Fatalf("Attempt returned error: %v", err)
			}
			if got.Project != tc.want {
				t.Fatalf("project = %q, want %q", got.Project, tc.want)
			}
			if got.Action != ManualReviewAction {
				t.Fatalf("action = %q, want sentinel", got.Action)
			}
		})
	}
}

func TestRulesInvestorScan(t *testing.T) {
	t.Parallel()

	rules := NewRules(knownNames())

	got, err := rules.Attempt(context.Background(),
		"Project: Nexus raised funding led by a16z Crypto and OKX Ventures")
	if err != nil {
		t.Fatalf("Attempt returned error: %v", err)
	}

	want := []string{"a16z crypto", "okx ventures"}
	if !reflect.DeepEqual(got.Investors, want) {
		t.Fatalf("investors = %v, want %v", got.Investors, want)
	}
}

func TestRulesInvestorScanDeduplicatesAndOrders(t *testing.T) {
	t.Parallel()

	rules := NewRules(knownNames())

	got, err := rules.Attempt(context.Background(),
		"dragonfly and PARADIGM co-led, with Dragonfly doubling down")
	if err != nil {
		t.Fatalf("Attempt returned error: %v", err)
	}

	// Tier order, not mention order.
	want := []string{"paradigm", "dragonfly"}
	if !reflect.DeepEqual(got.Investors, want) {
		t.Fatalf("investors = %v, want %v", got.Investors, want)
	}
}

func TestRulesEmptyText(t *testing.T) {
	t.Parallel()

	rules := NewRules(knownNames())

	got, err := rules.Attempt(context.Background(), "")
	if err != nil {
		t.Fatalf("Attempt returned error: %v", err)
	}
	if got.Project != "" {
		t.Fatalf("expected empty project, got %q", got.Project)
	}
	if len(got.Investors) != 0 {
		t.Fatalf("expected no investors, got %v", got.Investors)
	}
}
