package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alphahunter/internal/domain"
	"alphahunter/internal/extract"
	"alphahunter/internal/ports"
	"alphahunter/internal/scoring"
)

type stubScanSource struct {
	name       string
	items      []domain.FeedItem
	err        error
	fetchCalls int
}

func (s *stubScanSource) Name() string { return s.name }

func (s *stubScanSource) Fetch(context.Context) ([]domain.FeedItem, error) {
	s.fetchCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

type deferredJob struct {
	name  string
	delay time.Duration
	job   func(context.Context)
}

type stubScheduler struct {
	every []string
	after []deferredJob
}

func (s *stubScheduler) Every(name string, _ time.Duration, _ func(context.Context)) {
	s.every = append(s.every, name)
}

func (s *stubScheduler) After(name string, delay time.Duration, job func(context.Context)) {
	s.after = append(s.after, deferredJob{name: name, delay: delay, job: job})
}

func (s *stubScheduler) Start(context.Context) error { return nil }

func (s *stubScheduler) Stop() {}

type stubExtractor struct {
	extraction domain.Extraction
}

func (s stubExtractor) Extract(context.Context, string) domain.Extraction {
	return s.extraction
}

// newTestRunner wires a runner with the real rule-based extraction chain and
// the real scorer so scans behave end to end.
func newTestRunner(store *memStore, notifier *stubNotifier, sched ports.Scheduler) *Runner {
	scorer := scoring.NewScorer(scoring.DefaultTiers)
	chain := extract.NewChain(discardLogger(), extract.NewRules(scorer.KnownInvestors()))
	gate := NewGate(GateDeps{
		Store:             store,
		Notifier:          notifier,
		PersistSuppressed: true,
		Logger:            discardLogger(),
	})
	return NewRunner(RunnerDeps{
		Extractor:  chain,
		Scorer:     scorer,
		Gate:       gate,
		Scheduler:  sched,
		RetryDelay: time.Minute,
		Logger:     discardLogger(),
	})
}

func TestRunner_Scan_AlertsOnceThenDeduplicates(t *testing.T) {
	store := newMemStore()
	notifier := &stubNotifier{}
	source := &stubScanSource{
		name: "test-feed",
		items: []domain.FeedItem{
			{Text: "Project: Nexus raised funding led by a16z Crypto and OKX Ventures", Link: "https://example.org/post/1"},
		},
	}
	runner := newTestRunner(store, notifier, &stubScheduler{})
	job := ScanJob{Name: JobDaily, Cadence: CadenceDaily, Source: source}

	runner.Scan(context.Background(), job)

	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "💰 **VC Score:** 15/10")
	assert.Contains(t, notifier.sent[0], "👥 **Investors:** a16z crypto, okx ventures")
	assert.Contains(t, notifier.sent[0], "📅 **Cadence:** daily")
	assert.Equal(t, 1, store.upserts)

	runner.Scan(context.Background(), job)

	assert.Len(t, notifier.sent, 1, "a repeated sighting must not alert again")
	assert.Equal(t, 2, store.upserts, "the repeated sighting still refreshes the store")
	assert.Len(t, store.rows, 1)
}

func TestRunner_Scan_SkipsBlankItems(t *testing.T) {
	store := newMemStore()
	notifier := &stubNotifier{}
	source := &stubScanSource{
		name: "test-feed",
		items: []domain.FeedItem{
			{Text: ""},
			{Text: "   "},
			{Text: "Project: Scroll backed by Polychain Capital"},
		},
	}
	runner := newTestRunner(store, notifier, &stubScheduler{})

	runner.Scan(context.Background(), ScanJob{Name: JobDaily, Cadence: CadenceDaily, Source: source})

	assert.Len(t, notifier.sent, 1)
	assert.Equal(t, 1, store.upserts)
}

func TestRunner_Scan_FetchFailureSchedulesOneRetry(t *testing.T) {
	store := newMemStore()
	notifier := &stubNotifier{}
	sched := &stubScheduler{}
	source := &stubScanSource{name: "test-feed", err: errors.New("all nitter instances failed")}
	runner := newTestRunner(store, notifier, sched)

	runner.Scan(context.Background(), ScanJob{Name: JobDaily, Cadence: CadenceDaily, Source: source})

	require.Len(t, sched.after, 1)
	assert.Equal(t, "daily_scan_retry", sched.after[0].name)
	assert.Equal(t, time.Minute, sched.after[0].delay)
	assert.Empty(t, notifier.sent)

	source.err = nil
	source.items = []domain.FeedItem{
		{Text: "Project: Nexus backed by Paradigm"},
	}
	sched.after[0].job(context.Background())

	assert.Equal(t, 2, source.fetchCalls)
	assert.Len(t, notifier.sent, 1)
}

func TestRunner_Scan_RetryDoesNotRearmItself(t *testing.T) {
	store := newMemStore()
	notifier := &stubNotifier{}
	sched := &stubScheduler{}
	source := &stubScanSource{name: "test-feed", err: errors.New("still down")}
	runner := newTestRunner(store, notifier, sched)

	runner.Scan(context.Background(), ScanJob{Name: JobDaily, Cadence: CadenceDaily, Source: source})
	require.Len(t, sched.after, 1)

	sched.after[0].job(context.Background())

	assert.Len(t, sched.after, 1, "a failed retry must not queue another retry")
	assert.Equal(t, 2, source.fetchCalls)
}

func TestRunner_Scour_OnlyHighOrImmediateReachTheGate(t *testing.T) {
	store := newMemStore()
	notifier := &stubNotifier{}
	source := &stubScanSource{
		name: "scour-feed",
		items: []domain.FeedItem{
			{Text: "Project: Omni backed by Paradigm and a16z Crypto"},
			{Text: "Project: MidCo backed by Binance Labs"},
			{Text: "Project: Zora token launch", ImmediateHint: true},
		},
	}
	runner := newTestRunner(store, notifier, &stubScheduler{})

	runner.Scour(context.Background(), ScanJob{Name: JobScour, Cadence: CadenceScour, Source: source})

	require.Len(t, notifier.sent, 2)
	assert.Contains(t, notifier.sent[0], "NEW ALPHA DETECTED")
	assert.Contains(t, notifier.sent[0], "Omni")
	assert.Contains(t, notifier.sent[1], "IMMEDIATE TOKEN OPPORTUNITY")
	assert.Equal(t, 2, store.upserts, "filtered candidates must not touch the store")
}

func TestRunner_Scour_FetchFailureDoesNotRetry(t *testing.T) {
	store := newMemStore()
	sched := &stubScheduler{}
	source := &stubScanSource{name: "scour-feed", err: errors.New("timeout")}
	runner := newTestRunner(store, &stubNotifier{}, sched)

	runner.Scour(context.Background(), ScanJob{Name: JobScour, Cadence: CadenceScour, Source: source})

	assert.Empty(t, sched.after)
}

func TestRunner_Drain_ReturnsAlertCount(t *testing.T) {
	store := newMemStore()
	notifier := &stubNotifier{}
	runner := newTestRunner(store, notifier, nil)

	alerts := runner.Drain(context.Background(), CadenceDaily, []domain.FeedItem{
		{Text: "Project: Nexus backed by Paradigm"},
		{Text: "Project: SmallCap with no known backers"},
	})

	assert.Equal(t, 1, alerts)
	assert.Len(t, notifier.sent, 1)
	assert.Equal(t, 2, store.upserts, "the suppressed sighting is still recorded")
}

func TestRunner_ActionKeywordsMarkImmediate(t *testing.T) {
	store := newMemStore()
	notifier := &stubNotifier{}
	scorer := scoring.NewScorer(scoring.DefaultTiers)
	gate := NewGate(GateDeps{
		Store:             store,
		Notifier:          notifier,
		PersistSuppressed: true,
		Logger:            discardLogger(),
	})
	runner := NewRunner(RunnerDeps{
		Extractor: stubExtractor{extraction: domain.NewExtraction(
			"Zora", "Claim now on the official site", nil)},
		Scorer: scorer,
		Gate:   gate,
		Logger: discardLogger(),
	})

	alerts := runner.Drain(context.Background(), CadenceDaily, []domain.FeedItem{
		{Text: "anything"},
	})

	assert.Equal(t, 1, alerts)
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "IMMEDIATE TOKEN OPPORTUNITY")
}

func TestRunner_ItemFailureDoesNotAbortBatch(t *testing.T) {
	store := newMemStore()
	store.existsErr = errors.New("database is locked")
	notifier := &stubNotifier{}
	source := &stubScanSource{
		name: "test-feed",
		items: []domain.FeedItem{
			{Text: "Project: Nexus backed by Paradigm"},
			{Text: "Project: Scroll backed by Polychain Capital"},
		},
	}
	runner := newTestRunner(store, notifier, &stubScheduler{})

	runner.Scan(context.Background(), ScanJob{Name: JobDaily, Cadence: CadenceDaily, Source: source})

	assert.Equal(t, 2, store.existsCalls, "the second item runs even though the first failed")
	assert.Empty(t, notifier.sent)
}

func TestCatalog_SkipsNilSources(t *testing.T) {
	daily := &stubScanSource{name: "daily"}
	monthly := &stubScanSource{name: "monthly"}

	jobs := Catalog(
		CatalogSources{Daily: daily, Monthly: monthly},
		CatalogIntervals{Daily: 24 * time.Hour, Monthly: 30 * 24 * time.Hour},
	)

	require.Len(t, jobs, 2)
	assert.Equal(t, JobDaily, jobs[0].Name)
	assert.Equal(t, CadenceDaily, jobs[0].Cadence)
	assert.Equal(t, 24*time.Hour, jobs[0].Interval)
	assert.Equal(t, JobMonthly, jobs[1].Name)
	assert.Equal(t, CadenceMonthly, jobs[1].Cadence)
}

func TestRunner_Register_PlacesJobsOnScheduler(t *testing.T) {
	sched := &stubScheduler{}
	runner := newTestRunner(newMemStore(), &stubNotifier{}, sched)

	runner.Register([]ScanJob{
		{Name: JobDaily, Cadence: CadenceDaily, Interval: 24 * time.Hour, Source: &stubScanSource{}},
		{Name: JobWeekly, Cadence: CadenceWeekly, Interval: 7 * 24 * time.Hour, Source: &stubScanSource{}},
	})
	runner.RegisterScour(15*time.Minute, &stubScanSource{})

	assert.Equal(t, []string{JobDaily, JobWeekly, JobScour}, sched.every)
}
