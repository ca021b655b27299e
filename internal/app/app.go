package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"alphahunter/internal/config"
	"alphahunter/internal/dashboard"
	"alphahunter/internal/domain"
	"alphahunter/internal/extract"
	"alphahunter/internal/infrastructure/feed"
	"alphahunter/internal/infrastructure/llm"
	"alphahunter/internal/infrastructure/scheduler"
	"alphahunter/internal/infrastructure/storage"
	"alphahunter/internal/infrastructure/telegram"
	"alphahunter/internal/logging"
	"alphahunter/internal/ports"
	"alphahunter/internal/scoring"
	"alphahunter/internal/tasks"
	"alphahunter/internal/usecase"
)

// Application wires configuration to stores, feeds, and use cases, and owns
// the lifecycle of the long-running entry points.
type Application struct {
	cfg    config.Config
	logger *slog.Logger

	store    *storage.Store
	scorer   *scoring.Scorer
	sched    *scheduler.Interval
	runner   *usecase.Runner
	gate     *usecase.Gate
	tracker  *tasks.Tracker
	notifier ports.Notifier
}

// New builds a fully wired application: the store is opened and seeded, the
// extraction chain assembled (Gemini strategies only when an API key is
// configured, rules always last), and delivery routed to Telegram or the
// stdout preview depending on configuration.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	store, err := storage.Open(cfg.Storage.Path, baseLogger.With("component", "storage"))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := store.SeedBaseline(ctx, baselineSeeds(cfg.Pipeline.SeedProjects)); err != nil {
		store.Close()
		return nil, fmt.Errorf("seed baseline projects: %w", err)
	}
	if err := store.SeedTasks(ctx, tasks.DefaultSeeds); err != nil {
		store.Close()
		return nil, fmt.Errorf("seed recurring tasks: %w", err)
	}

	scorer := scoring.NewScorer(scoring.DefaultTiers)

	var strategies []extract.Strategy
	if cfg.Gemini.APIKey != "" {
		if sdk, err := llm.NewGenAIClient(ctx, cfg.Gemini.APIKey); err != nil {
			baseLogger.Warn("gemini sdk client unavailable, continuing with rest fallback", "error", err)
		} else {
			strategies = append(strategies, extract.NewLLMStrategy("gemini-sdk", sdk,
				cfg.Gemini.ModelsToTry(), baseLogger.With("component", "extract.gemini-sdk")))
		}
		strategies = append(strategies, extract.NewLLMStrategy("gemini-rest", llm.NewGeminiRESTClient(cfg.Gemini),
			cfg.Gemini.ModelsToTry(), baseLogger.With("component", "extract.gemini-rest")))
	}
	strategies = append(strategies, extract.NewRules(scorer.KnownInvestors()))
	chain := extract.NewChain(baseLogger.With("component", "extract"), strategies...)

	preview := telegram.NewPreview(nil)
	var notifier ports.Notifier = preview
	if cfg.Telegram.Configured() && !cfg.Telegram.PreviewOnly {
		notifier = telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	}

	gate := usecase.NewGate(usecase.GateDeps{
		Store:             store,
		Notifier:          notifier,
		Fallback:          preview,
		PersistSuppressed: cfg.Pipeline.PersistSuppressed,
		Logger:            baseLogger.With("component", "gate"),
	})

	sched := scheduler.NewInterval(baseLogger.With("component", "scheduler"))

	runner := usecase.NewRunner(usecase.RunnerDeps{
		Extractor:  chain,
		Scorer:     scorer,
		Gate:       gate,
		Scheduler:  sched,
		RetryDelay: cfg.Scheduler.RetryDelay.Std(),
		Logger:     baseLogger.With("component", "runner"),
	})

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		store:    store,
		scorer:   scorer,
		sched:    sched,
		runner:   runner,
		gate:     gate,
		tracker:  tasks.NewTracker(store),
		notifier: notifier,
	}, nil
}

// Run registers the four scheduled scans and blocks until the context is
// done. With reminders enabled the daily todo digest loop runs alongside.
func (a *Application) Run(ctx context.Context, withReminders bool) error {
	a.runner.Register(a.catalog())
	if err := a.sched.Start(ctx); err != nil {
		return err
	}
	defer a.sched.Stop()

	if withReminders {
		go func() {
			if err := a.newReminder().Run(ctx); err != nil {
				a.logger.Warn("reminder loop stopped", "error", err)
			}
		}()
	}

	<-ctx.Done()
	return nil
}

// Scour runs only the aggressive loop: the daily feed set on a tight tick,
// with everything below high priority discarded before the gate.
func (a *Application) Scour(ctx context.Context) error {
	a.runner.RegisterScour(a.cfg.Scheduler.Scour.Std(), a.dailySource())
	if err := a.sched.Start(ctx); err != nil {
		return err
	}
	defer a.sched.Stop()

	<-ctx.Done()
	return nil
}

// Simulate replays the built-in mock batch through scoring and the gate
// without touching the network. The second entry exercises dedup.
func (a *Application) Simulate(ctx context.Context) error {
	log := a.logger.With("component", "simulate")

	for i, extraction := range mockBatch() {
		score, priority := a.scorer.Score(extraction.Investors)
		candidate := domain.NewCandidate(extraction, score, priority)
		candidate.Source = "https://nitter.net/Monad_xyz"

		outcome, err := a.gate.Dispatch(ctx, candidate)
		if err != nil {
			return fmt.Errorf("mock entry %d: %w", i+1, err)
		}
		log.Info("mock entry processed",
			"entry", i+1,
			"project", candidate.Project,
			"score", score,
			"priority", priority.Label(),
			"outcome", string(outcome))
	}
	return nil
}

// NotifyTest pushes one synthetic alert through the live delivery path. The
// force flag bypasses dedup and threshold so the message always goes out.
func (a *Application) NotifyTest(ctx context.Context) error {
	extraction := domain.NewExtraction("Nexus Alpha Test", "Connectivity check", []string{"Paradigm"})
	score, priority := a.scorer.Score(extraction.Investors)

	candidate := domain.NewCandidate(extraction, score, priority)
	candidate.Source = "local-test"
	candidate.Force = true

	if _, err := a.gate.Dispatch(ctx, candidate); err != nil {
		return fmt.Errorf("test alert: %w", err)
	}
	return nil
}

// Remind runs the todo digest either once or as the scheduled daily loop.
func (a *Application) Remind(ctx context.Context, once bool) error {
	reminder := a.newReminder()
	if once || a.cfg.Tasks.RunOnce {
		return reminder.RunOnce(ctx)
	}
	return reminder.Run(ctx)
}

// Dashboard serves the read-only web view until the context is done.
func (a *Application) Dashboard(ctx context.Context) error {
	server := dashboard.NewServer(a.store, dashboard.Config{
		Host:   a.cfg.Dashboard.Host,
		Port:   a.cfg.Dashboard.Port,
		DBPath: a.cfg.Storage.Path,
	}, a.logger.With("component", "dashboard"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Tasks exposes the recurring-task tracker for the CLI subcommands.
func (a *Application) Tasks() *tasks.Tracker {
	return a.tracker
}

// Close releases the store.
func (a *Application) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

func (a *Application) newReminder() *tasks.Reminder {
	return tasks.NewReminder(a.tracker, a.notifier, a.cfg.Tasks.ReminderHour,
		a.cfg.Scheduler.Location(), a.logger.With("component", "reminder"))
}

// dailySource aggregates the configured Nitter mirrors and site feeds.
func (a *Application) dailySource() ports.Source {
	client := feed.NewRSSClient(a.cfg.Sources.ItemLimit)

	var sources []ports.Source
	for _, account := range a.cfg.Sources.NitterAccounts {
		sources = append(sources, feed.NewNitterSource(account, a.cfg.Sources.NitterInstances, client))
	}
	for _, feedURL := range a.cfg.Sources.SiteFeeds {
		sources = append(sources, feed.NewSiteSource(feedURL, "site", client))
	}
	return feed.NewAggregate("x-and-news", sources, a.logger.With("component", "feed.daily"))
}

// weeklySource is nil when no substack feeds are configured, which drops the
// weekly slot from the catalog.
func (a *Application) weeklySource() ports.Source {
	if len(a.cfg.Sources.SubstackFeeds) == 0 {
		return nil
	}

	client := feed.NewRSSClient(a.cfg.Sources.ItemLimit)

	var sources []ports.Source
	for _, feedURL := range a.cfg.Sources.SubstackFeeds {
		sources = append(sources, feed.NewSiteSource(feedURL, "substack", client))
	}
	return feed.NewAggregate("substack", sources, a.logger.With("component", "feed.weekly"))
}

func (a *Application) catalog() []usecase.ScanJob {
	return usecase.Catalog(usecase.CatalogSources{
		Daily:   a.dailySource(),
		MidTerm: feed.NewDefiLlamaSource(a.cfg.Sources.DefiLlamaURL, a.cfg.Scheduler.MidTerm.Std(), a.cfg.Sources.ItemLimit),
		Weekly:  a.weeklySource(),
		Monthly: feed.NewCryptoRankSource(a.cfg.Sources.CryptoRankURL, a.cfg.Sources.ItemLimit),
	}, usecase.CatalogIntervals{
		Daily:   a.cfg.Scheduler.Daily.Std(),
		MidTerm: a.cfg.Scheduler.MidTerm.Std(),
		Weekly:  a.cfg.Scheduler.Weekly.Std(),
		Monthly: a.cfg.Scheduler.Monthly.Std(),
	})
}

func baselineSeeds(seeds []config.SeedProjectConfig) []domain.SeenProject {
	out := make([]domain.SeenProject, 0, len(seeds))
	for _, seed := range seeds {
		out = append(out, domain.SeenProject{ProjectName: seed.Name, LastScore: seed.Score})
	}
	return out
}

// mockBatch is the canned input for Simulate. The duplicate project makes the
// second entry land on the dedup path.
func mockBatch() []domain.Extraction {
	return []domain.Extraction{
		domain.NewExtraction("Monad", "Join Testnet", []string{"Paradigm", "Coinbase Ventures"}),
		domain.NewExtraction("Monad", "Join Testnet", []string{"Paradigm"}),
	}
}
