package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"alphahunter/internal/domain"
	"alphahunter/internal/ports"
	"alphahunter/internal/scoring"
)

const defaultRetryDelay = time.Hour

// RunnerDeps wires the scan runner's collaborators.
type RunnerDeps struct {
	Extractor ports.Extractor
	Scorer    *scoring.Scorer
	Gate      *Gate
	Scheduler ports.Scheduler
	// RetryDelay is how long a failed scheduled scan waits before its single
	// deferred retry. Zero means one hour.
	RetryDelay time.Duration
	Logger     *slog.Logger
}

// Runner drives one scan cycle: fetch a source, then per item in feed order
// run extract, score, and the notification gate. A bad item is logged under
// the cycle's run id and skipped; it never aborts the rest of the batch.
type Runner struct {
	extractor  ports.Extractor
	scorer     *scoring.Scorer
	gate       *Gate
	scheduler  ports.Scheduler
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewRunner constructs the scan runner.
func NewRunner(deps RunnerDeps) *Runner {
	retry := deps.RetryDelay
	if retry <= 0 {
		retry = defaultRetryDelay
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		extractor:  deps.Extractor,
		scorer:     deps.Scorer,
		gate:       deps.Gate,
		scheduler:  deps.Scheduler,
		retryDelay: retry,
		logger:     logger,
	}
}

// Scan runs one full cycle for a scheduled job. When the fetch itself fails
// the same scan is re-enqueued once through the scheduler's one-shot slot;
// the deferred attempt does not re-arm again.
func (r *Runner) Scan(ctx context.Context, job ScanJob) {
	r.run(ctx, job, nil, true)
}

// Scour runs the aggressive variant of a cycle: only high-priority or
// immediate candidates reach the gate, everything else is discarded before
// dedup or persistence. Fetch failures just wait for the next tick.
func (r *Runner) Scour(ctx context.Context, job ScanJob) {
	r.run(ctx, job, func(c domain.Candidate) bool {
		return c.Priority == domain.PriorityHigh || c.Immediate
	}, false)
}

// Drain pushes an already-fetched batch through the same per-item pipeline
// and returns how many alerts went out.
func (r *Runner) Drain(ctx context.Context, cadence string, items []domain.FeedItem) int {
	log := r.logger.With("run_id", uuid.NewString())
	return r.processBatch(ctx, log, cadence, items, nil)
}

func (r *Runner) run(ctx context.Context, job ScanJob, keep func(domain.Candidate) bool, retryOnce bool) {
	if job.Source == nil {
		return
	}

	log := r.logger.With("scan", job.Name, "run_id", uuid.NewString())

	items, err := job.Source.Fetch(ctx)
	if err != nil {
		log.Warn("fetch failed", "source", job.Source.Name(), "error", err)
		if retryOnce && r.scheduler != nil {
			log.Info("scan retry scheduled", "delay", r.retryDelay)
			retryJob := job
			r.scheduler.After(job.Name+"_retry", r.retryDelay, func(ctx context.Context) {
				r.run(ctx, retryJob, keep, false)
			})
		}
		return
	}

	log.Info("scan started", "source", job.Source.Name(), "items", len(items))
	alerts := r.processBatch(ctx, log, job.Cadence, items, keep)
	log.Info("scan finished", "alerts", alerts)
}

func (r *Runner) processBatch(ctx context.Context, log *slog.Logger, cadence string, items []domain.FeedItem, keep func(domain.Candidate) bool) int {
	alerts := 0
	for _, item := range items {
		outcome, err := r.processItem(ctx, cadence, item, keep)
		if err != nil {
			log.Warn("item failed", "error", err)
			continue
		}
		if outcome == OutcomeAlerted {
			alerts++
		}
	}
	return alerts
}

// processItem runs extract, score, and gate for a single feed item. Empty
// text is skipped outright; the immediate flag combines the feed-level hint
// with a keyword scan of the extracted action.
func (r *Runner) processItem(ctx context.Context, cadence string, item domain.FeedItem, keep func(domain.Candidate) bool) (Outcome, error) {
	text := strings.TrimSpace(item.Text)
	if text == "" {
		return OutcomeSkipped, nil
	}

	extraction := r.extractor.Extract(ctx, text)
	score, priority := r.scorer.Score(extraction.Investors)

	candidate := domain.NewCandidate(extraction, score, priority)
	candidate.Source = item.Link
	candidate.PublishedAt = item.Published
	candidate.SourceKind = item.SourceKind
	candidate.Frequency = cadence
	candidate.Immediate = item.ImmediateHint || domain.ImmediateSignal(extraction.Action)

	if keep != nil && !keep(candidate) {
		return OutcomeSkipped, nil
	}

	outcome, err := r.gate.Dispatch(ctx, candidate)
	if err != nil {
		return outcome, fmt.Errorf("dispatch %s: %w", candidate.Project, err)
	}
	return outcome, nil
}
