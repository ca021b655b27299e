package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"alphahunter/internal/domain"
	"alphahunter/internal/ports"
	"alphahunter/internal/scoring"
)

// Outcome is what the gate ultimately did with a candidate.
type Outcome string

const (
	// OutcomeSkipped means the candidate never reached delivery or storage.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeSuppressed means the alert was withheld but the sighting was
	// still recorded (subject to the persist-suppressed policy).
	OutcomeSuppressed Outcome = "suppressed"
	// OutcomeAlerted means the alert went out and the sighting was recorded.
	OutcomeAlerted Outcome = "alerted"
)

// GateDeps wires the notification gate's collaborators.
type GateDeps struct {
	Store    ports.SeenStore
	Notifier ports.Notifier
	// Fallback receives the formatted alert when the notifier fails.
	Fallback ports.Notifier
	// PersistSuppressed keeps recording sightings whose alert was withheld.
	PersistSuppressed bool
	Logger            *slog.Logger
}

// Gate decides, in order, whether a candidate is dropped outright (no
// project name), suppressed (already seen, or below the alert threshold
// without an immediate flag), or delivered. Force bypasses both the dedup
// and the threshold checks. Suppressed sightings still update the store
// unless the persist-suppressed policy is off; a delivery failure is
// logged and routed to the fallback stream, never aborting persistence.
type Gate struct {
	store             ports.SeenStore
	notifier          ports.Notifier
	fallback          ports.Notifier
	persistSuppressed bool
	logger            *slog.Logger
}

// NewGate constructs the notification gate.
func NewGate(deps GateDeps) *Gate {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		store:             deps.Store,
		notifier:          deps.Notifier,
		fallback:          deps.Fallback,
		persistSuppressed: deps.PersistSuppressed,
		logger:            logger,
	}
}

// Dispatch runs one candidate through the decision table.
func (g *Gate) Dispatch(ctx context.Context, candidate domain.Candidate) (Outcome, error) {
	name := strings.TrimSpace(candidate.Project)
	if name == "" {
		g.logger.Debug("candidate without project name dropped")
		return OutcomeSkipped, nil
	}

	if !candidate.Force {
		seen, err := g.store.Exists(ctx, name)
		if err != nil {
			return OutcomeSkipped, fmt.Errorf("check seen %s: %w", name, err)
		}
		if seen {
			g.logger.Debug("alert suppressed, project already seen", "project", name)
			return g.suppress(ctx, candidate)
		}
		if candidate.Score < scoring.AlertThreshold && !candidate.Immediate {
			g.logger.Debug("alert suppressed, score below threshold",
				"project", name, "score", candidate.Score)
			return g.suppress(ctx, candidate)
		}
	}

	g.deliver(ctx, candidate)

	if err := g.store.Upsert(ctx, candidate); err != nil {
		return OutcomeAlerted, fmt.Errorf("persist %s: %w", name, err)
	}
	return OutcomeAlerted, nil
}

func (g *Gate) suppress(ctx context.Context, candidate domain.Candidate) (Outcome, error) {
	if !g.persistSuppressed {
		return OutcomeSuppressed, nil
	}
	if err := g.store.Upsert(ctx, candidate); err != nil {
		return OutcomeSuppressed, fmt.Errorf("persist %s: %w", candidate.Project, err)
	}
	return OutcomeSuppressed, nil
}

func (g *Gate) deliver(ctx context.Context, candidate domain.Candidate) {
	message := FormatAlert(candidate)
	g.logger.Info("alert dispatched",
		"project", candidate.Project,
		"score", candidate.Score,
		"kind", candidate.SourceKind,
		"published", candidate.PublishedAt)

	if g.notifier == nil {
		g.sendFallback(ctx, message)
		return
	}

	if err := g.notifier.Send(ctx, message); err != nil {
		g.logger.Warn("alert delivery failed, message routed to preview",
			"project", candidate.Project, "error", err)
		g.sendFallback(ctx, message)
	}
}

func (g *Gate) sendFallback(ctx context.Context, message string) {
	if g.fallback == nil {
		return
	}
	if err := g.fallback.Send(ctx, message); err != nil {
		g.logger.Warn("preview fallback failed", "error", err)
	}
}
