package feed

import (
	"context"
	"fmt"
	"log/slog"

	"alphahunter/internal/domain"
	"alphahunter/internal/ports"
)

// Aggregate unions several sources under one name. Individual source
// failures are logged and skipped; the aggregate itself only fails when
// every constituent failed and nothing was collected.
type Aggregate struct {
	name    string
	sources []ports.Source
	logger  *slog.Logger
}

var _ ports.Source = (*Aggregate)(nil)

// NewAggregate combines sources under a display name.
func NewAggregate(name string, sources []ports.Source, log *slog.Logger) *Aggregate {
	return &Aggregate{
		name:    name,
		sources: sources,
		logger:  log,
	}
}

// Name identifies the aggregate in logs and alerts.
func (a *Aggregate) Name() string {
	return a.name
}

// Fetch collects items from every constituent source in order.
func (a *Aggregate) Fetch(ctx context.Context) ([]domain.FeedItem, error) {
	a.debug("aggregate fetch", "aggregate", a.name, "sources", len(a.sources))

	var collected []domain.FeedItem
	failed := 0
	for _, source := range a.sources {
		items, err := source.Fetch(ctx)
		if err != nil {
			failed++
			a.warn("source failed", "aggregate", a.name, "source", source.Name(), "error", err)
			continue
		}
		a.debug("source produced items", "source", source.Name(), "count", len(items))
		collected = append(collected, items...)
	}

	if len(collected) == 0 && failed > 0 && failed == len(a.sources) {
		return nil, fmt.Errorf("all %d sources failed for %s", failed, a.name)
	}

	a.debug("aggregate done", "aggregate", a.name, "total_items", len(collected))
	return collected, nil
}

func (a *Aggregate) debug(msg string, args ...interface{}) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}

func (a *Aggregate) warn(msg string, args ...interface{}) {
	if a.logger != nil {
		a.logger.Warn(msg, args...)
	}
}
