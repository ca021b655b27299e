package extract

import (
	"context"
	"log/slog"

	"alphahunter/internal/domain"
	"alphahunter/internal/ports"
)

// Strategy is one extraction approach. A failed attempt returns an error and
// the chain moves on to the next strategy.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, rawText string) (domain.Extraction, error)
}

// Chain implements ports.Extractor as an ordered list of strategies. The
// terminal rule-based strategy never fails, so Extract is total.
type Chain struct {
	strategies []Strategy
	logger     *slog.Logger
}

var _ ports.Extractor = (*Chain)(nil)

// NewChain builds the fallback chain in attempt order.
func NewChain(log *slog.Logger, strategies ...Strategy) *Chain {
	return &Chain{
		strategies: strategies,
		logger:     log,
	}
}

// Extract tries each strategy in order and returns the first success. An
// empty chain yields an empty extraction rather than an error.
func (c *Chain) Extract(ctx context.Context, rawText string) domain.Extraction {
	for _, strategy := range c.strategies {
		extraction, err := strategy.Attempt(ctx, rawText)
		if err != nil {
			c.debug("extraction strategy failed", "strategy", strategy.Name(), "error", err)
			continue
		}
		return extraction
	}

	c.debug("all extraction strategies exhausted")
	return domain.NewExtraction("", "", nil)
}

func (c *Chain) debug(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
