package extract

import (
	"context"
	"fmt"
	"log/slog"

	"alphahunter/internal/domain"
	"alphahunter/internal/ports"
)

// LLMStrategy drives one LLM client through the candidate model list. The
// first model that returns parseable JSON wins; a bad model name only costs
// one attempt.
type LLMStrategy struct {
	name   string
	client ports.LLMClient
	models []string
	logger *slog.Logger
}

var _ Strategy = (*LLMStrategy)(nil)

// NewLLMStrategy wraps an LLM client as a chain strategy.
func NewLLMStrategy(name string, client ports.LLMClient, models []string, log *slog.Logger) *LLMStrategy {
	return &LLMStrategy{
		name:   name,
		client: client,
		models: models,
		logger: log,
	}
}

// Name identifies the strategy in logs.
func (s *LLMStrategy) Name() string {
	return s.name
}

// Attempt asks each candidate model for structured JSON and returns the first
// parseable answer.
func (s *LLMStrategy) Attempt(ctx context.Context, rawText string) (domain.Extraction, error) {
	if s.client == nil {
		return domain.Extraction{}, fmt.Errorf("llm client is not configured")
	}
	if len(s.models) == 0 {
		return domain.Extraction{}, fmt.Errorf("no candidate models configured")
	}

	prompt := BuildPrompt(rawText)

	var lastErr error
	for _, model := range s.models {
		text, err := s.client.Generate(ctx, model, SystemInstruction, prompt)
		if err != nil {
			lastErr = err
			s.debug("model attempt failed", "model", model, "error", err)
			continue
		}

		extraction, err := ParseExtraction(text)
		if err != nil {
			lastErr = err
			s.debug("model output unparseable", "model", model, "error", err)
			continue
		}

		return extraction, nil
	}

	return domain.Extraction{}, fmt.Errorf("all model attempts failed: %w", lastErr)
}

func (s *LLMStrategy) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
