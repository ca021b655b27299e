package ports

import (
	"context"
	"time"

	"alphahunter/internal/domain"
)

// Source yields a finite batch of raw items from one upstream feed.
// Implementations may fail as a whole; the scan runner owns the retry.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.FeedItem, error)
}

// Extractor turns raw text into a structured extraction. The fallback chain
// ends in a rule-based strategy, so extraction as a whole never fails.
type Extractor interface {
	Extract(ctx context.Context, rawText string) domain.Extraction
}

// LLMClient generates free text (expected to contain JSON) from a system
// instruction and prompt against one concrete model.
type LLMClient interface {
	Generate(ctx context.Context, model, systemInstruction, prompt string) (string, error)
}

// SeenStore persists the latest observation per project name.
type SeenStore interface {
	Exists(ctx context.Context, projectName string) (bool, error)
	Upsert(ctx context.Context, candidate domain.Candidate) error
	List(ctx context.Context) ([]domain.SeenProject, error)
}

// TaskStore persists recurring tasks.
type TaskStore interface {
	AddTask(ctx context.Context, projectName, description string, frequencyDays int) (int64, error)
	ListTasks(ctx context.Context) ([]domain.RecurringTask, error)
	MarkTaskDone(ctx context.Context, id int64) error
}

// Notifier delivers one formatted message to the operator's channel.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Scheduler drives named jobs on fixed intervals plus one-shot deferred
// executions for retries.
type Scheduler interface {
	Every(name string, interval time.Duration, job func(context.Context))
	After(name string, delay time.Duration, job func(context.Context))
	Start(ctx context.Context) error
	Stop()
}
