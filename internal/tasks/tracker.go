package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"alphahunter/internal/domain"
	"alphahunter/internal/ports"
)

// DefaultSeeds are the recurring chores written at boot unless an identical
// project/description/frequency triple already exists.
var DefaultSeeds = []domain.RecurringTask{
	{ProjectName: "MetaMask", Description: "Perform 1 Swap", FrequencyDays: 7},
	{ProjectName: "Polymarket", Description: "Place 1 Prediction", FrequencyDays: 1},
	{ProjectName: "Aztec", Description: "Privacy Transfer", FrequencyDays: 14},
}

// Tracker manages the recurring chores kept alongside alpha sightings.
type Tracker struct {
	store ports.TaskStore
	now   func() time.Time
}

// NewTracker constructs a tracker over the given store.
func NewTracker(store ports.TaskStore) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// All returns every task ordered by project name.
func (t *Tracker) All(ctx context.Context) ([]domain.RecurringTask, error) {
	return t.store.ListTasks(ctx)
}

// Pending returns the tasks currently due, preserving project-name order.
func (t *Tracker) Pending(ctx context.Context) ([]domain.RecurringTask, error) {
	all, err := t.store.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	now := t.now()
	pending := make([]domain.RecurringTask, 0, len(all))
	for _, task := range all {
		if task.PendingAt(now) {
			pending = append(pending, task)
		}
	}
	return pending, nil
}

// Add registers a new recurring task after validating its fields.
func (t *Tracker) Add(ctx context.Context, projectName, description string, frequencyDays int) (int64, error) {
	projectName = strings.TrimSpace(projectName)
	description = strings.TrimSpace(description)
	if projectName == "" {
		return 0, fmt.Errorf("project name required")
	}
	if description == "" {
		return 0, fmt.Errorf("task description required")
	}
	if frequencyDays < 1 {
		return 0, fmt.Errorf("frequency must be at least 1 day")
	}

	return t.store.AddTask(ctx, projectName, description, frequencyDays)
}

// MarkDone stamps the task as completed now.
func (t *Tracker) MarkDone(ctx context.Context, id int64) error {
	return t.store.MarkTaskDone(ctx, id)
}

// TodoMessage renders the operator digest of everything currently due.
func (t *Tracker) TodoMessage(ctx context.Context) (string, error) {
	pending, err := t.Pending(ctx)
	if err != nil {
		return "", err
	}

	if len(pending) == 0 {
		return "📝 TODO TODAY: No pending tasks.", nil
	}

	var b strings.Builder
	b.WriteString("📝 TODO TODAY:")
	for i, task := range pending {
		fmt.Fprintf(&b, " %d. %s (%s)", i+1, task.Description, task.ProjectName)
	}
	return b.String(), nil
}
