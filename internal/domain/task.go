package domain

import "time"

// RecurringTask is a manually defined chore that comes due every
// FrequencyDays. A nil LastCompleted means the task was never completed.
type RecurringTask struct {
	ID            int64
	ProjectName   string
	Description   string
	FrequencyDays int
	LastCompleted *time.Time
}

// PendingAt reports whether the task is due at the given instant.
// Never-completed tasks are always pending; otherwise strictly more than
// FrequencyDays must have elapsed, so a task completed exactly on the
// boundary is not pending.
func (t RecurringTask) PendingAt(now time.Time) bool {
	if t.LastCompleted == nil {
		return true
	}
	return now.Sub(*t.LastCompleted) > time.Duration(t.FrequencyDays)*24*time.Hour
}
