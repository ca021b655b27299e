package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"alphahunter/internal/domain"
	"alphahunter/internal/ports"
)

var _ ports.TaskStore = (*Store)(nil)

// AddTask inserts a recurring task and returns its id.
func (s *Store) AddTask(ctx context.Context, projectName, description string, frequencyDays int) (int64, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("store is not open")
	}

	query, args, err := sq.Insert("tasks").
		Columns("project_name", "task_description", "frequency_days", "last_completed").
		Values(projectName, description, frequencyDays, nil).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build task insert: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task id: %w", err)
	}

	return id, nil
}

// ListTasks returns all recurring tasks ordered by project name.
func (s *Store) ListTasks(ctx context.Context) ([]domain.RecurringTask, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store is not open")
	}

	query, args, err := sq.Select("id", "project_name", "task_description", "frequency_days", "last_completed").
		From("tasks").
		OrderBy("project_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build task query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.RecurringTask
	for rows.Next() {
		var (
			task          domain.RecurringTask
			lastCompleted sql.NullString
		)
		if err := rows.Scan(&task.ID, &task.ProjectName, &task.Description, &task.FrequencyDays, &lastCompleted); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		task.LastCompleted = parseCompletedAt(lastCompleted)
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task rows: %w", err)
	}

	return tasks, nil
}

// MarkTaskDone stamps the task's last completion with the current UTC time.
func (s *Store) MarkTaskDone(ctx context.Context, id int64) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store is not open")
	}

	query, args, err := sq.Update("tasks").
		Set("last_completed", time.Now().UTC().Format(time.RFC3339)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build task update: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("task rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task %d not found", id)
	}

	return nil
}

// SeedTasks inserts the given tasks unless an identical
// project/description/frequency triple already exists.
func (s *Store) SeedTasks(ctx context.Context, seeds []domain.RecurringTask) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store is not open")
	}

	for _, seed := range seeds {
		query, args, err := sq.Select("1").
			From("tasks").
			Where(sq.Eq{
				"project_name":     seed.ProjectName,
				"task_description": seed.Description,
				"frequency_days":   seed.FrequencyDays,
			}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build seed check: %w", err)
		}

		var one int
		err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check task seed: %w", err)
		}

		if _, err := s.AddTask(ctx, seed.ProjectName, seed.Description, seed.FrequencyDays); err != nil {
			return fmt.Errorf("seed task %s: %w", seed.ProjectName, err)
		}
	}

	return nil
}

// parseCompletedAt reads the stored completion stamp. Unparseable stamps are
// treated as never completed.
func parseCompletedAt(value sql.NullString) *time.Time {
	if !value.Valid || value.String == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value.String)
	if err != nil {
		return nil
	}
	return &parsed
}
