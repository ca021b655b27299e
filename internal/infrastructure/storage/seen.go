package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"alphahunter/internal/domain"
	"alphahunter/internal/ports"
)

var _ ports.SeenStore = (*Store)(nil)

// Exists reports whether a project row is already present.
func (s *Store) Exists(ctx context.Context, projectName string) (bool, error) {
	if s == nil || s.db == nil {
		return false, fmt.Errorf("store is not open")
	}

	query, args, err := sq.Select("1").
		From("seen_projects").
		Where(sq.Eq{"project_name": projectName}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query project: %w", err)
	}

	return true, nil
}

// Upsert writes the candidate's observation keyed by project name,
// overwriting any prior row. A blank project name is a silent no-op.
func (s *Store) Upsert(ctx context.Context, candidate domain.Candidate) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store is not open")
	}

	name := strings.TrimSpace(candidate.Project)
	if name == "" {
		return nil
	}

	investors, err := encodeInvestors(candidate.Investors)
	if err != nil {
		return fmt.Errorf("encode investors: %w", err)
	}

	query, args, err := sq.Insert("seen_projects").
		Options("OR REPLACE").
		Columns("project_name", "last_score", "timestamp", "action", "investors", "source", "frequency").
		Values(
			name,
			candidate.Score,
			time.Now().UTC().Format(time.RFC3339),
			nullable(candidate.Action),
			investors,
			nullable(candidate.Source),
			nullable(candidate.Frequency),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}

	return nil
}

// List returns every seen project, most recently observed first.
func (s *Store) List(ctx context.Context) ([]domain.SeenProject, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store is not open")
	}

	query, args, err := sq.Select("project_name", "last_score", "timestamp", "action", "investors", "source", "frequency").
		From("seen_projects").
		OrderBy("timestamp DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.SeenProject
	for rows.Next() {
		var (
			p         domain.SeenProject
			score     sql.NullInt64
			timestamp sql.NullString
			action    sql.NullString
			investors sql.NullString
			source    sql.NullString
			frequency sql.NullString
		)
		if err := rows.Scan(&p.ProjectName, &score, &timestamp, &action, &investors, &source, &frequency); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.LastScore = int(score.Int64)
		p.Timestamp = timestamp.String
		p.Action = action.String
		p.Investors = investors.String
		p.Source = source.String
		p.Frequency = frequency.String
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("project rows: %w", err)
	}

	return projects, nil
}

// SeedBaseline inserts well-known projects so the first scans do not alert on
// them. Existing rows are left untouched.
func (s *Store) SeedBaseline(ctx context.Context, seeds []domain.SeenProject) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store is not open")
	}

	for _, seed := range seeds {
		name := strings.TrimSpace(seed.ProjectName)
		if name == "" {
			continue
		}

		query, args, err := sq.Insert("seen_projects").
			Options("OR IGNORE").
			Columns("project_name", "last_score", "timestamp", "action", "investors", "source").
			Values(
				name,
				seed.LastScore,
				time.Now().UTC().Format(time.RFC3339),
				nullable(seed.Action),
				"[]",
				"baseline",
			).
			ToSql()
		if err != nil {
			return fmt.Errorf("build seed insert: %w", err)
		}

		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed project %s: %w", name, err)
		}
	}

	return nil
}

func encodeInvestors(investors []string) (string, error) {
	if len(investors) == 0 {
		return "[]", nil
	}
	encoded, err := json.Marshal(investors)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func nullable(value string) any {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return trimmed
}
