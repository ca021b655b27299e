package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Store owns the SQLite database shared by the alpha pipeline and the task
// tracker. All statements go through a single connection to keep writers
// serialized at the storage layer.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the database at path and applies the
// additive schema migrations.
func Open(path string, log *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal_mode: %w", err)
	}

	store := &Store{db: db, logger: log}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// migrate creates missing tables and appends columns added after the first
// release. Migrations are additive only; an old three-column seen_projects
// store upgrades in place.
func (s *Store) migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS seen_projects (
			project_name TEXT PRIMARY KEY,
			last_score INT,
			timestamp DATETIME,
			action TEXT,
			investors TEXT,
			source TEXT,
			frequency TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_name TEXT NOT NULL,
			task_description TEXT NOT NULL,
			frequency_days INTEGER NOT NULL,
			last_completed TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS wallet_stats (
			wallet_address TEXT NOT NULL,
			network TEXT NOT NULL,
			balance REAL DEFAULT 0,
			points_accumulated REAL DEFAULT 0,
			PRIMARY KEY (wallet_address, network)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	existing, err := s.columns(ctx, "seen_projects")
	if err != nil {
		return err
	}
	for _, column := range []string{"action", "investors", "source", "frequency"} {
		if existing[column] {
			continue
		}
		alter := fmt.Sprintf("ALTER TABLE seen_projects ADD COLUMN %s TEXT", column)
		if _, err := s.db.ExecContext(ctx, alter); err != nil {
			return fmt.Errorf("add column %s: %w", column, err)
		}
		s.debug("schema upgraded", "table", "seen_projects", "column", column)
	}

	return nil
}

// columns returns the column names of table as reported by PRAGMA table_info.
func (s *Store) columns(ctx context.Context, table string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	found := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name       string
			typ        string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("scan table_info: %w", err)
		}
		found[strings.ToLower(name)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("table_info rows: %w", err)
	}

	return found, nil
}

func (s *Store) debug(msg string, args ...interface{}) {
	if s != nil && s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
