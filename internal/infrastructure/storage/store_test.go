package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestOpenCreatesSchema(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	for _, table := range []string{"seen_projects", "tasks", "wallet_stats"} {
		cols, err := store.columns(context.Background(), table)
		if err != nil {
			t.Fatalf("columns(%s): %v", table, err)
		}
		if len(cols) == 0 {
			t.Fatalf("table %s was not created", table)
		}
	}
}

func TestMigrateUpgradesLegacySchema(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "legacy.db")

	legacy, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open legacy db: %v", err)
	}
	_, err = legacy.Exec(`CREATE TABLE seen_projects (
		project_name TEXT PRIMARY KEY,
		last_score INT,
		timestamp DATETIME
	)`)
	if err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	if _, err := legacy.Exec(
		`INSERT INTO seen_projects (project_name, last_score, timestamp) VALUES (?, ?, ?)`,
		"OldProject", 12, "2024-01-01T00:00:00Z",
	); err != nil {
		t.Fatalf("insert legacy row: %v", err)
	}
	if err := legacy.Close(); err != nil {
		t.Fatalf("close legacy db: %v", err)
	}

	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open store over legacy db: %v", err)
	}
	defer store.Close()

	cols, err := store.columns(context.Background(), "seen_projects")
	if err != nil {
		t.Fatalf("columns: %v", err)
	}
	for _, want := range []string{"action", "investors", "source", "frequency"} {
		if !cols[want] {
			t.Fatalf("column %s missing after migration", want)
		}
	}

	projects, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list after migration: %v", err)
	}
	if len(projects) != 1 || projects[0].ProjectName != "OldProject" {
		t.Fatalf("legacy row lost: %+v", projects)
	}
	if projects[0].LastScore != 12 {
		t.Fatalf("legacy score lost: %d", projects[0].LastScore)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	if _, err := Open("", nil); err == nil {
		t.Fatal("expected error for empty path")
	}
}
