package storage

import (
	"context"
	"testing"
	"time"

	"alphahunter/internal/domain"
)

func TestAddListMarkDone(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.AddTask(ctx, "MetaMask", "Perform 1 Swap", 7)
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero task id")
	}

	tasks, err := store.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}

	task := tasks[0]
	if task.ID != id || task.ProjectName != "MetaMask" || task.Description != "Perform 1 Swap" || task.FrequencyDays != 7 {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.LastCompleted != nil {
		t.Fatalf("new task should have no completion, got %v", task.LastCompleted)
	}
	if !task.PendingAt(time.Now()) {
		t.Fatal("never-completed task must be pending")
	}

	if err := store.MarkTaskDone(ctx, id); err != nil {
		t.Fatalf("mark done: %v", err)
	}

	tasks, err = store.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list after done: %v", err)
	}
	if tasks[0].LastCompleted == nil {
		t.Fatal("completion stamp missing after mark done")
	}
	if time.Since(*tasks[0].LastCompleted) > time.Minute {
		t.Fatalf("completion stamp not recent: %v", tasks[0].LastCompleted)
	}
	if tasks[0].PendingAt(time.Now()) {
		t.Fatal("just-completed task must not be pending")
	}
}

func TestMarkTaskDoneUnknownID(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	if err := store.MarkTaskDone(context.Background(), 9999); err == nil {
		t.Fatal("expected error for unknown task id")
	}
}

func TestListTasksOrderedByProject(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	for _, seed := range []struct {
		project string
		desc    string
	}{
		{"Polymarket", "Place 1 Prediction"},
		{"Aztec", "Privacy Transfer"},
		{"MetaMask", "Perform 1 Swap"},
	} {
		if _, err := store.AddTask(ctx, seed.project, seed.desc, 7); err != nil {
			t.Fatalf("add %s: %v", seed.project, err)
		}
	}

	tasks, err := store.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := []string{"Aztec", "MetaMask", "Polymarket"}
	for i, task := range tasks {
		if task.ProjectName != want[i] {
			t.Fatalf("position %d = %s, want %s", i, task.ProjectName, want[i])
		}
	}
}

func TestSeedTasksSkipsExistingTriples(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	seeds := []domain.RecurringTask{
		{ProjectName: "MetaMask", Description: "Perform 1 Swap", FrequencyDays: 7},
		{ProjectName: "Polymarket", Description: "Place 1 Prediction", FrequencyDays: 1},
	}

	if err := store.SeedTasks(ctx, seeds); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := store.SeedTasks(ctx, seeds); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	tasks, err := store.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("seeding twice duplicated tasks: %d rows", len(tasks))
	}

	// A changed frequency is a different triple and inserts alongside.
	if err := store.SeedTasks(ctx, []domain.RecurringTask{
		{ProjectName: "MetaMask", Description: "Perform 1 Swap", FrequencyDays: 14},
	}); err != nil {
		t.Fatalf("third seed: %v", err)
	}

	tasks, err = store.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 rows after new triple, got %d", len(tasks))
	}
}
