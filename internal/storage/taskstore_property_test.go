package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tosin2013/prompt-manager/pkg/models"
	"pgregory.net/rapid"
)

// Any sequence of AddDependency calls leaves the graph acyclic: every
// accepted edge is recorded, every rejected edge leaves the store
// unchanged, and no task can reach itself.
func TestDependencyGraphStaysAcyclic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store := NewTaskStore(t.TempDir()).(*fileTaskStore)
		if err := store.Load(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		nTasks := rapid.IntRange(2, 6).Draw(rt, "nTasks")
		titles := make([]string, nTasks)
		for i := range titles {
			titles[i] = fmt.Sprintf("task-%d", i)
			if _, err := store.Add(models.NewTask(titles[i], "")); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		nEdges := rapid.IntRange(1, 12).Draw(rt, "nEdges")
		for i := 0; i < nEdges; i++ {
			from := titles[rapid.IntRange(0, nTasks-1).Draw(rt, "from")]
			to := titles[rapid.IntRange(0, nTasks-1).Draw(rt, "to")]

			err := store.AddDependency(from, to)
			var cErr *models.CircularDependencyError
			if err != nil && !errors.As(err, &cErr) {
				t.Fatalf("unexpected error kind: %v", err)
			}
		}

		for _, title := range titles {
			rec := store.data.Tasks[title]
			for _, dep := range rec.Dependencies {
				if store.pathExists(dep, title) {
					t.Fatalf("cycle through %s -> %s", title, dep)
				}
			}
		}
	})
}

// Saving and reloading the store preserves every record.
func TestTaskFileRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dir := t.TempDir()
		store := NewTaskStore(dir)
		if err := store.Load(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		priorities := []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}
		nTasks := rapid.IntRange(1, 5).Draw(rt, "nTasks")
		for i := 0; i < nTasks; i++ {
			task := models.NewTask(fmt.Sprintf("task-%d", i), fmt.Sprintf("description %d", i))
			task.Priority = priorities[rapid.IntRange(0, 2).Draw(rt, "priority")]
			if _, err := store.Add(task); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		reopened := NewTaskStore(dir)
		if err := reopened.Load(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 0; i < nTasks; i++ {
			title := fmt.Sprintf("task-%d", i)
			want, _ := store.Get(title)
			got, err := reopened.Get(title)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Description != want.Description || got.Priority != want.Priority {
				t.Fatalf("record %s changed across reload: %+v vs %+v", title, got, want)
			}
		}
	})
}
