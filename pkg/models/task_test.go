package models

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewTask_Defaults(t *testing.T) {
	task := NewTask("Setup CI", "Add a pipeline")

	if task.Status != StatusPending {
		t.Fatalf("expected pending status, got %q", task.Status)
	}
	if task.Priority != PriorityMedium {
		t.Fatalf("expected medium priority, got %q", task.Priority)
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_EmptyTitle(t *testing.T) {
	task := NewTask("", "no title")

	var vErr *ValidationError
	if err := task.Validate(); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != "title" {
		t.Fatalf("expected title field, got %q", vErr.Field)
	}
}

func TestValidate_BadStatus(t *testing.T) {
	task := NewTask("Setup CI", "")
	task.Status = "cancelled"

	var vErr *ValidationError
	if err := task.Validate(); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestValidate_BadPriority(t *testing.T) {
	task := NewTask("Setup CI", "")
	task.Priority = "urgent"

	if err := task.Validate(); err == nil {
		t.Fatal("expected error for unknown priority")
	}
}

func TestValidate_DueDate(t *testing.T) {
	task := NewTask("Setup CI", "")

	task.DueDate = "2026-12-31"
	if err := task.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	task.DueDate = "31/12/2026"
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for non-ISO due date")
	}
}

func TestValidate_UpdatedBeforeCreated(t *testing.T) {
	task := NewTask("Setup CI", "")
	task.UpdatedAt = task.CreatedAt.Add(-time.Hour)

	if err := task.Validate(); err == nil {
		t.Fatal("expected error for updated_at before created_at")
	}
}

func TestSetStatus_AppendsTimestampedNote(t *testing.T) {
	task := NewTask("Setup CI", "")
	before := task.UpdatedAt

	task.SetStatus(StatusDone, "pipeline green")

	if task.Status != StatusDone {
		t.Fatalf("expected done, got %q", task.Status)
	}
	if task.UpdatedAt.Before(before) {
		t.Fatal("expected updated_at to advance")
	}
	if len(task.Notes) != 1 {
		t.Fatalf("expected one note, got %d", len(task.Notes))
	}
	if !strings.HasSuffix(task.Notes[0], " - pipeline green") {
		t.Fatalf("expected timestamped note, got %q", task.Notes[0])
	}
}

func TestSetStatus_EmptyNoteSkipped(t *testing.T) {
	task := NewTask("Setup CI", "")
	task.SetStatus(StatusBlocked, "")

	if len(task.Notes) != 0 {
		t.Fatalf("expected no notes, got %d", len(task.Notes))
	}
}

func TestPriorityRank_Ordering(t *testing.T) {
	if !(PriorityLow.Rank() < PriorityMedium.Rank() && PriorityMedium.Rank() < PriorityHigh.Rank()) {
		t.Fatal("expected low < medium < high")
	}
	if Priority("urgent").Rank() <= PriorityHigh.Rank() {
		t.Fatal("expected unknown priorities to rank last")
	}
}

func TestDependsOn(t *testing.T) {
	task := NewTask("B", "")
	task.Dependencies = []string{"A"}

	if !task.DependsOn("A") {
		t.Fatal("expected B to depend on A")
	}
	if task.DependsOn("C") {
		t.Fatal("expected no dependency on C")
	}
}
