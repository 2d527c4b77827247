package models

import (
	"fmt"
	"time"
)

// TaskStatus represents the current lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
	StatusFailed     TaskStatus = "failed"
	StatusBlocked    TaskStatus = "blocked"
)

// ValidStatuses is the closed set of allowed TaskStatus values.
var ValidStatuses = map[TaskStatus]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusDone:       true,
	StatusFailed:     true,
	StatusBlocked:    true,
}

// Priority represents the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriorities is the closed set of allowed Priority values.
var ValidPriorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

// priorityRank orders priorities ascending: low < medium < high.
var priorityRank = map[Priority]int{
	PriorityLow:    0,
	PriorityMedium: 1,
	PriorityHigh:   2,
}

// Rank returns the sort rank of a priority (low first). Unknown
// priorities sort after the known set.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

// noteTimeLayout is the timestamp prefix format for task notes.
const noteTimeLayout = "2006-01-02 15:04:05"

// Task represents a titled unit of work with status, priority, and
// free-text notes. The title is the unique key within a store.
type Task struct {
	Title          string     `yaml:"title" json:"title"`
	Description    string     `yaml:"description" json:"description"`
	Status         TaskStatus `yaml:"status" json:"status"`
	Priority       Priority   `yaml:"priority" json:"priority"`
	PromptTemplate string     `yaml:"prompt_template,omitempty" json:"prompt_template,omitempty"`
	Notes          []string   `yaml:"notes,omitempty" json:"notes,omitempty"`
	Dependencies   []string   `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	DueDate        string     `yaml:"due_date,omitempty" json:"due_date,omitempty"`
	CreatedAt      time.Time  `yaml:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `yaml:"updated_at" json:"updated_at"`
}

// NewTask creates a task with the given title and description, pending
// status, and creation timestamps set to now.
func NewTask(title, description string) *Task {
	now := time.Now().UTC()
	return &Task{
		Title:       title,
		Description: description,
		Status:      StatusPending,
		Priority:    PriorityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks the task's fields against the closed enum sets.
func (t *Task) Validate() error {
	if t.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if !ValidStatuses[t.Status] {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf(
			"%q is not one of: pending, in_progress, done, failed, blocked", t.Status)}
	}
	if !ValidPriorities[t.Priority] {
		return &ValidationError{Field: "priority", Reason: fmt.Sprintf(
			"%q is not one of: low, medium, high", t.Priority)}
	}
	if t.DueDate != "" {
		if _, err := time.Parse("2006-01-02", t.DueDate); err != nil {
			return &ValidationError{Field: "due_date", Reason: fmt.Sprintf(
				"%q is not a valid ISO-8601 date (YYYY-MM-DD)", t.DueDate)}
		}
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return &ValidationError{Field: "updated_at", Reason: "must not precede created_at"}
	}
	return nil
}

// SetStatus changes the task's status, bumps the updated timestamp, and
// appends a timestamped note when one is given.
func (t *Task) SetStatus(status TaskStatus, note string) {
	t.Status = status
	t.Touch()
	if note != "" {
		t.AppendNote(note)
	}
}

// AppendNote records a note prefixed with the current timestamp.
func (t *Task) AppendNote(note string) {
	stamp := time.Now().UTC().Format(noteTimeLayout)
	t.Notes = append(t.Notes, fmt.Sprintf("%s - %s", stamp, note))
}

// Touch bumps the updated timestamp.
func (t *Task) Touch() {
	t.UpdatedAt = time.Now().UTC()
}

// DependsOn reports whether the task lists dep as a direct dependency.
func (t *Task) DependsOn(dep string) bool {
	for _, d := range t.Dependencies {
		if d == dep {
			return true
		}
	}
	return false
}
