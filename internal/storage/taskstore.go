// Package storage provides the file-backed persistence layer: the YAML
// task store and the markdown memory bank.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tosin2013/prompt-manager/pkg/models"
	"gopkg.in/yaml.v3"
)

// SortBy values accepted by List.
const (
	SortByPriority = "priority"
	SortByCreated  = "created"
	SortByUpdated  = "updated"
)

// TaskFile represents the top-level structure of tasks.yaml. Records
// are BoltTask so plain tasks and bolt tasks share one file; a record
// with an empty framework is a plain task.
type TaskFile struct {
	Version string                     `yaml:"version"`
	Tasks   map[string]models.BoltTask `yaml:"tasks"`
}

// TaskUpdate carries a partial update for a task. Nil fields are left
// unchanged.
type TaskUpdate struct {
	Description *string
	Template    *string
	Priority    *models.Priority
	DueDate     *string
}

// ListOptions filters and orders the result of List.
type ListOptions struct {
	Status models.TaskStatus // empty means all statuses
	SortBy string            // priority, created, or updated; empty means title order
}

// TaskStore defines the interface for task CRUD and dependency tracking.
// The backing file is the source of truth between processes; the
// in-memory map is a cache flushed to disk on every mutation.
type TaskStore interface {
	Add(task *models.Task) (*models.Task, error)
	AddBolt(task *models.BoltTask) (*models.BoltTask, error)
	Get(title string) (*models.Task, error)
	GetBolt(title string) (*models.BoltTask, error)
	Update(title string, updates TaskUpdate) (*models.Task, error)
	UpdateStatus(title string, status models.TaskStatus, note string) (*models.Task, error)
	Delete(title string) error
	List(opts ListOptions) ([]models.Task, error)
	AddDependency(title, dependency string) error
	Records() []models.BoltTask
	Load() error
	Save() error
}

type fileTaskStore struct {
	basePath string
	data     TaskFile
}

// NewTaskStore creates a TaskStore backed by tasks.yaml in the given
// project directory. Call Load before first use.
func NewTaskStore(basePath string) TaskStore {
	return &fileTaskStore{
		basePath: basePath,
		data: TaskFile{
			Version: "1.0",
			Tasks:   make(map[string]models.BoltTask),
		},
	}
}

func (s *fileTaskStore) filePath() string {
	return filepath.Join(s.basePath, "tasks.yaml")
}

func (s *fileTaskStore) lockPath() string {
	return filepath.Join(s.basePath, ".tasks.lock")
}

func (s *fileTaskStore) Add(task *models.Task) (*models.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if _, exists := s.data.Tasks[task.Title]; exists {
		return nil, &models.DuplicateTaskError{Title: task.Title}
	}
	s.data.Tasks[task.Title] = models.BoltTask{Task: *task}
	if err := s.Save(); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *fileTaskStore) AddBolt(task *models.BoltTask) (*models.BoltTask, error) {
	if task.Framework == "" {
		return nil, &models.ValidationError{Field: "framework", Reason: "must not be empty"}
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if _, exists := s.data.Tasks[task.Title]; exists {
		return nil, &models.DuplicateTaskError{Title: task.Title}
	}
	s.data.Tasks[task.Title] = *task
	if err := s.Save(); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *fileTaskStore) Get(title string) (*models.Task, error) {
	rec, exists := s.data.Tasks[title]
	if !exists {
		return nil, &models.NotFoundError{Kind: "task", Name: title}
	}
	task := rec.Task
	return &task, nil
}

func (s *fileTaskStore) GetBolt(title string) (*models.BoltTask, error) {
	rec, exists := s.data.Tasks[title]
	if !exists {
		return nil, &models.NotFoundError{Kind: "task", Name: title}
	}
	return &rec, nil
}

func (s *fileTaskStore) Update(title string, updates TaskUpdate) (*models.Task, error) {
	rec, exists := s.data.Tasks[title]
	if !exists {
		return nil, &models.NotFoundError{Kind: "task", Name: title}
	}
	task := rec.Task

	if updates.Description != nil {
		task.Description = *updates.Description
	}
	if updates.Template != nil {
		task.PromptTemplate = *updates.Template
	}
	if updates.Priority != nil {
		task.Priority = *updates.Priority
	}
	if updates.DueDate != nil {
		task.DueDate = *updates.DueDate
	}
	task.Touch()

	if err := task.Validate(); err != nil {
		return nil, err
	}

	rec.Task = task
	s.data.Tasks[title] = rec
	if err := s.Save(); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateStatus sets the task's status and appends a timestamped note
// when note is non-empty. Any status may follow any other; only
// membership in the enum is checked.
func (s *fileTaskStore) UpdateStatus(title string, status models.TaskStatus, note string) (*models.Task, error) {
	rec, exists := s.data.Tasks[title]
	if !exists {
		return nil, &models.NotFoundError{Kind: "task", Name: title}
	}
	task := rec.Task
	if !models.ValidStatuses[status] {
		return nil, &models.ValidationError{Field: "status", Reason: fmt.Sprintf(
			"%q is not one of: pending, in_progress, done, failed, blocked", status)}
	}

	task.SetStatus(status, note)
	rec.Task = task
	s.data.Tasks[title] = rec
	if err := s.Save(); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *fileTaskStore) Delete(title string) error {
	if _, exists := s.data.Tasks[title]; !exists {
		return &models.NotFoundError{Kind: "task", Name: title}
	}
	delete(s.data.Tasks, title)
	return s.Save()
}

func (s *fileTaskStore) List(opts ListOptions) ([]models.Task, error) {
	if opts.Status != "" && !models.ValidStatuses[opts.Status] {
		return nil, &models.ValidationError{Field: "status", Reason: fmt.Sprintf(
			"%q is not one of: pending, in_progress, done, failed, blocked", opts.Status)}
	}

	tasks := make([]models.Task, 0, len(s.data.Tasks))
	for _, rec := range s.data.Tasks {
		if opts.Status != "" && rec.Status != opts.Status {
			continue
		}
		tasks = append(tasks, rec.Task)
	}

	// Title order is the stable baseline; the sort key is applied on top.
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].Title < tasks[j].Title
	})

	switch opts.SortBy {
	case "":
		// keep title order
	case SortByPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority.Rank() < tasks[j].Priority.Rank()
		})
	case SortByCreated:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		})
	case SortByUpdated:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].UpdatedAt.Before(tasks[j].UpdatedAt)
		})
	default:
		return nil, &models.ValidationError{Field: "sort_by", Reason: fmt.Sprintf(
			"%q is not one of: priority, created, updated", opts.SortBy)}
	}

	return tasks, nil
}

// AddDependency records that title depends on dependency. The edge is
// rejected when dependency already (transitively) depends on title, so
// the graph stays acyclic; a rejected call leaves the graph unchanged.
func (s *fileTaskStore) AddDependency(title, dependency string) error {
	rec, exists := s.data.Tasks[title]
	if !exists {
		return &models.NotFoundError{Kind: "task", Name: title}
	}
	if _, exists := s.data.Tasks[dependency]; !exists {
		return &models.NotFoundError{Kind: "task", Name: dependency}
	}
	if title == dependency {
		return &models.CircularDependencyError{Title: title, Dependency: dependency}
	}
	if rec.DependsOn(dependency) {
		return nil
	}
	if s.pathExists(dependency, title) {
		return &models.CircularDependencyError{Title: title, Dependency: dependency}
	}

	rec.Dependencies = append(rec.Dependencies, dependency)
	rec.Touch()
	s.data.Tasks[title] = rec
	return s.Save()
}

// Records returns every stored record, bolt fields included, in title
// order.
func (s *fileTaskStore) Records() []models.BoltTask {
	out := make([]models.BoltTask, 0, len(s.data.Tasks))
	for _, rec := range s.data.Tasks {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Title < out[j].Title
	})
	return out
}

// pathExists reports whether from (transitively) depends on to.
func (s *fileTaskStore) pathExists(from, to string) bool {
	visited := make(map[string]bool)
	var walk func(string) bool
	walk = func(title string) bool {
		if title == to {
			return true
		}
		if visited[title] {
			return false
		}
		visited[title] = true
		rec, exists := s.data.Tasks[title]
		if !exists {
			return false
		}
		for _, dep := range rec.Dependencies {
			if walk(dep) {
				return true
			}
		}
		return false
	}
	return walk(from)
}

func (s *fileTaskStore) Load() error {
	data, err := os.ReadFile(s.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			s.data = TaskFile{
				Version: "1.0",
				Tasks:   make(map[string]models.BoltTask),
			}
			return nil
		}
		return fmt.Errorf("loading tasks: %w", err)
	}

	var tf TaskFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("loading tasks: parsing YAML: %w", err)
	}
	if tf.Tasks == nil {
		tf.Tasks = make(map[string]models.BoltTask)
	}
	s.data = tf
	return nil
}

func (s *fileTaskStore) Save() error {
	if err := os.MkdirAll(s.basePath, 0o750); err != nil {
		return fmt.Errorf("saving tasks: creating directory: %w", err)
	}

	lock, err := acquireLock(s.lockPath())
	if err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	defer lock.Release()

	data, err := yaml.Marshal(&s.data)
	if err != nil {
		return fmt.Errorf("saving tasks: marshaling YAML: %w", err)
	}
	if err := writeFileAtomic(s.filePath(), data, 0o600); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}
