package models

import "fmt"

// NotFoundError indicates a task or file that does not exist.
type NotFoundError struct {
	Kind string // "task", "file"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// DuplicateTaskError indicates an attempt to add a task whose title is
// already taken.
type DuplicateTaskError struct {
	Title string
}

func (e *DuplicateTaskError) Error() string {
	return fmt.Sprintf("task %q already exists", e.Title)
}

// ValidationError indicates a field value outside its allowed set.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CircularDependencyError indicates a dependency edge that would close
// a cycle in the task graph.
type CircularDependencyError struct {
	Title      string
	Dependency string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("adding dependency %q to %q would create a cycle", e.Dependency, e.Title)
}

// InvalidFileError indicates a memory bank file name outside the
// required set.
type InvalidFileError struct {
	FileName string
}

func (e *InvalidFileError) Error() string {
	return fmt.Sprintf("invalid memory bank file %q", e.FileName)
}

// InvalidModeError indicates an update mode other than append or replace.
type InvalidModeError struct {
	Mode string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid update mode %q: must be append or replace", e.Mode)
}
