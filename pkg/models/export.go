package models

import "time"

// ExportDocument is the top-level structure written by export-tasks:
// the project name plus every task record in the store.
// Plain tasks and bolt tasks share the record type; bolt-only fields
// are omitted when empty.
type ExportDocument struct {
	Project    string     `yaml:"project" json:"project"`
	ExportedAt time.Time  `yaml:"exported_at" json:"exported_at"`
	Tasks      []BoltTask `yaml:"tasks" json:"tasks"`
}
