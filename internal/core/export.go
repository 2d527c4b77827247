package core

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tosin2013/prompt-manager/pkg/models"
	"gopkg.in/yaml.v3"
)

// TaskLister is the subset of the task store the exporter needs.
type TaskLister interface {
	Records() []models.BoltTask
}

// Exporter serializes the full task list to a JSON or YAML document.
type Exporter interface {
	Export(project, outputPath string) ([]byte, string, error)
}

type exporter struct {
	lister TaskLister
}

// NewExporter creates an Exporter reading tasks from the given lister.
func NewExporter(lister TaskLister) Exporter {
	return &exporter{lister: lister}
}

// Export builds the export document and returns its serialized bytes
// together with the format used. The format follows the output path
// extension: .yaml/.yml produce YAML, everything else JSON.
func (e *exporter) Export(project, outputPath string) ([]byte, string, error) {
	doc := models.ExportDocument{
		Project:    project,
		ExportedAt: time.Now().UTC(),
		Tasks:      e.lister.Records(),
	}

	ext := strings.ToLower(filepath.Ext(outputPath))
	if ext == ".yaml" || ext == ".yml" {
		data, err := yaml.Marshal(&doc)
		if err != nil {
			return nil, "", fmt.Errorf("exporting tasks: marshaling YAML: %w", err)
		}
		return data, "yaml", nil
	}

	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("exporting tasks: marshaling JSON: %w", err)
	}
	return append(data, '\n'), "json", nil
}
