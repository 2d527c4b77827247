package cli

import (
	"github.com/tosin2013/prompt-manager/internal/core"
	"github.com/tosin2013/prompt-manager/internal/integration"
	"github.com/tosin2013/prompt-manager/internal/observability"
	"github.com/tosin2013/prompt-manager/internal/storage"
	"github.com/tosin2013/prompt-manager/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath string
	Config   *models.ProjectConfig

	Store    storage.TaskStore
	Bank     *storage.MemoryBank
	Registry core.TemplateRegistry
	LLM      core.LLMManager
	Debug    core.DebugAdvisor
	Export   core.Exporter
	Analyzer integration.RepoAnalyzer
	EventLog observability.EventLog

	// Reinit rebuilds all services against a new project directory.
	// Used by the global --project-dir flag.
	Reinit func(basePath string) error
)

// recordEvent writes an event to the project event log when one is
// available. Event logging is best-effort and never fails a command.
func recordEvent(eventType, msg string, data map[string]any) {
	if EventLog == nil {
		return
	}
	_ = EventLog.Write(observability.Event{
		Type:    eventType,
		Message: msg,
		Data:    data,
	})
}
