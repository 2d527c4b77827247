// Package internal provides the App struct that wires all components of
// prompt-manager together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tosin2013/prompt-manager/internal/cli"
	"github.com/tosin2013/prompt-manager/internal/core"
	"github.com/tosin2013/prompt-manager/internal/integration"
	"github.com/tosin2013/prompt-manager/internal/observability"
	"github.com/tosin2013/prompt-manager/internal/storage"
	"github.com/tosin2013/prompt-manager/pkg/models"
)

// App holds all service dependencies for prompt-manager.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.ProjectConfig

	// Storage layer
	Store storage.TaskStore
	Bank  *storage.MemoryBank

	// Core services
	Registry core.TemplateRegistry
	LLM      core.LLMManager
	Debug    core.DebugAdvisor
	Export   core.Exporter

	// Integration services
	Executor integration.CLIExecutor
	Analyzer integration.RepoAnalyzer

	// Observability
	EventLog observability.EventLog
}

// NewApp creates and wires all components against basePath, the project
// directory where all data files live.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	app.Config = cfg

	// --- Storage layer ---
	app.Store = storage.NewTaskStore(basePath)
	if err := app.Store.Load(); err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	app.Bank = storage.NewMemoryBank(filepath.Join(basePath, cfg.MemoryDir), cfg.MaxTokens)
	// Activate the bank only where one already exists; 'pm init'
	// creates it explicitly.
	if _, statErr := os.Stat(app.Bank.DocsPath()); statErr == nil {
		if err := app.Bank.Initialize(); err != nil {
			return nil, err
		}
	}

	// --- Core services ---
	app.Registry, err = core.NewTemplateRegistry(basePath)
	if err != nil {
		return nil, err
	}
	responder := core.NewCannedResponder(app.Registry)
	app.LLM = core.NewLLMManager(basePath, responder)
	app.Debug = core.NewDebugAdvisor(basePath, responder)
	app.Export = core.NewExporter(app.Store)

	// --- Integration services ---
	app.Executor = integration.NewCLIExecutor()
	app.Analyzer = integration.NewRepoAnalyzer(app.Executor)

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".pm_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: commands run without event logging.
		app.EventLog = nil
	}

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = app.Config
	cli.Store = app.Store
	cli.Bank = app.Bank
	cli.Registry = app.Registry
	cli.LLM = app.LLM
	cli.Debug = app.Debug
	cli.Export = app.Export
	cli.Analyzer = app.Analyzer
	cli.EventLog = app.EventLog

	cli.Reinit = func(newBase string) error {
		abs, absErr := filepath.Abs(newBase)
		if absErr != nil {
			return absErr
		}
		_ = app.Close()
		next, appErr := NewApp(abs)
		if appErr != nil {
			return appErr
		}
		*app = *next
		return nil
	}

	return app, nil
}

// Close releases resources held by the App, such as the event log file
// handle. Safe to call when EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the project directory. It checks the
// PM_HOME env var, then walks up from the current directory looking for
// a config.yaml, and falls back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("PM_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}
