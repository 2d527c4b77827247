// Package core contains the business logic for prompt-manager:
// configuration, the prompt template registry, the LLM hook, and task
// export.
package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/tosin2013/prompt-manager/pkg/models"
)

// ConfigurationManager defines the interface for loading and validating
// the project's config.yaml.
type ConfigurationManager interface {
	LoadConfig() (*models.ProjectConfig, error)
	ValidateConfig(cfg *models.ProjectConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper.
type viperConfigManager struct {
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// config.yaml from basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// defaultConfig returns a ProjectConfig populated with defaults.
func defaultConfig(basePath string) *models.ProjectConfig {
	return &models.ProjectConfig{
		ProjectName:   filepath.Base(basePath),
		MemoryDir:     "cline_docs",
		MaxTokens:     2_000_000,
		DefaultExport: "json",
	}
}

// LoadConfig reads config.yaml from the base path. Missing file or
// missing keys fall back to defaults.
func (cm *viperConfigManager) LoadConfig() (*models.ProjectConfig, error) {
	cfg := defaultConfig(cm.basePath)

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("project.name", cfg.ProjectName)
	v.SetDefault("memory.dir", cfg.MemoryDir)
	v.SetDefault("memory.max_tokens", cfg.MaxTokens)
	v.SetDefault("export.format", cfg.DefaultExport)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config.yaml: %w", err)
	}

	cfg.ProjectName = v.GetString("project.name")
	cfg.MemoryDir = v.GetString("memory.dir")
	cfg.MaxTokens = v.GetInt("memory.max_tokens")
	cfg.DefaultExport = v.GetString("export.format")

	return cfg, nil
}

// ValidateConfig checks the configuration for invalid values.
func (cm *viperConfigManager) ValidateConfig(cfg *models.ProjectConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string
	if cfg.MemoryDir == "" {
		errs = append(errs, "memory.dir must not be empty")
	}
	if filepath.IsAbs(cfg.MemoryDir) {
		errs = append(errs, fmt.Sprintf("memory.dir %q must be relative to the project directory", cfg.MemoryDir))
	}
	if cfg.MaxTokens <= 0 {
		errs = append(errs, fmt.Sprintf("memory.max_tokens must be positive, got %d", cfg.MaxTokens))
	}
	if cfg.DefaultExport != "json" && cfg.DefaultExport != "yaml" {
		errs = append(errs, fmt.Sprintf("export.format %q is invalid, must be json or yaml", cfg.DefaultExport))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
