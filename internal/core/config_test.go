package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tosin2013/prompt-manager/pkg/models"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigurationManager(dir)

	cfg, err := cm.LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProjectName != filepath.Base(dir) {
		t.Fatalf("expected project name %q, got %q", filepath.Base(dir), cfg.ProjectName)
	}
	if cfg.MemoryDir != "cline_docs" {
		t.Fatalf("expected default memory dir, got %q", cfg.MemoryDir)
	}
	if cfg.MaxTokens != 2_000_000 {
		t.Fatalf("expected default max tokens, got %d", cfg.MaxTokens)
	}
	if cfg.DefaultExport != "json" {
		t.Fatalf("expected default export format, got %q", cfg.DefaultExport)
	}
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := "project:\n  name: my-app\nmemory:\n  dir: docs\n  max_tokens: 5000\nexport:\n  format: yaml\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := NewConfigurationManager(dir).LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProjectName != "my-app" || cfg.MemoryDir != "docs" || cfg.MaxTokens != 5000 || cfg.DefaultExport != "yaml" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "project:\n  name: partial\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := NewConfigurationManager(dir).LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProjectName != "partial" {
		t.Fatalf("unexpected project name %q", cfg.ProjectName)
	}
	if cfg.MemoryDir != "cline_docs" || cfg.MaxTokens != 2_000_000 {
		t.Fatalf("missing keys did not default: %+v", cfg)
	}
}

func TestValidateConfig(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())

	valid := &models.ProjectConfig{
		ProjectName: "x", MemoryDir: "docs", MaxTokens: 100, DefaultExport: "json",
	}
	if err := cm.ValidateConfig(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	invalid := &models.ProjectConfig{
		ProjectName: "x", MemoryDir: "/abs/docs", MaxTokens: 0, DefaultExport: "xml",
	}
	err := cm.ValidateConfig(invalid)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	// All problems are collected in one error.
	for _, want := range []string{"memory.dir", "max_tokens", "export.format"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in error: %v", want, err)
		}
	}
}

func TestValidateConfig_Nil(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())
	if err := cm.ValidateConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
