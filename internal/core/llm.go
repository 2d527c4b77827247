package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tosin2013/prompt-manager/pkg/models"
)

// PRResult describes a drafted pull request.
type PRResult struct {
	Title  string
	Body   string
	Status string
}

// LLMManager drives the LLM-backed suggestion commands. Every operation
// validates its inputs locally, formats a prompt through the responder,
// and returns the responder's answer; the quality of the answer is
// entirely the responder's concern.
type LLMManager interface {
	SuggestImprovements(ctx context.Context, filePath string) ([]string, error)
	AnalyzeImpact(ctx context.Context, filePath string) (string, error)
	GenerateBoltTasks(ctx context.Context, filePath, framework string) ([]string, error)
	GenerateCommands(ctx context.Context, filePath string) ([]string, error)
	CreatePR(ctx context.Context, filePath, title string) (*PRResult, error)
}

type llmManager struct {
	basePath  string
	responder PromptResponder
}

// NewLLMManager creates an LLMManager rooted at basePath. Relative file
// arguments are resolved against basePath.
func NewLLMManager(basePath string, responder PromptResponder) LLMManager {
	return &llmManager{basePath: basePath, responder: responder}
}

// readSourceFile resolves filePath against basePath and reads it,
// mapping a missing file to NotFoundError.
func readSourceFile(basePath, filePath string) (string, string, error) {
	resolved := filePath
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(basePath, filePath)
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", &models.NotFoundError{Kind: "file", Name: filePath}
		}
		return "", "", fmt.Errorf("reading %s: %w", filePath, err)
	}
	return resolved, string(data), nil
}

func (m *llmManager) SuggestImprovements(ctx context.Context, filePath string) ([]string, error) {
	resolved, content, err := readSourceFile(m.basePath, filePath)
	if err != nil {
		return nil, err
	}

	prompt, err := m.responder.FormatPrompt("suggest-improvements", map[string]string{
		"file_path":    resolved,
		"file_content": content,
	})
	if err != nil {
		return nil, fmt.Errorf("suggesting improvements: %w", err)
	}

	resp, err := m.responder.Respond(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("suggesting improvements: %w", err)
	}
	return responseLines(resp), nil
}

func (m *llmManager) AnalyzeImpact(ctx context.Context, filePath string) (string, error) {
	resolved, _, err := readSourceFile(m.basePath, filePath)
	if err != nil {
		return "", err
	}

	prompt, err := m.responder.FormatPrompt("analyze-impact", map[string]string{
		"file_path": resolved,
	})
	if err != nil {
		return "", fmt.Errorf("analyzing impact: %w", err)
	}

	resp, err := m.responder.Respond(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("analyzing impact: %w", err)
	}
	return resp, nil
}

func (m *llmManager) GenerateBoltTasks(ctx context.Context, filePath, framework string) ([]string, error) {
	if framework == "" {
		return nil, &models.ValidationError{Field: "framework", Reason: "must not be empty"}
	}
	resolved, _, err := readSourceFile(m.basePath, filePath)
	if err != nil {
		return nil, err
	}

	prompt, err := m.responder.FormatPrompt("generate-bolt-tasks", map[string]string{
		"file_path": resolved,
		"framework": framework,
	})
	if err != nil {
		return nil, fmt.Errorf("generating bolt tasks: %w", err)
	}

	resp, err := m.responder.Respond(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating bolt tasks: %w", err)
	}
	return responseLines(resp), nil
}

func (m *llmManager) GenerateCommands(ctx context.Context, filePath string) ([]string, error) {
	resolved, _, err := readSourceFile(m.basePath, filePath)
	if err != nil {
		return nil, err
	}

	prompt, err := m.responder.FormatPrompt("generate-commands", map[string]string{
		"file_path": resolved,
	})
	if err != nil {
		return nil, fmt.Errorf("generating commands: %w", err)
	}

	resp, err := m.responder.Respond(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating commands: %w", err)
	}
	return responseLines(resp), nil
}

func (m *llmManager) CreatePR(ctx context.Context, filePath, title string) (*PRResult, error) {
	if title == "" {
		return nil, &models.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	resolved, _, err := readSourceFile(m.basePath, filePath)
	if err != nil {
		return nil, err
	}

	prompt, err := m.responder.FormatPrompt("create-pr", map[string]string{
		"file_path": resolved,
		"title":     title,
	})
	if err != nil {
		return nil, fmt.Errorf("creating PR: %w", err)
	}

	resp, err := m.responder.Respond(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("creating PR: %w", err)
	}

	return &PRResult{Title: title, Body: resp, Status: "drafted"}, nil
}

// responseLines splits a response into trimmed, non-empty lines.
func responseLines(resp string) []string {
	var out []string
	for _, line := range strings.Split(resp, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
