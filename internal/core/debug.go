package core

import (
	"context"
	"fmt"
)

// DebugAdvisor drives the debugging-guidance commands. Like LLMManager,
// each operation validates the target file, formats a prompt through
// the responder, and returns the responder's answer verbatim.
type DebugAdvisor interface {
	AnalyzeFile(ctx context.Context, filePath string) (string, error)
	FindRootCause(ctx context.Context, filePath string) (string, error)
	IterativeFix(ctx context.Context, filePath string) ([]string, error)
	TestRoadmap(ctx context.Context, filePath string) ([]string, error)
	AnalyzeDependencies(ctx context.Context, filePath string) (string, error)
	TraceError(ctx context.Context, filePath string) (string, error)
}

type debugAdvisor struct {
	basePath  string
	responder PromptResponder
}

// NewDebugAdvisor creates a DebugAdvisor rooted at basePath. Relative
// file arguments are resolved against basePath.
func NewDebugAdvisor(basePath string, responder PromptResponder) DebugAdvisor {
	return &debugAdvisor{basePath: basePath, responder: responder}
}

// guide reads the target file, formats the named template, and hands
// the prompt to the responder. Templates that declare file_content in
// their required context get the file body; the rest only see the path.
func (d *debugAdvisor) guide(ctx context.Context, templateName, filePath string) (string, error) {
	resolved, content, err := readSourceFile(d.basePath, filePath)
	if err != nil {
		return "", err
	}

	promptContext := map[string]string{
		"file_path":    resolved,
		"file_content": content,
	}
	prompt, err := d.responder.FormatPrompt(templateName, promptContext)
	if err != nil {
		return "", fmt.Errorf("%s: %w", templateName, err)
	}

	resp, err := d.responder.Respond(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", templateName, err)
	}
	return resp, nil
}

func (d *debugAdvisor) AnalyzeFile(ctx context.Context, filePath string) (string, error) {
	return d.guide(ctx, "debug-analyze-file", filePath)
}

func (d *debugAdvisor) FindRootCause(ctx context.Context, filePath string) (string, error) {
	return d.guide(ctx, "debug-find-root-cause", filePath)
}

func (d *debugAdvisor) IterativeFix(ctx context.Context, filePath string) ([]string, error) {
	resp, err := d.guide(ctx, "debug-iterative-fix", filePath)
	if err != nil {
		return nil, err
	}
	return responseLines(resp), nil
}

func (d *debugAdvisor) TestRoadmap(ctx context.Context, filePath string) ([]string, error) {
	resp, err := d.guide(ctx, "debug-test-roadmap", filePath)
	if err != nil {
		return nil, err
	}
	return responseLines(resp), nil
}

func (d *debugAdvisor) AnalyzeDependencies(ctx context.Context, filePath string) (string, error) {
	return d.guide(ctx, "debug-analyze-dependencies", filePath)
}

func (d *debugAdvisor) TraceError(ctx context.Context, filePath string) (string, error) {
	return d.guide(ctx, "debug-trace-error", filePath)
}
