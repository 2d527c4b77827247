package core

import (
	"context"
	"strings"
	"testing"
)

func newTestResponder(t *testing.T) PromptResponder {
	t.Helper()
	reg, err := NewTemplateRegistry(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewCannedResponder(reg)
}

func TestFormatPrompt(t *testing.T) {
	r := newTestResponder(t)

	prompt, err := r.FormatPrompt("analyze-impact", map[string]string{"file_path": "main.go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "main.go") {
		t.Fatalf("context not substituted: %q", prompt)
	}
}

func TestFormatPrompt_UnknownTemplate(t *testing.T) {
	r := newTestResponder(t)

	if _, err := r.FormatPrompt("nope", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestRespond_MatchesTemplate(t *testing.T) {
	r := newTestResponder(t)

	prompt, err := r.FormatPrompt("suggest-improvements", map[string]string{
		"file_path":    "main.go",
		"file_content": "package main",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := r.Respond(context.Background(), prompt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp, "error handling") {
		t.Fatalf("unexpected canned response %q", resp)
	}
}

func TestRespond_EmptyPrompt(t *testing.T) {
	r := newTestResponder(t)

	if _, err := r.Respond(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

func TestRespond_UnmatchedPrompt(t *testing.T) {
	r := newTestResponder(t)

	resp, err := r.Respond(context.Background(), "something entirely different")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp == "" {
		t.Fatal("expected a generic response")
	}
}
