package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tosin2013/prompt-manager/pkg/models"
)

func newTestBank(t *testing.T) *MemoryBank {
	t.Helper()
	bank := NewMemoryBank(filepath.Join(t.TempDir(), "cline_docs"), 0)
	if err := bank.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return bank
}

func TestInitialize_CreatesRequiredFiles(t *testing.T) {
	bank := newTestBank(t)

	for _, name := range RequiredFiles {
		content, err := bank.ReadFile(name)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", name, err)
		}
		if !strings.HasPrefix(content, "# ") {
			t.Fatalf("expected title header in %s, got %q", name, content)
		}
	}

	got, _ := bank.ReadFile("productContext.md")
	if got != "# Product Context\n" {
		t.Fatalf("unexpected header: %q", got)
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	bank := newTestBank(t)
	if err := bank.UpdateContext("progress.md", "Done", "shipped v1", ModeAppend); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before, _ := bank.ReadFile("progress.md")

	if err := bank.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, _ := bank.ReadFile("progress.md")
	if after != before {
		t.Fatalf("re-init changed content:\n%q\n%q", before, after)
	}
}

func TestUpdateContext_AppendCreatesSection(t *testing.T) {
	bank := newTestBank(t)
	if err := bank.UpdateContext("activeContext.md", "Current Focus", "ship the parser", ModeAppend); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, _ := bank.ReadFile("activeContext.md")
	if !strings.Contains(content, "## Current Focus\nship the parser\n") {
		t.Fatalf("section not created:\n%s", content)
	}
}

func TestUpdateContext_AppendGrowsSingleBlock(t *testing.T) {
	bank := newTestBank(t)
	_ = bank.UpdateContext("progress.md", "Done", "first", ModeAppend)
	if err := bank.UpdateContext("progress.md", "Done", "second", ModeAppend); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, _ := bank.ReadFile("progress.md")
	if strings.Count(content, "## Done") != 1 {
		t.Fatalf("expected a single Done section:\n%s", content)
	}
	if !strings.Contains(content, "## Done\nfirst\nsecond\n") {
		t.Fatalf("append did not preserve order:\n%s", content)
	}
}

func TestUpdateContext_ReplaceRewritesBlock(t *testing.T) {
	bank := newTestBank(t)
	_ = bank.UpdateContext("progress.md", "Done", "old line", ModeAppend)
	if err := bank.UpdateContext("progress.md", "Done", "new line", ModeReplace); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, _ := bank.ReadFile("progress.md")
	if strings.Contains(content, "old line") {
		t.Fatalf("replace kept old content:\n%s", content)
	}
	if !strings.Contains(content, "## Done\nnew line\n") {
		t.Fatalf("replace missing new content:\n%s", content)
	}
}

func TestUpdateContext_SiblingsUntouched(t *testing.T) {
	bank := newTestBank(t)
	_ = bank.UpdateContext("systemPatterns.md", "Storage", "yaml files", ModeAppend)
	_ = bank.UpdateContext("systemPatterns.md", "Transport", "stdio", ModeAppend)
	before, _ := bank.ReadFile("systemPatterns.md")
	storageIdx := strings.Index(before, "## Storage")
	transportIdx := strings.Index(before, "## Transport")

	if err := bank.UpdateContext("systemPatterns.md", "Storage", "flock around writes", ModeReplace); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, _ := bank.ReadFile("systemPatterns.md")

	// Everything outside the edited block is byte-identical.
	if before[:storageIdx] != after[:strings.Index(after, "## Storage")] {
		t.Fatal("prefix changed")
	}
	if before[transportIdx:] != after[strings.Index(after, "## Transport"):] {
		t.Fatalf("sibling section changed:\nbefore: %q\nafter:  %q",
			before[transportIdx:], after[strings.Index(after, "## Transport"):])
	}
}

func TestUpdateContext_SectionNamePrefixNotConfused(t *testing.T) {
	bank := newTestBank(t)
	_ = bank.UpdateContext("activeContext.md", "Task Details", "the long form", ModeAppend)
	if err := bank.UpdateContext("activeContext.md", "Task", "the short form", ModeAppend); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, _ := bank.ReadFile("activeContext.md")
	if !strings.Contains(content, "## Task Details\nthe long form") {
		t.Fatalf("prefix section damaged:\n%s", content)
	}
	if !strings.Contains(content, "## Task\nthe short form") {
		t.Fatalf("new section missing:\n%s", content)
	}
}

func TestUpdateContext_ContentContainingHeaderMarker(t *testing.T) {
	bank := newTestBank(t)
	body := "see the markdown line \"## Example\" above"
	_ = bank.UpdateContext("techContext.md", "Notes", body, ModeAppend)

	// The quoted marker must not terminate the block early.
	if err := bank.UpdateContext("techContext.md", "Notes", "more", ModeAppend); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content, _ := bank.ReadFile("techContext.md")
	if !strings.Contains(content, body+"\nmore\n") {
		t.Fatalf("content-embedded marker split the block:\n%s", content)
	}
}

func TestUpdateContext_InvalidFile(t *testing.T) {
	bank := newTestBank(t)

	err := bank.UpdateContext("secrets.md", "Keys", "nope", ModeAppend)
	var fErr *models.InvalidFileError
	if !errors.As(err, &fErr) {
		t.Fatalf("expected InvalidFileError, got %v", err)
	}
}

func TestUpdateContext_InvalidMode(t *testing.T) {
	bank := newTestBank(t)

	err := bank.UpdateContext("progress.md", "Done", "x", "prepend")
	var mErr *models.InvalidModeError
	if !errors.As(err, &mErr) {
		t.Fatalf("expected InvalidModeError, got %v", err)
	}
}

func TestUpdateContext_InactiveIsNoOp(t *testing.T) {
	bank := NewMemoryBank(filepath.Join(t.TempDir(), "cline_docs"), 0)

	if err := bank.UpdateContext("progress.md", "Done", "x", ModeAppend); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if _, err := os.Stat(bank.DocsPath()); !os.IsNotExist(err) {
		t.Fatal("inactive update created files")
	}
}

func TestTokenCounter_TracksContentSize(t *testing.T) {
	bank := newTestBank(t)
	before := bank.CurrentTokens()
	if before == 0 {
		t.Fatal("expected counter seeded from headers")
	}

	if err := bank.UpdateContext("progress.md", "Done", "0123456789", ModeAppend); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bank.CurrentTokens() <= before {
		t.Fatalf("expected counter to grow: %d -> %d", before, bank.CurrentTokens())
	}
}

func TestCheckTokenLimit_AdvisoryOnly(t *testing.T) {
	bank := NewMemoryBank(filepath.Join(t.TempDir(), "cline_docs"), 1)
	if err := bank.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bank.CheckTokenLimit() {
		t.Fatal("expected limit reached with 1-token cap")
	}
	// Writes still go through.
	if err := bank.UpdateContext("progress.md", "Done", "still writable", ModeAppend); err != nil {
		t.Fatalf("limit blocked a write: %v", err)
	}
}

func TestReset(t *testing.T) {
	bank := newTestBank(t)
	_ = bank.UpdateContext("progress.md", "Done", "x", ModeAppend)

	if err := bank.Reset(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bank.IsActive() {
		t.Fatal("expected bank inactive after reset")
	}
	if bank.CurrentTokens() != 0 {
		t.Fatalf("expected zero counter, got %d", bank.CurrentTokens())
	}
	for _, name := range RequiredFiles {
		if _, err := os.Stat(filepath.Join(bank.DocsPath(), name)); !os.IsNotExist(err) {
			t.Fatalf("%s still exists after reset", name)
		}
	}
}

func TestFileTitle(t *testing.T) {
	cases := map[string]string{
		"productContext.md": "Product Context",
		"progress.md":       "Progress",
		"techContext.md":    "Tech Context",
	}
	for in, want := range cases {
		if got := fileTitle(in); got != want {
			t.Fatalf("fileTitle(%q) = %q, want %q", in, got, want)
		}
	}
}
