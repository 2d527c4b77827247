package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/tosin2013/prompt-manager/pkg/models"
)

// Update modes accepted by UpdateContext.
const (
	ModeAppend  = "append"
	ModeReplace = "replace"
)

// RequiredFiles is the fixed set of markdown documents every memory
// bank holds.
var RequiredFiles = []string{
	"productContext.md",
	"activeContext.md",
	"systemPatterns.md",
	"techContext.md",
	"progress.md",
}

// DefaultMaxTokens is the advisory token cap applied when the config
// does not set one.
const DefaultMaxTokens = 2_000_000

// MemoryBank manages a directory of fixed-name markdown files holding
// "## <section>" blocks, used as a persistent scratchpad across
// sessions. A running length-based token counter is kept against an
// advisory cap; the cap never blocks writes.
type MemoryBank struct {
	docsPath      string
	maxTokens     int
	currentTokens int
	active        bool
}

// NewMemoryBank creates a memory bank rooted at docsPath. The bank is
// inactive until Initialize is called.
func NewMemoryBank(docsPath string, maxTokens int) *MemoryBank {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &MemoryBank{
		docsPath:  docsPath,
		maxTokens: maxTokens,
	}
}

// DocsPath returns the directory the bank's files live in.
func (mb *MemoryBank) DocsPath() string { return mb.docsPath }

// IsActive reports whether Initialize has been called since the last
// Reset.
func (mb *MemoryBank) IsActive() bool { return mb.active }

// CurrentTokens returns the running approximate token count.
func (mb *MemoryBank) CurrentTokens() int { return mb.currentTokens }

// MaxTokens returns the advisory cap.
func (mb *MemoryBank) MaxTokens() int { return mb.maxTokens }

// Initialize creates the bank directory and every required file that is
// absent, giving each new file a title header derived from its name.
// Existing content is never touched, so re-running is a no-op on a
// populated bank. The token counter is seeded from the on-disk file
// sizes so it survives one-shot CLI processes.
func (mb *MemoryBank) Initialize() error {
	if err := os.MkdirAll(mb.docsPath, 0o750); err != nil {
		return fmt.Errorf("initializing memory bank: %w", err)
	}

	total := 0
	for _, name := range RequiredFiles {
		path := filepath.Join(mb.docsPath, name)
		data, err := os.ReadFile(path)
		if err == nil {
			total += len(data)
			continue
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("initializing memory bank: reading %s: %w", name, err)
		}
		header := fmt.Sprintf("# %s\n", fileTitle(name))
		if err := os.WriteFile(path, []byte(header), 0o600); err != nil {
			return fmt.Errorf("initializing memory bank: writing %s: %w", name, err)
		}
		total += len(header)
	}

	mb.currentTokens = total
	mb.active = true
	return nil
}

// UpdateContext appends to or replaces the named section of one of the
// required files. When the section is absent a new block is appended to
// the end of the file regardless of mode. The call is a no-op when the
// bank has not been initialized.
func (mb *MemoryBank) UpdateContext(fileName, section, content, mode string) error {
	if !mb.active {
		return nil
	}
	if !isRequiredFile(fileName) {
		return &models.InvalidFileError{FileName: fileName}
	}
	if mode != ModeAppend && mode != ModeReplace {
		return &models.InvalidModeError{Mode: mode}
	}

	path := filepath.Join(mb.docsPath, fileName)
	old, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("updating %s: %w", fileName, err)
	}

	updated := updateSection(string(old), section, content, mode)
	if err := writeFileAtomic(path, []byte(updated), 0o600); err != nil {
		return fmt.Errorf("updating %s: %w", fileName, err)
	}

	mb.currentTokens += len(updated) - len(old)
	if mb.currentTokens < 0 {
		mb.currentTokens = 0
	}
	return nil
}

// ReadFile returns the content of one of the required files.
func (mb *MemoryBank) ReadFile(fileName string) (string, error) {
	if !isRequiredFile(fileName) {
		return "", &models.InvalidFileError{FileName: fileName}
	}
	data, err := os.ReadFile(filepath.Join(mb.docsPath, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", &models.NotFoundError{Kind: "file", Name: fileName}
		}
		return "", fmt.Errorf("reading %s: %w", fileName, err)
	}
	return string(data), nil
}

// CheckTokenLimit reports whether the running counter has reached the
// cap. Advisory only; it never blocks a write.
func (mb *MemoryBank) CheckTokenLimit() bool {
	return mb.currentTokens >= mb.maxTokens
}

// Reset deletes every required file, zeroes the counter, and
// deactivates the bank. Initialize must be called again before the bank
// can be used.
func (mb *MemoryBank) Reset() error {
	for _, name := range RequiredFiles {
		path := filepath.Join(mb.docsPath, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("resetting memory bank: removing %s: %w", name, err)
		}
	}
	mb.currentTokens = 0
	mb.active = false
	return nil
}

func isRequiredFile(name string) bool {
	for _, f := range RequiredFiles {
		if f == name {
			return true
		}
	}
	return false
}

// fileTitle derives a display title from a camelCase file name:
// "productContext.md" becomes "Product Context".
func fileTitle(fileName string) string {
	base := strings.TrimSuffix(fileName, ".md")
	var b strings.Builder
	for i, r := range base {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// updateSection locates the "## <section>" block in doc and applies the
// update. The scan is line-oriented: the header must be an entire line,
// and the block runs until the next line starting with "## " or end of
// file. Operating on whole lines keeps sibling sections byte-identical
// and avoids mistaking "## " inside block content offsets for a header
// when matching a section whose name prefixes another.
func updateSection(doc, section, content, mode string) string {
	header := "## " + section
	lines := strings.Split(doc, "\n")

	start := -1
	for i, line := range lines {
		if line == header {
			start = i
			break
		}
	}

	if start == -1 {
		// Section absent: append a new block regardless of mode.
		trimmed := strings.TrimRight(doc, "\n")
		if trimmed == "" {
			return header + "\n" + content + "\n"
		}
		return trimmed + "\n\n" + header + "\n" + content + "\n"
	}

	end := len(lines)
	for j := start + 1; j < len(lines); j++ {
		if strings.HasPrefix(lines[j], "## ") {
			end = j
			break
		}
	}

	block := lines[start:end]
	// Drop trailing blank lines of the block; separators are re-added below.
	for len(block) > 0 && block[len(block)-1] == "" {
		block = block[:len(block)-1]
	}

	var newBlock []string
	switch mode {
	case ModeAppend:
		newBlock = append(newBlock, block...)
		newBlock = append(newBlock, strings.Split(content, "\n")...)
	case ModeReplace:
		newBlock = append(newBlock, header)
		newBlock = append(newBlock, strings.Split(content, "\n")...)
	}

	result := make([]string, 0, len(lines))
	result = append(result, lines[:start]...)
	result = append(result, newBlock...)
	if end < len(lines) {
		// Blank line before the next section header.
		result = append(result, "")
		result = append(result, lines[end:]...)
	} else {
		// Terminate the file with a newline.
		result = append(result, "")
	}
	return strings.Join(result, "\n")
}
