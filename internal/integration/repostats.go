package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// RepoStats summarizes a git repository for the repo-analysis commands.
type RepoStats struct {
	Root             string
	Branch           string
	Commits          int
	TrackedFiles     int
	UncommittedFiles int
}

// RepoAnalyzer inspects a git repository with read-only git calls.
type RepoAnalyzer interface {
	Analyze(ctx context.Context, repoPath string) (*RepoStats, error)
}

type repoAnalyzer struct {
	executor CLIExecutor
}

// NewRepoAnalyzer creates a RepoAnalyzer using the given executor for
// git invocations.
func NewRepoAnalyzer(executor CLIExecutor) RepoAnalyzer {
	return &repoAnalyzer{executor: executor}
}

// Analyze collects branch, commit count, tracked file count, and
// uncommitted change count for the repository containing repoPath.
// Only rev-parse, log, ls-files, and status are used; the repository is
// never modified.
func (a *repoAnalyzer) Analyze(ctx context.Context, repoPath string) (*RepoStats, error) {
	if !a.executor.Available("git") {
		return nil, fmt.Errorf("analyzing repo: git binary not found on PATH")
	}
	if _, err := os.Stat(repoPath); err != nil {
		return nil, fmt.Errorf("analyzing repo: %w", err)
	}

	root, err := a.git(ctx, repoPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, err
	}

	stats := &RepoStats{Root: filepath.Clean(root)}

	if branch, err := a.git(ctx, repoPath, "rev-parse", "--abbrev-ref", "HEAD"); err == nil {
		stats.Branch = branch
	}
	if out, err := a.git(ctx, repoPath, "rev-list", "--count", "HEAD"); err == nil {
		stats.Commits, _ = strconv.Atoi(out)
	}
	if out, err := a.git(ctx, repoPath, "ls-files"); err == nil && out != "" {
		stats.TrackedFiles = len(strings.Split(out, "\n"))
	}
	if out, err := a.git(ctx, repoPath, "status", "--porcelain"); err == nil && out != "" {
		stats.UncommittedFiles = len(strings.Split(out, "\n"))
	}

	return stats, nil
}

// git runs a single git command in dir and returns its trimmed stdout.
// A non-zero exit (e.g. not a repository, no commits yet) is surfaced
// as an error carrying git's stderr.
func (a *repoAnalyzer) git(ctx context.Context, dir string, args ...string) (string, error) {
	result, err := a.executor.Exec(ctx, dir, "git", args...)
	if err != nil {
		return "", fmt.Errorf("analyzing repo: %w", err)
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf("analyzing repo: git %s: %s", strings.Join(args, " "), result.Stderr)
	}
	return strings.TrimSpace(result.Stdout), nil
}
