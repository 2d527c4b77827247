// Package integration wraps the external collaborators prompt-manager
// shells out to. The only one today is the git binary, used read-only
// for repository analysis.
package integration

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CLIExecResult captures the outcome of an external CLI invocation.
type CLIExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CLIExecutor defines the interface for invoking external CLI tools.
type CLIExecutor interface {
	Exec(ctx context.Context, dir, cli string, args ...string) (*CLIExecResult, error)
	Available(cli string) bool
}

type cliExecutor struct{}

// NewCLIExecutor creates a new CLIExecutor.
func NewCLIExecutor() CLIExecutor {
	return &cliExecutor{}
}

// Available reports whether cli can be found on PATH.
func (e *cliExecutor) Available(cli string) bool {
	_, err := exec.LookPath(cli)
	return err == nil
}

// Exec runs cli with args in dir and captures its output. A non-zero
// exit code is returned in the result, not as an error; errors are
// reserved for failures to start the process at all.
func (e *cliExecutor) Exec(ctx context.Context, dir, cli string, args ...string) (*CLIExecResult, error) {
	if _, err := exec.LookPath(cli); err != nil {
		return nil, fmt.Errorf("executing %s: %w", cli, err)
	}

	cmd := exec.CommandContext(ctx, cli, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &CLIExecResult{
		Stdout: strings.TrimRight(stdout.String(), "\n"),
		Stderr: strings.TrimRight(stderr.String(), "\n"),
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("executing %s: %w", cli, err)
	}
	return result, nil
}
