package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tosin2013/prompt-manager/internal/observability"
	"github.com/tosin2013/prompt-manager/internal/storage"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Debugging guidance for a source file",
	Long: `These commands ask the configured responder for debugging guidance
on a single file and record the answer in the memory bank's
techContext.md, one section per file, so later sessions can pick up
where the analysis left off.`,
}

// runDebugGuidance runs one guidance operation, prints the result under
// heading, and replaces the matching techContext.md section when the
// bank is initialized.
func runDebugGuidance(cmd *cobra.Command, file, heading, sectionPrefix string,
	op func(ctx context.Context, file string) (string, error)) error {

	result, err := op(cmd.Context(), file)
	if err != nil {
		return err
	}

	recordEvent(observability.EventLLMPrompted, "debug "+strings.ToLower(heading), map[string]any{"file": file})

	fmt.Printf("%s for %s:\n%s\n", heading, file, result)

	if Bank.IsActive() {
		section := fmt.Sprintf("%s: %s", sectionPrefix, file)
		content := fmt.Sprintf("%s:\n%s", heading, result)
		if err := Bank.UpdateContext("techContext.md", section, content, storage.ModeReplace); err != nil {
			return err
		}
		fmt.Printf("Recorded in techContext.md under %q.\n", section)
	}
	return nil
}

var debugAnalyzeFileCmd = &cobra.Command{
	Use:   "analyze-file <file>",
	Short: "Analyze a file for potential issues",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDebugGuidance(cmd, args[0], "Analysis", "Analysis", Debug.AnalyzeFile)
	},
}

var debugRootCauseCmd = &cobra.Command{
	Use:   "find-root-cause <file>",
	Short: "Find the root cause of a failure involving a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDebugGuidance(cmd, args[0], "Root cause", "Root Cause", Debug.FindRootCause)
	},
}

var debugIterativeFixCmd = &cobra.Command{
	Use:   "iterative-fix <file>",
	Short: "Propose an iterative sequence of fixes for a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDebugGuidance(cmd, args[0], "Fix plan", "Fixes", joinLines(Debug.IterativeFix))
	},
}

var debugTestRoadmapCmd = &cobra.Command{
	Use:   "test-roadmap <file>",
	Short: "Generate a test roadmap for a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDebugGuidance(cmd, args[0], "Test roadmap", "Test Roadmap", joinLines(Debug.TestRoadmap))
	},
}

var debugDependenciesCmd = &cobra.Command{
	Use:   "analyze-dependencies <file>",
	Short: "Analyze the dependencies of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDebugGuidance(cmd, args[0], "Dependencies", "Dependencies", Debug.AnalyzeDependencies)
	},
}

var debugTraceErrorCmd = &cobra.Command{
	Use:   "trace-error <file>",
	Short: "Trace an error path through a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDebugGuidance(cmd, args[0], "Error trace", "Error Trace", Debug.TraceError)
	},
}

// joinLines adapts a list-returning guidance operation to the string
// shape runDebugGuidance expects, one item per line.
func joinLines(op func(ctx context.Context, file string) ([]string, error)) func(context.Context, string) (string, error) {
	return func(ctx context.Context, file string) (string, error) {
		lines, err := op(ctx, file)
		if err != nil {
			return "", err
		}
		return strings.Join(lines, "\n"), nil
	}
}

func init() {
	debugCmd.AddCommand(debugAnalyzeFileCmd)
	debugCmd.AddCommand(debugRootCauseCmd)
	debugCmd.AddCommand(debugIterativeFixCmd)
	debugCmd.AddCommand(debugTestRoadmapCmd)
	debugCmd.AddCommand(debugDependenciesCmd)
	debugCmd.AddCommand(debugTraceErrorCmd)
	rootCmd.AddCommand(debugCmd)
}
