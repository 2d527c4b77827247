package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Inspect the surrounding git repository",
}

var repoAnalyzePath string

var repoAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Summarize the git repository (branch, commits, tracked files)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := repoAnalyzePath
		if path == "" {
			path = BasePath
		}

		stats, err := Analyzer.Analyze(cmd.Context(), path)
		if err != nil {
			return err
		}

		fmt.Printf("Repository:  %s\n", stats.Root)
		fmt.Printf("Branch:      %s\n", stats.Branch)
		fmt.Printf("Commits:     %d\n", stats.Commits)
		fmt.Printf("Tracked:     %d files\n", stats.TrackedFiles)
		fmt.Printf("Uncommitted: %d files\n", stats.UncommittedFiles)
		return nil
	},
}

func init() {
	repoAnalyzeCmd.Flags().StringVar(&repoAnalyzePath, "path", "", "Repository path (defaults to the project directory)")
	repoCmd.AddCommand(repoAnalyzeCmd)
	rootCmd.AddCommand(repoCmd)
}
