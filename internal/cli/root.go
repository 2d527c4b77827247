package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// projectDirFlag holds the global --project-dir flag value.
var projectDirFlag string

var rootCmd = &cobra.Command{
	Use:   "pm",
	Short: "prompt-manager - a development workflow assistant",
	Long: `prompt-manager (pm) is a local development workflow assistant: a task
tracker backed by YAML, a markdown memory bank that persists context
across sessions, and prompt templates for LLM-driven suggestions.

All state lives in plain files under a project directory, so it can be
inspected, versioned, and edited by hand.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if projectDirFlag != "" && projectDirFlag != BasePath && Reinit != nil {
			return Reinit(projectDirFlag)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pm %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectDirFlag, "project-dir", "", "Project directory (default: nearest directory containing config.yaml, else cwd)")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
