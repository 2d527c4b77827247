package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutputPath string

var exportTasksCmd = &cobra.Command{
	Use:   "export-tasks",
	Short: "Export all tasks to a JSON or YAML file",
	Long: `Export the project name and every task record to a single document.
The format follows the output extension: .yaml/.yml produce YAML,
everything else JSON.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, format, err := Export.Export(Config.ProjectName, exportOutputPath)
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportOutputPath, data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", exportOutputPath, err)
		}
		fmt.Printf("Exported tasks to %s (%s)\n", exportOutputPath, format)
		return nil
	},
}

func init() {
	exportTasksCmd.Flags().StringVar(&exportOutputPath, "output", "", "Output file path (required)")
	_ = exportTasksCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(exportTasksCmd)
}
