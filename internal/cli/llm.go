package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tosin2013/prompt-manager/internal/observability"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Prompt-driven helpers backed by the configured responder",
	Long: `These commands format a prompt template with project context and
hand it to the configured responder. The default responder is a
deterministic offline stub; wiring a real model provider behind the
same interface changes the answers, not the commands.`,
}

var llmSuggestCmd = &cobra.Command{
	Use:   "suggest-improvements <file>",
	Short: "Suggest improvements for a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		suggestions, err := LLM.SuggestImprovements(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		recordEvent(observability.EventLLMPrompted, "suggest-improvements", map[string]any{"file": args[0]})

		fmt.Printf("Suggestions for %s:\n", args[0])
		for _, s := range suggestions {
			fmt.Printf("  - %s\n", s)
		}
		return nil
	},
}

var llmAnalyzeCmd = &cobra.Command{
	Use:   "analyze-impact <file>",
	Short: "Analyze the impact of changing a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		analysis, err := LLM.AnalyzeImpact(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		recordEvent(observability.EventLLMPrompted, "analyze-impact", map[string]any{"file": args[0]})

		fmt.Println(analysis)
		return nil
	},
}

var llmBoltFramework string

var llmGenerateBoltCmd = &cobra.Command{
	Use:   "generate-bolt-tasks <file>",
	Short: "Generate bolt.new task descriptions from a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := LLM.GenerateBoltTasks(cmd.Context(), args[0], llmBoltFramework)
		if err != nil {
			return err
		}

		recordEvent(observability.EventLLMPrompted, "generate-bolt-tasks", map[string]any{
			"file":      args[0],
			"framework": llmBoltFramework,
		})

		fmt.Printf("Generated %d bolt.new task(s) for %s:\n", len(tasks), args[0])
		for i, t := range tasks {
			fmt.Printf("  %d. %s\n", i+1, t)
		}
		return nil
	},
}

var llmGenerateCommandsCmd = &cobra.Command{
	Use:   "generate-commands <file>",
	Short: "Generate shell commands for working with a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		commands, err := LLM.GenerateCommands(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		recordEvent(observability.EventLLMPrompted, "generate-commands", map[string]any{"file": args[0]})

		for _, c := range commands {
			fmt.Println(c)
		}
		return nil
	},
}

var llmPRTitle string

var llmCreatePRCmd = &cobra.Command{
	Use:   "create-pr <file>",
	Short: "Draft a pull request title and body for a source file change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := llmPRTitle
		if title == "" {
			title = "Update " + filepath.Base(args[0])
		}
		result, err := LLM.CreatePR(cmd.Context(), args[0], title)
		if err != nil {
			return err
		}

		recordEvent(observability.EventLLMPrompted, "create-pr", map[string]any{
			"file":  args[0],
			"title": result.Title,
		})

		fmt.Printf("Title:  %s\n", result.Title)
		fmt.Printf("Status: %s\n", result.Status)
		fmt.Println()
		fmt.Println(result.Body)
		return nil
	},
}

func init() {
	llmGenerateBoltCmd.Flags().StringVar(&llmBoltFramework, "framework", "bolt.new", "Target framework for the generated tasks")
	llmCreatePRCmd.Flags().StringVar(&llmPRTitle, "title", "", "Pull request title (derived from the file when empty)")

	llmCmd.AddCommand(llmSuggestCmd)
	llmCmd.AddCommand(llmAnalyzeCmd)
	llmCmd.AddCommand(llmGenerateBoltCmd)
	llmCmd.AddCommand(llmGenerateCommandsCmd)
	llmCmd.AddCommand(llmCreatePRCmd)
	rootCmd.AddCommand(llmCmd)
}
