package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/tosin2013/prompt-manager/internal/observability"
	"github.com/tosin2013/prompt-manager/internal/storage"
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Manage the memory bank (update, show, tokens, reset)",
	Long: `The memory bank is a directory of fixed markdown files holding
"## <section>" blocks, used as a persistent scratchpad across
sessions: productContext.md, activeContext.md, systemPatterns.md,
techContext.md, and progress.md.`,
}

var memoryUpdateMode string

var memoryUpdateCmd = &cobra.Command{
	Use:   "update <file> <section> <content>",
	Short: "Append to or replace a section of a memory bank file",
	Long: `Update the "## <section>" block of a memory bank file. In append
mode the content is added to the end of the block; in replace mode the
whole block is rewritten. A missing section is appended to the end of
the file in either mode.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !Bank.IsActive() {
			fmt.Println("Memory bank is not initialized; run 'pm init' first.")
			return nil
		}

		if err := Bank.UpdateContext(args[0], args[1], args[2], memoryUpdateMode); err != nil {
			return err
		}

		recordEvent(observability.EventMemoryUpdated, fmt.Sprintf("%s section %q updated", args[0], args[1]), map[string]any{
			"file":    args[0],
			"section": args[1],
			"mode":    memoryUpdateMode,
		})

		fmt.Printf("Updated section %q of %s (%s)\n", args[1], args[0], memoryUpdateMode)
		if Bank.CheckTokenLimit() {
			fmt.Printf("Warning: memory bank is at its token limit (%d/%d)\n",
				Bank.CurrentTokens(), Bank.MaxTokens())
		}
		return nil
	},
}

var memoryShowRaw bool

var memoryShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Render a memory bank file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := Bank.ReadFile(args[0])
		if err != nil {
			return err
		}

		if memoryShowRaw {
			fmt.Print(content)
			return nil
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			// Fall back to raw output when the terminal renderer
			// cannot be built.
			fmt.Print(content)
			return nil
		}
		rendered, err := r.Render(content)
		if err != nil {
			fmt.Print(content)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

var memoryTokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Show the memory bank's token counter",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Tokens: %d / %d\n", Bank.CurrentTokens(), Bank.MaxTokens())
		if Bank.CheckTokenLimit() {
			fmt.Println("The memory bank is at its limit (advisory; writes are not blocked).")
		}
		return nil
	},
}

var memoryResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all memory bank files and clear the token counter",
	Long: `Delete every memory bank file and zero the token counter. The bank
must be re-initialized with 'pm init' before it can be used again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := Bank.Reset(); err != nil {
			return err
		}
		fmt.Println("Memory bank reset.")
		return nil
	},
}

// completeMemoryFiles returns the required file names for completion.
func completeMemoryFiles(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return storage.RequiredFiles, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	memoryUpdateCmd.Flags().StringVar(&memoryUpdateMode, "mode", storage.ModeAppend, "Update mode: append or replace")
	memoryUpdateCmd.ValidArgsFunction = completeMemoryFiles

	memoryShowCmd.Flags().BoolVar(&memoryShowRaw, "raw", false, "Print the raw markdown without rendering")
	memoryShowCmd.ValidArgsFunction = completeMemoryFiles

	memoryCmd.AddCommand(memoryUpdateCmd)
	memoryCmd.AddCommand(memoryShowCmd)
	memoryCmd.AddCommand(memoryTokensCmd)
	memoryCmd.AddCommand(memoryResetCmd)
	rootCmd.AddCommand(memoryCmd)
}
