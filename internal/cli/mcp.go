package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tosin2013/prompt-manager/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve tasks and the memory bank over MCP on stdio",
	Long: `Expose the task store and memory bank as MCP tools over a stdio
transport, so MCP-aware editors and agents can drive the same state the
CLI does. The process blocks until the client disconnects.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := mcp.NewServer(Store, Bank, appVersion)
		fmt.Fprintln(os.Stderr, "MCP server listening on stdio")
		return srv.Run(cmd.Context())
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
