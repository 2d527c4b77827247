package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tosin2013/prompt-manager/internal/storage"
)

var initPathFlag string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a project directory",
	Long: `Initialize a prompt-manager project: write a default config.yaml,
create an empty tasks.yaml, and set up the memory bank's markdown
files.

Re-running init on an existing project is a no-op; existing files are
never overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := initPathFlag
		if path == "" {
			path = BasePath
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", path, err)
		}

		if err := os.MkdirAll(abs, 0o750); err != nil {
			return fmt.Errorf("creating project directory: %w", err)
		}

		configPath := filepath.Join(abs, "config.yaml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			content := fmt.Sprintf(
				"project:\n  name: %s\nmemory:\n  dir: cline_docs\n  max_tokens: %d\nexport:\n  format: json\n",
				filepath.Base(abs), storage.DefaultMaxTokens)
			if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
				return fmt.Errorf("writing config.yaml: %w", err)
			}
		}

		// Re-wire services against the initialized directory so the
		// store and bank below act on it.
		if Reinit != nil {
			if err := Reinit(abs); err != nil {
				return err
			}
		}

		if _, err := os.Stat(filepath.Join(abs, "tasks.yaml")); os.IsNotExist(err) {
			if err := Store.Save(); err != nil {
				return err
			}
		}

		if err := Bank.Initialize(); err != nil {
			return err
		}

		fmt.Printf("Initialized project at %s\n", abs)
		fmt.Printf("  Config:      config.yaml\n")
		fmt.Printf("  Tasks:       tasks.yaml\n")
		fmt.Printf("  Memory bank: %s/\n", Config.MemoryDir)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initPathFlag, "path", "", "Directory to initialize (default: resolved project directory)")
	rootCmd.AddCommand(initCmd)
}
