package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tosin2013/prompt-manager/internal/storage"
	"github.com/tosin2013/prompt-manager/pkg/models"
)

var (
	listStatusFilter string
	listSortBy       string
	listPick         bool
)

// Status colours for the list output.
var statusStyles = map[models.TaskStatus]lipgloss.Style{
	models.StatusPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	models.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	models.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	models.StatusFailed:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	models.StatusBlocked:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

var listHeaderStyle = lipgloss.NewStyle().Bold(true)

var listTasksCmd = &cobra.Command{
	Use:   "list-tasks",
	Short: "List tasks",
	Long: `List tasks, optionally filtered by exact status and sorted by
priority, created, or updated (ascending).

With --pick, an interactive picker is shown and the chosen task's full
record is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := Store.List(storage.ListOptions{
			Status: models.TaskStatus(listStatusFilter),
			SortBy: listSortBy,
		})
		if err != nil {
			return err
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		if listPick {
			title, err := pickTask(tasks)
			if err != nil {
				return err
			}
			if title == "" {
				return nil
			}
			task, err := Store.Get(title)
			if err != nil {
				return err
			}
			printTask(task)
			return nil
		}

		fmt.Println(listHeaderStyle.Render(fmt.Sprintf("%-30s %-12s %-8s %s", "TITLE", "STATUS", "PRI", "DESCRIPTION")))
		for _, task := range tasks {
			status := string(task.Status)
			if style, ok := statusStyles[task.Status]; ok {
				status = style.Render(fmt.Sprintf("%-12s", status))
			} else {
				status = fmt.Sprintf("%-12s", status)
			}
			fmt.Printf("%-30s %s %-8s %s\n", truncate(task.Title, 30), status, task.Priority, truncate(task.Description, 40))
		}
		return nil
	},
}

// truncate shortens s to max runes, ending with an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func init() {
	listTasksCmd.Flags().StringVar(&listStatusFilter, "status", "", "Filter by status (pending, in_progress, done, failed, blocked)")
	listTasksCmd.Flags().StringVar(&listSortBy, "sort-by", "", "Sort by: priority, created, or updated")
	listTasksCmd.Flags().BoolVar(&listPick, "pick", false, "Pick a task interactively and show its record")
	_ = listTasksCmd.RegisterFlagCompletionFunc("status", completeStatuses)
	rootCmd.AddCommand(listTasksCmd)
}
