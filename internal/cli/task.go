package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tosin2013/prompt-manager/internal/observability"
	"github.com/tosin2013/prompt-manager/internal/storage"
	"github.com/tosin2013/prompt-manager/pkg/models"
)

var (
	addTaskTemplate string
	addTaskPriority string
	addTaskDue      string
)

var addTaskCmd = &cobra.Command{
	Use:   "add-task <title> <description>",
	Short: "Add a new task",
	Long: `Add a new task with the given title and description.

The title is the task's unique key. Priority defaults to medium; use
--priority low|medium|high to override. An optional --due date must be
an ISO-8601 date (YYYY-MM-DD).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		task := models.NewTask(args[0], args[1])
		task.PromptTemplate = addTaskTemplate
		if addTaskPriority != "" {
			task.Priority = models.Priority(addTaskPriority)
		}
		task.DueDate = addTaskDue

		created, err := Store.Add(task)
		if err != nil {
			return err
		}

		recordEvent(observability.EventTaskCreated, fmt.Sprintf("task %q created", created.Title), map[string]any{
			"title":    created.Title,
			"priority": string(created.Priority),
		})

		fmt.Printf("Added task %q\n", created.Title)
		fmt.Printf("  Status:   %s\n", created.Status)
		fmt.Printf("  Priority: %s\n", created.Priority)
		if created.DueDate != "" {
			fmt.Printf("  Due:      %s\n", created.DueDate)
		}
		return nil
	},
}

var (
	boltFramework    string
	boltUIComponents []string
	boltPriority     string
)

var addBoltTaskCmd = &cobra.Command{
	Use:   "add-bolt-task <title> <description>",
	Short: "Add a web-app scaffolding task",
	Long: `Add a bolt task: a task carrying the framework and UI component
fields used to build web-app scaffolding prompts. The record is stored
alongside regular tasks and shows up in list-tasks.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bt := models.NewBoltTask(args[0], args[1], boltFramework)
		bt.UIComponents = boltUIComponents
		if boltPriority != "" {
			bt.Priority = models.Priority(boltPriority)
		}
		if _, err := Store.AddBolt(bt); err != nil {
			return err
		}

		recordEvent(observability.EventTaskCreated, fmt.Sprintf("bolt task %q created", bt.Title), map[string]any{
			"title":     bt.Title,
			"framework": bt.Framework,
		})

		fmt.Printf("Added bolt task %q (%s)\n", bt.Title, bt.Framework)
		fmt.Println()
		fmt.Println(bt.ToBoltPrompt())
		return nil
	},
}

var showTaskCmd = &cobra.Command{
	Use:   "show-task <title>",
	Short: "Show a task's full record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := Store.GetBolt(args[0])
		if err != nil {
			return err
		}
		printTask(&rec.Task)
		if rec.IsBolt() {
			fmt.Printf("Framework:   %s\n", rec.Framework)
			if len(rec.UIComponents) > 0 {
				fmt.Printf("Components:  %s\n", strings.Join(rec.UIComponents, ", "))
			}
		}
		return nil
	},
}

var (
	updateTaskDescription string
	updateTaskTemplate    string
	updateTaskPriority    string
	updateTaskDue         string
)

var updateTaskCmd = &cobra.Command{
	Use:   "update-task <title>",
	Short: "Update a task's fields",
	Long: `Update one or more fields of an existing task. Only the flags you
pass are changed; everything else is left as it was.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var updates storage.TaskUpdate
		if cmd.Flags().Changed("description") {
			updates.Description = &updateTaskDescription
		}
		if cmd.Flags().Changed("template") {
			updates.Template = &updateTaskTemplate
		}
		if cmd.Flags().Changed("priority") {
			p := models.Priority(updateTaskPriority)
			updates.Priority = &p
		}
		if cmd.Flags().Changed("due") {
			updates.DueDate = &updateTaskDue
		}

		task, err := Store.Update(args[0], updates)
		if err != nil {
			return err
		}

		recordEvent(observability.EventTaskUpdated, fmt.Sprintf("task %q updated", task.Title), map[string]any{
			"title": task.Title,
		})

		fmt.Printf("Updated task %q\n", task.Title)
		return nil
	},
}

var updateProgressNote string

var updateProgressCmd = &cobra.Command{
	Use:   "update-progress <title> <status>",
	Short: "Update a task's status",
	Long: `Set a task's status to one of: pending, in_progress, done, failed,
blocked. Any status may follow any other. An optional --note is
appended to the task's notes with a timestamp.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := Store.UpdateStatus(args[0], models.TaskStatus(args[1]), updateProgressNote)
		if err != nil {
			return err
		}

		recordEvent(observability.EventTaskStatusChanged, fmt.Sprintf("task %q -> %s", task.Title, task.Status), map[string]any{
			"title":  task.Title,
			"status": string(task.Status),
		})

		fmt.Printf("Task %q is now %s\n", task.Title, task.Status)
		return nil
	},
}

var deleteTaskCmd = &cobra.Command{
	Use:   "delete-task <title>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := Store.Delete(args[0]); err != nil {
			return err
		}

		recordEvent(observability.EventTaskDeleted, fmt.Sprintf("task %q deleted", args[0]), map[string]any{
			"title": args[0],
		})

		fmt.Printf("Deleted task %q\n", args[0])
		return nil
	},
}

var addDependencyCmd = &cobra.Command{
	Use:   "add-dependency <title> <dependency>",
	Short: "Record that one task depends on another",
	Long: `Record that <title> depends on <dependency>. The edge is rejected if
it would create a cycle in the dependency graph.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := Store.AddDependency(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Task %q now depends on %q\n", args[0], args[1])
		return nil
	},
}

// printTask writes a task's full record in a readable block.
func printTask(task *models.Task) {
	fmt.Printf("Title:       %s\n", task.Title)
	fmt.Printf("Description: %s\n", task.Description)
	fmt.Printf("Status:      %s\n", task.Status)
	fmt.Printf("Priority:    %s\n", task.Priority)
	if task.DueDate != "" {
		fmt.Printf("Due:         %s\n", task.DueDate)
	}
	if task.PromptTemplate != "" {
		fmt.Printf("Template:    %s\n", task.PromptTemplate)
	}
	if len(task.Dependencies) > 0 {
		fmt.Printf("Depends on:  %s\n", strings.Join(task.Dependencies, ", "))
	}
	fmt.Printf("Created:     %s\n", task.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated:     %s\n", task.UpdatedAt.Format("2006-01-02 15:04:05"))
	if len(task.Notes) > 0 {
		fmt.Println("Notes:")
		for _, note := range task.Notes {
			fmt.Printf("  - %s\n", note)
		}
	}
}

// completeStatuses returns valid status values for shell completion.
func completeStatuses(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"pending\tNot yet started",
		"in_progress\tActively being worked on",
		"done\tCompleted",
		"failed\tAttempted and failed",
		"blocked\tWaiting on something else",
	}, cobra.ShellCompDirectiveNoFileComp
}

// completePriorities returns valid priority values for shell completion.
func completePriorities(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"low", "medium", "high"}, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	addTaskCmd.Flags().StringVar(&addTaskTemplate, "template", "", "Prompt template with {placeholder} variables")
	addTaskCmd.Flags().StringVar(&addTaskPriority, "priority", "", "Task priority (low, medium, high)")
	addTaskCmd.Flags().StringVar(&addTaskDue, "due", "", "Due date (YYYY-MM-DD)")
	_ = addTaskCmd.RegisterFlagCompletionFunc("priority", completePriorities)

	addBoltTaskCmd.Flags().StringVar(&boltFramework, "framework", "", "Target framework (e.g. react, vue, svelte)")
	addBoltTaskCmd.Flags().StringSliceVar(&boltUIComponents, "ui-components", nil, "Comma-separated UI component names")
	addBoltTaskCmd.Flags().StringVar(&boltPriority, "priority", "", "Task priority (low, medium, high)")
	_ = addBoltTaskCmd.RegisterFlagCompletionFunc("priority", completePriorities)

	updateTaskCmd.Flags().StringVar(&updateTaskDescription, "description", "", "New description")
	updateTaskCmd.Flags().StringVar(&updateTaskTemplate, "template", "", "New prompt template")
	updateTaskCmd.Flags().StringVar(&updateTaskPriority, "priority", "", "New priority (low, medium, high)")
	updateTaskCmd.Flags().StringVar(&updateTaskDue, "due", "", "New due date (YYYY-MM-DD)")
	_ = updateTaskCmd.RegisterFlagCompletionFunc("priority", completePriorities)

	updateProgressCmd.Flags().StringVar(&updateProgressNote, "note", "", "Progress note appended to the task")

	rootCmd.AddCommand(addTaskCmd)
	rootCmd.AddCommand(addBoltTaskCmd)
	rootCmd.AddCommand(showTaskCmd)
	rootCmd.AddCommand(updateTaskCmd)
	rootCmd.AddCommand(updateProgressCmd)
	rootCmd.AddCommand(deleteTaskCmd)
	rootCmd.AddCommand(addDependencyCmd)
}
