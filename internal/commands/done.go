package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskbuddy/internal/models"
	"taskbuddy/internal/parser"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id...]",
	Short: "Mark one or more tasks as completed",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		user := requireUser()
		if user == nil {
			return
		}

		ids, ok := resolveTaskIDs(user.ID, args)
		if !ok {
			return
		}

		if err := app.Tasks.BulkUpdateStatus(ids, models.StatusCompleted); err != nil {
			fmt.Printf("Error completing tasks: %v\n", err)
			return
		}
		fmt.Printf("Marked %d task(s) as %s.\n", len(ids), models.StatusCompleted)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <task-id> <new-status>",
	Short: "Change a task's workflow status",
	Long: `Change a task's workflow status.

Statuses: todo, progress, done.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		user := requireUser()
		if user == nil {
			return
		}

		task, err := app.Tasks.FindByIDPrefix(user.ID, args[0])
		if err != nil {
			fmt.Printf("Error: task %q not found.\n", args[0])
			return
		}

		newStatus, err := parser.NormalizeStatus(args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := app.Tasks.UpdateStatus(task.ID, newStatus); err != nil {
			fmt.Printf("Error updating status: %v\n", err)
			return
		}
		fmt.Printf("Task %s is now %s: %s\n", shortID(task.ID), newStatus, task.Title)
	},
}

// resolveTaskIDs maps ID prefixes to full IDs, reporting the first
// unresolvable one.
func resolveTaskIDs(userID string, args []string) ([]string, bool) {
	var ids []string
	for _, arg := range args {
		task, err := app.Tasks.FindByIDPrefix(userID, arg)
		if err != nil {
			fmt.Printf("Error: task %q not found.\n", arg)
			return nil, false
		}
		ids = append(ids, task.ID)
	}
	return ids, true
}
