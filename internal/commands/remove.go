package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "rm [task-id...]",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete one or more tasks",
	Long: `Delete tasks by ID. Multiple IDs run as a bulk delete: each task
is removed in order and one failure does not stop the rest.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		user := requireUser()
		if user == nil {
			return
		}

		ids, ok := resolveTaskIDs(user.ID, args)
		if !ok {
			return
		}

		if err := app.Tasks.BulkDelete(ids); err != nil {
			fmt.Printf("Error deleting tasks: %v\n", err)
			return
		}
		fmt.Printf("Deleted %d task(s).\n", len(ids))
	},
}
