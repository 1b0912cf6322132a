package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// maxActivityEntries caps how many log entries a task view shows.
const maxActivityEntries = 10

var activityCmd = &cobra.Command{
	Use:   "activity <task-id>",
	Short: "Show a task's activity log",
	Long:  "Show the most recent activity entries for a task, newest first.",
	Args:  cobra.ExactArgs(1),
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

		logs, err := app.Tasks.ActivityLogs(task.ID)
		if err != nil {
			// Log reads fail quietly into an empty view.
			logs = nil
		}
		if len(logs) > maxActivityEntries {
			logs = logs[:maxActivityEntries]
		}

		fmt.Printf("Activity for %s: %s\n\n", shortID(task.ID), task.Title)
		if len(logs) == 0 {
			fmt.Println("No activity recorded.")
			return
		}
		for _, entry := range logs {
			fmt.Printf("%s  %s\n", entry.CreatedAt.Format("2006-01-02 15:04"), entry.Action)
			if entry.Description != "" {
				fmt.Printf("    %s\n", entry.Description)
			}
		}
	},
}
