package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskbuddy/internal/parser"
	"taskbuddy/internal/reorder"
)

var moveCmd = &cobra.Command{
	Use:   "mv <task-id> [target-task-id]",
	Short: "Move a task onto another task or into another column",
	Long: `Move a task, the command-line equivalent of a drag and drop.

Dropping on another task in the same column reorders the column;
dropping on a task in a different column changes status. Use --to to
drop on a column itself (e.g. an empty one).

Examples:
  taskbuddy mv 3f2a 9c81       - drop task 3f2a onto task 9c81
  taskbuddy mv 3f2a --to done  - drop task 3f2a on the Completed column`,
	Args: cobra.RangeArgs(1, 2),
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

		gesture := reorder.Gesture{TaskID: task.ID, Target: reorder.TargetNone}

		toColumn, _ := cmd.Flags().GetString("to")
		switch {
		case toColumn != "":
			status, err := parser.NormalizeStatus(toColumn)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			gesture.Target = reorder.TargetColumn
			gesture.ColumnStatus = status
		case len(args) == 2:
			over, err := app.Tasks.FindByIDPrefix(user.ID, args[1])
			if err != nil {
				fmt.Printf("Error: task %q not found.\n", args[1])
				return
			}
			gesture.Target = reorder.TargetTask
			gesture.OverTaskID = over.ID
		default:
			fmt.Println("Error: give a target task id or --to <status>.")
			return
		}

		opts, err := queryOptionsFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		// The gesture operates on the currently visible list: active
		// filters narrow what gets renumbered.
		visible, err := app.Tasks.FetchTasks(user.ID, opts)
		if err != nil {
			fmt.Printf("Error fetching tasks: %v\n", err)
			return
		}

		if _, err := app.Engine.Apply(user.ID, visible, gesture, opts); err != nil {
			fmt.Printf("Error moving task: %v\n", err)
			return
		}
		fmt.Printf("Moved task %s: %s\n", shortID(task.ID), task.Title)
	},
}

func init() {
	moveCmd.Flags().StringP("to", "t", "", "Target column: todo, progress, done")
	addFilterFlags(moveCmd)
}
