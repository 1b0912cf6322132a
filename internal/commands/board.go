package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskbuddy/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive task board",
	Long: `Open the three-column task board. Pick a task up, carry it within
its column to reorder, or into another column to change its status.
Filters narrow the board the same way they narrow 'taskbuddy ls'.`,
	Run: func(cmd *cobra.Command, args []string) {
		user := requireUser()
		if user == nil {
			return
		}

		opts, err := queryOptionsFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := tui.RunBoard(app.Tasks, app.Engine, app.Bus, user.ID, opts); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}

func init() {
	addFilterFlags(boardCmd)
}
