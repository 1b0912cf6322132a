package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taskbuddy/internal/models"
	"taskbuddy/internal/parser"
	"taskbuddy/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show a task's full details",
	Long: `Show a task's details, including its description, tags, and first
attachment. Use --save to write the attachment to a file.`,
	Args: cobra.ExactArgs(1),
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

		savePath, _ := cmd.Flags().GetString("save")
		renderTaskDetails(os.Stdout, app.Store, task, savePath)
	},
}

// renderTaskDetails prints the task and fetches its first attachment
// from the object store.
func renderTaskDetails(w io.Writer, store storage.ObjectStore, task *models.Task, savePath string) {
	fmt.Fprintf(w, "%s  %s\n", shortID(task.ID), task.Title)
	fmt.Fprintf(w, "  Status:   %s\n", task.Status)
	fmt.Fprintf(w, "  Category: %s\n", task.Category)
	if task.Description != "" {
		fmt.Fprintf(w, "  Description: %s\n", task.Description)
	}
	if !task.DueDate.IsZero() {
		fmt.Fprintf(w, "  Due: %s\n", parser.FormatDueDate(task.DueDate))
	}
	if tags := task.TagNames(); len(tags) > 0 {
		fmt.Fprintf(w, "  Tags: %s\n", strings.Join(tags, ", "))
	}

	if len(task.Attachments) == 0 {
		return
	}
	object := task.Attachments[0].FileURL
	data, err := store.Download(storage.BucketTaskAttachments, object)
	if err != nil {
		// The link row survives a lost blob; the view degrades.
		fmt.Fprintf(w, "  Attachment: %s (unavailable: %v)\n", object, err)
		return
	}
	fmt.Fprintf(w, "  Attachment: %s (%d bytes)\n", object, len(data))

	if savePath != "" {
		if err := os.WriteFile(savePath, data, 0644); err != nil {
			fmt.Fprintf(w, "  Error saving attachment: %v\n", err)
			return
		}
		fmt.Fprintf(w, "  Saved attachment to %s\n", savePath)
	}
}

func init() {
	showCmd.Flags().StringP("save", "o", "", "Write the first attachment to this path")
}
