package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskbuddy/internal/db"
	"taskbuddy/internal/parser"
	"taskbuddy/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit an existing task",
	Long: `Edit an existing task.

With only an ID, opens the interactive form pre-populated with the
current task data. Individual flags update fields directly.`,
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

		if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("desc") &&
			!cmd.Flags().Changed("category") && !cmd.Flags().Changed("status") &&
			!cmd.Flags().Changed("due") && !cmd.Flags().Changed("attach") {
			prefilled := map[string]string{
				"title":       task.Title,
				"description": task.Description,
				"category":    task.Category,
				"status":      task.Status,
			}
			if !task.DueDate.IsZero() {
				prefilled["due_date"] = task.DueDate.Format("02/01/2006")
			}
			if err := tui.RunTaskForm(app.Tasks, user.ID, task.ID, prefilled); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		req := db.SaveTaskRequest{
			TaskID:      task.ID,
			UserID:      user.ID,
			Title:       task.Title,
			Description: task.Description,
			Category:    task.Category,
			DueDate:     task.DueDate,
			Status:      task.Status,
			Position:    &task.Position,
		}

		if title, _ := cmd.Flags().GetString("title"); cmd.Flags().Changed("title") {
			req.Title = title
		}
		if desc, _ := cmd.Flags().GetString("desc"); cmd.Flags().Changed("desc") {
			req.Description = desc
		}
		if category, _ := cmd.Flags().GetString("category"); cmd.Flags().Changed("category") {
			normalized, err := parser.NormalizeCategory(category)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			req.Category = normalized
		}
		if status, _ := cmd.Flags().GetString("status"); cmd.Flags().Changed("status") {
			normalized, err := parser.NormalizeStatus(status)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			req.Status = normalized
		}
		if due, _ := cmd.Flags().GetString("due"); cmd.Flags().Changed("due") {
			newDue, err := dueFromFlag(due)
			if err != nil {
				fmt.Printf("Error parsing due date: %v\n", err)
				return
			}
			req.DueDate = newDue
		}
		if attachPath, _ := cmd.Flags().GetString("attach"); cmd.Flags().Changed("attach") {
			data, err := os.ReadFile(attachPath)
			if err != nil {
				fmt.Printf("Error reading attachment: %v\n", err)
				return
			}
			req.AttachmentName = filepath.Base(attachPath)
			req.Attachment = data
		}

		if _, err := app.Tasks.SaveTask(req); err != nil {
			fmt.Printf("Error saving task: %v\n", err)
			return
		}
		fmt.Printf("Updated task %s.\n", shortID(task.ID))
	},
}

// dueFromFlag parses a --due flag value. An explicit empty value clears
// the due date.
func dueFromFlag(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	parsed, err := parser.ParseDueDate(value)
	if err != nil {
		return time.Time{}, err
	}
	return *parsed, nil
}

func init() {
	editCmd.Flags().StringP("title", "t", "", "Task title")
	editCmd.Flags().StringP("desc", "d", "", "Task description (max 300 characters)")
	editCmd.Flags().StringP("category", "c", "", "Category: work or personal")
	editCmd.Flags().StringP("status", "s", "", "Status: todo, progress, or done")
	editCmd.Flags().StringP("due", "", "", "Due date: dd/mm/yyyy, today, tomorrow, X days, X weeks")
	editCmd.Flags().StringP("attach", "a", "", "Path to a file to attach")
}
