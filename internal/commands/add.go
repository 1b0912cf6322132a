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

var addCmd = &cobra.Command{
	Use:   "add [task title]",
	Short: "Add a new task",
	Long: `Add a new task.

Modes:
  Interactive: taskbuddy add -i (or just 'taskbuddy add' with no arguments)
  Quick: taskbuddy add "Task title" (with optional flags)
  Smart parsing: taskbuddy add "Buy groceries #personal due:tomorrow"

Smart parsing syntax:
  #work | #personal   - Category
  status:todo|progress|done - Workflow status
  due:tomorrow        - Due date (dd/mm/yyyy, today, tomorrow, X days, X weeks)`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		user := requireUser()
		if user == nil {
			return
		}

		interactive, _ := cmd.Flags().GetBool("interactive")
		if len(args) == 0 && !interactive {
			interactive = true
		}

		if interactive {
			runInteractiveAdd(user.ID, args)
			return
		}

		title := strings.Join(args, " ")
		parsed := parser.ParseTitle(title)
		if len(parsed.Errors) > 0 {
			fmt.Printf("Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
			return
		}
		runDirectAdd(cmd, user.ID, parsed)
	},
}

// runInteractiveAdd starts the task form TUI
func runInteractiveAdd(userID string, args []string) {
	prefilled := make(map[string]string)
	if len(args) > 0 {
		prefilled["title"] = strings.Join(args, " ")
	}

	if err := tui.RunTaskForm(app.Tasks, userID, "", prefilled); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

// runDirectAdd creates the task directly without the TUI
func runDirectAdd(cmd *cobra.Command, userID string, parsed parser.ParsedTask) {
	title := parsed.Title
	category := parsed.Category
	status := parsed.Status
	var dueDate time.Time
	if parsed.DueDate != nil {
		dueDate = *parsed.DueDate
	}

	// Flags take precedence over smart syntax
	if flagCategory, _ := cmd.Flags().GetString("category"); flagCategory != "" {
		normalized, err := parser.NormalizeCategory(flagCategory)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		category = normalized
	}
	if flagStatus, _ := cmd.Flags().GetString("status"); flagStatus != "" {
		normalized, err := parser.NormalizeStatus(flagStatus)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		status = normalized
	}
	if flagDue, _ := cmd.Flags().GetString("due"); flagDue != "" {
		parsedDue, err := parser.ParseDueDate(flagDue)
		if err != nil {
			fmt.Printf("Error parsing due date: %v\n", err)
			return
		}
		dueDate = *parsedDue
	}

	description, _ := cmd.Flags().GetString("desc")
	attachPath, _ := cmd.Flags().GetString("attach")

	req := db.SaveTaskRequest{
		UserID:      userID,
		Title:       title,
		Description: description,
		Category:    category,
		DueDate:     dueDate,
		Status:      status,
	}

	if attachPath != "" {
		data, err := os.ReadFile(attachPath)
		if err != nil {
			fmt.Printf("Error reading attachment: %v\n", err)
			return
		}
		req.AttachmentName = filepath.Base(attachPath)
		req.Attachment = data
	}

	taskID, err := app.Tasks.SaveTask(req)
	if err != nil {
		fmt.Printf("Error saving task: %v\n", err)
		return
	}

	task, err := app.Tasks.GetTask(taskID)
	if err != nil {
		fmt.Printf("Created task %s\n", taskID)
		return
	}

	fmt.Printf("Created task %s: %s\n", shortID(task.ID), task.Title)
	fmt.Printf("  Status: %s\n", task.Status)
	fmt.Printf("  Category: %s\n", task.Category)
	if !task.DueDate.IsZero() {
		fmt.Printf("  Due: %s\n", parser.FormatDueDate(task.DueDate))
	}
	if len(task.Attachments) > 0 {
		fmt.Printf("  Attachment: %s\n", task.Attachments[0].FileURL)
	}
}

// shortID trims a UUID for display. Commands accept the prefix back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	addCmd.Flags().BoolP("interactive", "i", false, "Interactive mode with TUI")
	addCmd.Flags().StringP("desc", "d", "", "Task description (max 300 characters)")
	addCmd.Flags().StringP("category", "c", "", "Category: work or personal")
	addCmd.Flags().StringP("status", "s", "", "Status: todo, progress, or done")
	addCmd.Flags().StringP("due", "", "", "Due date: dd/mm/yyyy, today, tomorrow, X days, X weeks")
	addCmd.Flags().StringP("attach", "a", "", "Path to a file to attach")
}
