package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskbuddy/internal/db"
	"taskbuddy/internal/parser"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long:    "List tasks with optional search, category, due-date bucket, and sort selections",
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

		tasks, err := app.Tasks.FetchTasks(user.ID, opts)
		if err != nil {
			// Read failures degrade to an empty listing.
			fmt.Printf("Error fetching tasks: %v\n", err)
			tasks = nil
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found. Use 'taskbuddy add \"task title\"' to create your first task.")
			return
		}

		fmt.Printf("%-10s %-12s %-40s %-10s %-24s %s\n", "ID", "STATUS", "TITLE", "CATEGORY", "DUE", "TAGS")
		fmt.Println(strings.Repeat("-", 104))

		for _, task := range tasks {
			title := task.Title
			if len(title) > 38 {
				title = title[:35] + "..."
			}

			due := ""
			if !task.DueDate.IsZero() {
				due = parser.FormatDueDate(task.DueDate)
			}
			if len(due) > 22 {
				due = due[:22]
			}

			fmt.Printf("%-10s %-12s %-40s %-10s %-24s %s\n",
				shortID(task.ID),
				task.Status,
				title,
				task.Category,
				due,
				strings.Join(task.TagNames(), ","))
		}
	},
}

// queryOptionsFromFlags translates the shared filter flags into
// QueryOptions. ls, board, and mv all accept the same selections.
func queryOptionsFromFlags(cmd *cobra.Command) (db.QueryOptions, error) {
	search, _ := cmd.Flags().GetString("search")
	categoryFlag, _ := cmd.Flags().GetString("category")
	bucketFlag, _ := cmd.Flags().GetString("due")
	sortFlag, _ := cmd.Flags().GetString("sort")
	desc, _ := cmd.Flags().GetBool("desc")

	category, err := parser.NormalizeCategory(orAll(categoryFlag))
	if err != nil {
		return db.QueryOptions{}, err
	}
	bucket, err := parser.NormalizeBucket(bucketFlag)
	if err != nil {
		return db.QueryOptions{}, err
	}
	// No --sort keeps the position baseline order.
	sortField := ""
	if sortFlag != "" {
		sortField, err = parser.NormalizeSortField(sortFlag)
		if err != nil {
			return db.QueryOptions{}, err
		}
	}

	direction := db.SortAsc
	if desc {
		direction = db.SortDesc
	}

	return db.QueryOptions{
		Search:        search,
		Category:      category,
		DueBucket:     bucket,
		SortField:     sortField,
		SortDirection: direction,
	}, nil
}

func orAll(category string) string {
	if category == "" {
		return "all"
	}
	return category
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("search", "q", "", "Case-insensitive title search")
	cmd.Flags().StringP("category", "c", "", "Category filter: work, personal, all")
	cmd.Flags().StringP("due", "", "", "Due-date bucket: today, tomorrow, week, overdue, all")
	cmd.Flags().StringP("sort", "", "", "Sort field: due, title, status, category")
	cmd.Flags().BoolP("desc", "", false, "Sort descending")
}

func init() {
	addFilterFlags(listCmd)
}
