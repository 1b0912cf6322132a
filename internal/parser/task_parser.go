package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"taskbuddy/internal/db"
	"taskbuddy/internal/models"
)

// ParsedTask represents a task parsed from natural language
type ParsedTask struct {
	Title    string
	Category string
	Status   string
	DueDate  *time.Time
	Errors   []string
}

// ParseTitle extracts metadata from a task title using natural syntax
// Syntax: "Task title #work status:progress due:tomorrow"
func ParseTitle(input string) ParsedTask {
	result := ParsedTask{
		Title:  input,
		Errors: []string{},
	}

	// Extract category (#work, #personal)
	categoryRegex := regexp.MustCompile(`#([a-zA-Z]+)`)
	categoryMatches := categoryRegex.FindStringSubmatch(input)
	if len(categoryMatches) > 1 {
		category, err := NormalizeCategory(categoryMatches[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid category '"+categoryMatches[1]+"'. Use: work or personal")
		} else {
			result.Category = category
		}
		input = categoryRegex.ReplaceAllString(input, "")
	}

	// Extract status (status:todo, status:progress, status:done)
	statusRegex := regexp.MustCompile(`status:([^\s]+)`)
	statusMatches := statusRegex.FindStringSubmatch(input)
	if len(statusMatches) > 1 {
		status, err := NormalizeStatus(statusMatches[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid status '"+statusMatches[1]+"'. Use: todo, progress, or done")
		} else {
			result.Status = status
		}
		input = statusRegex.ReplaceAllString(input, "")
	}

	// Extract due date (due:tomorrow, due:15/12/2026, due:3days)
	dueRegex := regexp.MustCompile(`due:([^\s]+)`)
	dueMatches := dueRegex.FindStringSubmatch(input)
	if len(dueMatches) > 1 {
		dueDate, err := ParseDueDate(dueMatches[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid due date '"+dueMatches[1]+"': "+err.Error())
		} else {
			result.DueDate = dueDate
		}
		input = dueRegex.ReplaceAllString(input, "")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")
	result.Title = strings.TrimSpace(result.Title)

	return result
}

// NormalizeCategory converts user input to a canonical category.
func NormalizeCategory(input string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "work":
		return models.CategoryWork, nil
	case "personal":
		return models.CategoryPersonal, nil
	case "all":
		return models.CategoryAll, nil
	default:
		return "", fmt.Errorf("unknown category %q", input)
	}
}

// NormalizeStatus converts user input to a canonical workflow status.
func NormalizeStatus(input string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(input))
	cleaned = strings.ReplaceAll(cleaned, "-", " ")
	cleaned = strings.ReplaceAll(cleaned, "_", " ")
	switch cleaned {
	case "", "todo", "to do", "pending":
		return models.StatusTodo, nil
	case "progress", "in progress", "inprogress", "doing":
		return models.StatusInProgress, nil
	case "done", "completed", "complete":
		return models.StatusCompleted, nil
	default:
		return "", fmt.Errorf("unknown status %q", input)
	}
}

// NormalizeBucket converts user input to a canonical due-date bucket.
func NormalizeBucket(input string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(input))
	cleaned = strings.ReplaceAll(cleaned, "-", " ")
	switch cleaned {
	case "", "all", "any":
		return db.BucketAll, nil
	case "today":
		return db.BucketToday, nil
	case "tomorrow":
		return db.BucketTomorrow, nil
	case "week", "this week":
		return db.BucketThisWeek, nil
	case "overdue":
		return db.BucketOverdue, nil
	default:
		return "", fmt.Errorf("unknown due-date bucket %q", input)
	}
}

// NormalizeSortField converts user input to a canonical sort field.
func NormalizeSortField(input string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(input))
	cleaned = strings.ReplaceAll(cleaned, "-", "_")
	switch cleaned {
	case "", "due", "due_date", "duedate":
		return db.SortByDueDate, nil
	case "title":
		return db.SortByTitle, nil
	case "status":
		return db.SortByStatus, nil
	case "category":
		return db.SortByCategory, nil
	default:
		return "", fmt.Errorf("unknown sort field %q", input)
	}
}
