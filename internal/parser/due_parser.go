package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseDueDate parses the due date formats accepted on the command line.
// Supported formats:
// - dd/mm/yyyy (e.g., "15/12/2026")
// - yyyy-mm-dd (e.g., "2026-12-15")
// - "today", "tomorrow"
// - X days (e.g., "3 days", "1 day")
// - X weeks (e.g., "2 weeks", "1 week")
// The result is normalized to midnight local time so due dates compare
// as calendar dates.
func ParseDueDate(input string) (*time.Time, error) {
	if input == "" {
		return nil, nil
	}

	input = strings.TrimSpace(input)

	switch strings.ToLower(input) {
	case "today":
		d := startOfDay(time.Now())
		return &d, nil
	case "tomorrow":
		d := startOfDay(time.Now()).AddDate(0, 0, 1)
		return &d, nil
	}

	if dueDate, err := parseDateFormat(input); err == nil {
		return dueDate, nil
	}

	if dueDate, err := parseISOFormat(input); err == nil {
		return dueDate, nil
	}

	if dueDate, err := parseRelativeTime(input); err == nil {
		return dueDate, nil
	}

	return nil, fmt.Errorf("invalid date format. Use: dd/mm/yyyy, yyyy-mm-dd, today, tomorrow, X days, or X weeks")
}

// parseDateFormat parses dd/mm/yyyy format
func parseDateFormat(input string) (*time.Time, error) {
	dateRegex := regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	matches := dateRegex.FindStringSubmatch(input)

	if len(matches) != 4 {
		return nil, fmt.Errorf("invalid date format")
	}

	day, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, fmt.Errorf("invalid day")
	}

	month, err := strconv.Atoi(matches[2])
	if err != nil {
		return nil, fmt.Errorf("invalid month")
	}

	year, err := strconv.Atoi(matches[3])
	if err != nil {
		return nil, fmt.Errorf("invalid year")
	}

	if day < 1 || day > 31 {
		return nil, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}

	dueDate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)

	// Check if date is valid (handles leap years, etc.)
	if dueDate.Day() != day || dueDate.Month() != time.Month(month) || dueDate.Year() != year {
		return nil, fmt.Errorf("invalid date")
	}

	return &dueDate, nil
}

// parseISOFormat parses yyyy-mm-dd format
func parseISOFormat(input string) (*time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", input, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date format")
	}
	return &parsed, nil
}

// parseRelativeTime parses relative time formats like "3 days", "2 weeks"
func parseRelativeTime(input string) (*time.Time, error) {
	input = strings.ToLower(input)

	relativeRegex := regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks)$`)
	matches := relativeRegex.FindStringSubmatch(input)

	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, fmt.Errorf("invalid number")
	}

	unit := matches[2]
	today := startOfDay(time.Now())

	switch unit {
	case "day", "days":
		if amount < 1 || amount > 365 {
			return nil, fmt.Errorf("days must be between 1 and 365")
		}
		dueDate := today.AddDate(0, 0, amount)
		return &dueDate, nil

	case "week", "weeks":
		if amount < 1 || amount > 52 {
			return nil, fmt.Errorf("weeks must be between 1 and 52")
		}
		dueDate := today.AddDate(0, 0, amount*7)
		return &dueDate, nil

	default:
		return nil, fmt.Errorf("unsupported time unit")
	}
}

// FormatDueDate formats a due date for display relative to today.
func FormatDueDate(dueDate time.Time) string {
	if dueDate.IsZero() {
		return ""
	}

	today := startOfDay(time.Now())
	dueDay := startOfDay(dueDate)
	daysDiff := int(dueDay.Sub(today).Hours() / 24)

	dateStr := dueDate.Format("02/01/2006")

	if daysDiff < 0 {
		return fmt.Sprintf("OVERDUE (%s)", dateStr)
	} else if daysDiff == 0 {
		return fmt.Sprintf("due today (%s)", dateStr)
	} else if daysDiff == 1 {
		return fmt.Sprintf("due tomorrow (%s)", dateStr)
	} else if daysDiff <= 7 {
		return fmt.Sprintf("due %s (in %d days)", dateStr, daysDiff)
	}
	return fmt.Sprintf("due %s", dateStr)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
