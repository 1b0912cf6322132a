package models

import (
	"time"
)

// Task statuses. Every task lives in exactly one status column.
const (
	StatusTodo       = "To Do"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Task categories.
const (
	CategoryWork     = "Work"
	CategoryPersonal = "Personal"
)

// CategoryAll is the filter value that matches every category.
const CategoryAll = "All"

// MaxDescriptionLen caps task descriptions, enforced at input time.
const MaxDescriptionLen = 300

// Task represents a single task owned by one user. Position is the
// ordering key within the (user, status) column.
type Task struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID      string    `gorm:"index;not null" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Category    string    `gorm:"default:Work" json:"category"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `gorm:"default:To Do" json:"status"`
	Position    int       `gorm:"default:0" json:"position"`

	// Relationships
	Tags        []TaskTag        `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"task_tags"`
	Attachments []TaskAttachment `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"task_attachments"`
}

// TaskTag is a free-form label attached to a task.
type TaskTag struct {
	ID     uint   `gorm:"primarykey" json:"-"`
	TaskID string `gorm:"index;not null" json:"-"`
	Tag    string `gorm:"not null" json:"tag"`
}

// TaskAttachment links an uploaded blob to its task. FileURL is the
// object-store path, not a filesystem path.
type TaskAttachment struct {
	ID      uint   `gorm:"primarykey" json:"-"`
	TaskID  string `gorm:"index;not null" json:"-"`
	FileURL string `gorm:"not null" json:"file_url"`
}

// ActivityLog is an append-only audit entry for a task, newest first in
// every read path.
type ActivityLog struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	TaskID      string    `gorm:"index;not null" json:"task_id"`
	Action      string    `gorm:"not null" json:"action"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Statuses returns the three workflow states in column order.
func Statuses() []string {
	return []string{StatusTodo, StatusInProgress, StatusCompleted}
}

// ValidStatus reports whether s is one of the workflow states.
func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusCompleted
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	return c == CategoryWork || c == CategoryPersonal
}

// TagNames flattens the task's tags to plain strings.
func (t *Task) TagNames() []string {
	var names []string
	for _, tag := range t.Tags {
		names = append(names, tag.Tag)
	}
	return names
}
