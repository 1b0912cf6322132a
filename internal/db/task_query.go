package db

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"taskbuddy/internal/models"
	"taskbuddy/internal/push"
	"taskbuddy/internal/storage"
)

// Sort fields accepted by FetchTasks.
const (
	SortByTitle    = "title"
	SortByDueDate  = "due_date"
	SortByStatus   = "status"
	SortByCategory = "category"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Due-date buckets. Each bucket is a predicate over the due date,
// resolved against the caller's current date.
const (
	BucketAll      = "All"
	BucketToday    = "Today"
	BucketTomorrow = "Tomorrow"
	BucketThisWeek = "This Week"
	BucketOverdue  = "Overdue"
)

// QueryOptions holds the filter and sort selections for FetchTasks.
// All filters are optional and combine with AND semantics.
type QueryOptions struct {
	Search        string // case-insensitive substring match on title
	Category      string // exact category, or All/empty for any
	DueBucket     string // one of the Bucket* constants
	SortField     string // one of the SortBy* constants
	SortDirection string // SortAsc or SortDesc
}

// TaskService bundles task retrieval and mutation over an injected
// database handle. The store and bus are optional collaborators: the
// store receives attachment blobs, the bus receives row change events.
type TaskService struct {
	db    *gorm.DB
	store storage.ObjectStore
	bus   *push.Bus

	// now is swappable so due-date buckets are deterministic in tests.
	now func() time.Time

	// generation bumps on every mutation; views poll it to know their
	// cached list is stale.
	generation atomic.Uint64
}

// NewTaskService creates a TaskService. store and bus may be nil.
func NewTaskService(gdb *gorm.DB, store storage.ObjectStore, bus *push.Bus) *TaskService {
	return &TaskService{
		db:    gdb,
		store: store,
		bus:   bus,
		now:   time.Now,
	}
}

// SetClock overrides the service clock. Tests only.
func (s *TaskService) SetClock(now func() time.Time) {
	s.now = now
}

// Generation returns the current mutation generation. A view that
// remembers the generation of its last fetch can compare to decide
// whether to refetch.
func (s *TaskService) Generation() uint64 {
	return s.generation.Load()
}

// FetchTasks retrieves the user's tasks with the given filters applied,
// ordered by position and then re-sorted by the requested field. An
// empty userID is a no-op and returns no rows and no error.
func (s *TaskService) FetchTasks(userID string, opts QueryOptions) ([]models.Task, error) {
	if userID == "" {
		return nil, nil
	}

	query := s.db.Model(&models.Task{}).
		Preload("Tags").
		Preload("Attachments").
		Where("user_id = ?", userID).
		Order("position ASC")

	if opts.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(opts.Search)+"%")
	}
	if opts.Category != "" && opts.Category != models.CategoryAll {
		query = query.Where("category = ?", opts.Category)
	}
	query = s.applyDueBucket(query, opts.DueBucket)

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	sortTasks(tasks, opts.SortField, opts.SortDirection)
	return tasks, nil
}

// GetTask retrieves a single task by ID with its tags and attachments.
func (s *TaskService) GetTask(taskID string) (*models.Task, error) {
	var task models.Task
	err := s.db.Preload("Tags").Preload("Attachments").
		Where("id = ?", taskID).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByIDPrefix resolves a task by full ID or unique ID prefix within
// one user's tasks. Ambiguous prefixes are an error.
func (s *TaskService) FindByIDPrefix(userID, prefix string) (*models.Task, error) {
	if prefix == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var tasks []models.Task
	err := s.db.Preload("Tags").Preload("Attachments").
		Where("user_id = ? AND id LIKE ?", userID, prefix+"%").
		Limit(2).Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	switch len(tasks) {
	case 0:
		return nil, gorm.ErrRecordNotFound
	case 1:
		return &tasks[0], nil
	default:
		return nil, fmt.Errorf("task id prefix %q is ambiguous", prefix)
	}
}

// applyDueBucket narrows the query to the selected due-date bucket.
// Overdue additionally excludes completed tasks.
func (s *TaskService) applyDueBucket(query *gorm.DB, bucket string) *gorm.DB {
	today := DateOf(s.now())

	switch bucket {
	case BucketToday:
		return query.Where("due_date >= ? AND due_date < ?", today, today.AddDate(0, 0, 1))
	case BucketTomorrow:
		tomorrow := today.AddDate(0, 0, 1)
		return query.Where("due_date >= ? AND due_date < ?", tomorrow, tomorrow.AddDate(0, 0, 1))
	case BucketThisWeek:
		// Week starts on Sunday and spans seven days inclusive.
		start := today.AddDate(0, 0, -int(today.Weekday()))
		return query.Where("due_date >= ? AND due_date < ?", start, start.AddDate(0, 0, 7))
	case BucketOverdue:
		return query.Where("due_date < ? AND status <> ?", today, models.StatusCompleted)
	default:
		return query
	}
}

// sortTasks applies the secondary sort on top of the position baseline.
// The sort is stable so equal keys keep their position order. Due dates
// compare numerically, every other field compares as a string.
func sortTasks(tasks []models.Task, field, direction string) {
	if field == "" {
		return
	}

	sign := 1
	if direction == SortDesc {
		sign = -1
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := &tasks[i], &tasks[j]
		if field == SortByDueDate {
			ai, bi := a.DueDate.UnixNano(), b.DueDate.UnixNano()
			if ai == bi {
				return false
			}
			return (ai < bi) == (sign > 0)
		}

		as, bs := stringField(a, field), stringField(b, field)
		if as == bs {
			return false
		}
		return (as < bs) == (sign > 0)
	})
}

func stringField(t *models.Task, field string) string {
	switch field {
	case SortByTitle:
		return t.Title
	case SortByStatus:
		return t.Status
	case SortByCategory:
		return t.Category
	default:
		return t.Title
	}
}

// DateOf truncates a time to its calendar date in local time.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
