package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskbuddy/internal/db"
	"taskbuddy/internal/models"
)

func TestParseTitleExtractsEverything(t *testing.T) {
	parsed := ParseTitle("Ship the release #work status:progress due:tomorrow")

	assert.Equal(t, "Ship the release", parsed.Title)
	assert.Equal(t, models.CategoryWork, parsed.Category)
	assert.Equal(t, models.StatusInProgress, parsed.Status)
	require.NotNil(t, parsed.DueDate)
	assert.Empty(t, parsed.Errors)

	tomorrow := time.Now().AddDate(0, 0, 1)
	assert.Equal(t, tomorrow.Day(), parsed.DueDate.Day())
}

func TestParseTitlePlain(t *testing.T) {
	parsed := ParseTitle("Just a task")

	assert.Equal(t, "Just a task", parsed.Title)
	assert.Empty(t, parsed.Category)
	assert.Empty(t, parsed.Status)
	assert.Nil(t, parsed.DueDate)
	assert.Empty(t, parsed.Errors)
}

func TestParseTitleCollectsErrors(t *testing.T) {
	parsed := ParseTitle("Broken #errands status:someday due:whenever")

	assert.Equal(t, "Broken", parsed.Title)
	assert.Len(t, parsed.Errors, 3)
}

func TestParseTitleCleansSpacing(t *testing.T) {
	parsed := ParseTitle("  Buy   milk   #personal  ")
	assert.Equal(t, "Buy milk", parsed.Title)
	assert.Equal(t, models.CategoryPersonal, parsed.Category)
}

func TestNormalizeCategory(t *testing.T) {
	cases := map[string]string{
		"":         models.CategoryWork,
		"work":     models.CategoryWork,
		"WORK":     models.CategoryWork,
		"personal": models.CategoryPersonal,
		"all":      models.CategoryAll,
	}
	for input, want := range cases {
		got, err := NormalizeCategory(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := NormalizeCategory("errands")
	assert.Error(t, err)
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"":            models.StatusTodo,
		"todo":        models.StatusTodo,
		"to-do":       models.StatusTodo,
		"pending":     models.StatusTodo,
		"progress":    models.StatusInProgress,
		"in_progress": models.StatusInProgress,
		"doing":       models.StatusInProgress,
		"done":        models.StatusCompleted,
		"Completed":   models.StatusCompleted,
	}
	for input, want := range cases {
		got, err := NormalizeStatus(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := NormalizeStatus("someday")
	assert.Error(t, err)
}

func TestNormalizeBucket(t *testing.T) {
	cases := map[string]string{
		"":          db.BucketAll,
		"any":       db.BucketAll,
		"today":     db.BucketToday,
		"tomorrow":  db.BucketTomorrow,
		"week":      db.BucketThisWeek,
		"this-week": db.BucketThisWeek,
		"overdue":   db.BucketOverdue,
	}
	for input, want := range cases {
		got, err := NormalizeBucket(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := NormalizeBucket("someday")
	assert.Error(t, err)
}

func TestNormalizeSortField(t *testing.T) {
	cases := map[string]string{
		"":         db.SortByDueDate,
		"due":      db.SortByDueDate,
		"due-date": db.SortByDueDate,
		"title":    db.SortByTitle,
		"status":   db.SortByStatus,
		"category": db.SortByCategory,
	}
	for input, want := range cases {
		got, err := NormalizeSortField(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := NormalizeSortField("priority")
	assert.Error(t, err)
}
