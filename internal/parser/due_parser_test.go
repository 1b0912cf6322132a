package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDateKeywords(t *testing.T) {
	today := startOfDay(time.Now())

	d, err := ParseDueDate("today")
	require.NoError(t, err)
	assert.True(t, d.Equal(today))

	d, err = ParseDueDate("Tomorrow")
	require.NoError(t, err)
	assert.True(t, d.Equal(today.AddDate(0, 0, 1)))
}

func TestParseDueDateEmptyIsNil(t *testing.T) {
	d, err := ParseDueDate("")
	assert.NoError(t, err)
	assert.Nil(t, d)
}

func TestParseDueDateDayMonthYear(t *testing.T) {
	d, err := ParseDueDate("15/12/2026")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.December, 15, 0, 0, 0, 0, time.Local), *d)

	// Calendar-invalid dates are rejected even when in range.
	_, err = ParseDueDate("31/02/2026")
	assert.Error(t, err)

	_, err = ParseDueDate("32/01/2026")
	assert.Error(t, err)
}

func TestParseDueDateISO(t *testing.T) {
	d, err := ParseDueDate("2026-12-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.December, 15, 0, 0, 0, 0, time.Local), *d)
}

func TestParseDueDateRelative(t *testing.T) {
	today := startOfDay(time.Now())

	d, err := ParseDueDate("3 days")
	require.NoError(t, err)
	assert.True(t, d.Equal(today.AddDate(0, 0, 3)))

	d, err = ParseDueDate("2 weeks")
	require.NoError(t, err)
	assert.True(t, d.Equal(today.AddDate(0, 0, 14)))

	_, err = ParseDueDate("400 days")
	assert.Error(t, err)

	_, err = ParseDueDate("53 weeks")
	assert.Error(t, err)
}

func TestParseDueDateGarbage(t *testing.T) {
	for _, input := range []string{"soon", "12-15-2026", "next tuesday"} {
		_, err := ParseDueDate(input)
		assert.Error(t, err, input)
	}
}

func TestFormatDueDateRelative(t *testing.T) {
	today := startOfDay(time.Now())

	assert.Contains(t, FormatDueDate(today), "due today")
	assert.Contains(t, FormatDueDate(today.AddDate(0, 0, 1)), "due tomorrow")
	assert.Contains(t, FormatDueDate(today.AddDate(0, 0, -1)), "OVERDUE")
	assert.Contains(t, FormatDueDate(today.AddDate(0, 0, 3)), "in 3 days")
	assert.Equal(t, "", FormatDueDate(time.Time{}))
}
