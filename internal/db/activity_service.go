package db

import (
	"taskbuddy/internal/models"
)

// ActivityLogs returns a task's activity entries, newest first. Read
// paths never fail loudly: callers render an empty log on error.
func (s *TaskService) ActivityLogs(taskID string) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	err := s.db.Where("task_id = ?", taskID).
		Order("created_at DESC").Order("id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// recordActivity appends an audit entry for the task. A failure here
// never fails the mutation that triggered it.
func (s *TaskService) recordActivity(taskID, action, description string) {
	entry := models.ActivityLog{
		TaskID:      taskID,
		Action:      action,
		Description: description,
		CreatedAt:   s.now(),
	}
	// Best effort; the task mutation already committed.
	_ = s.db.Create(&entry).Error
}
