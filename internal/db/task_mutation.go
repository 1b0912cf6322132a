package db

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskbuddy/internal/models"
	"taskbuddy/internal/push"
	"taskbuddy/internal/storage"
)

// SaveTaskRequest holds the data needed to create or update a task.
// An empty TaskID means create. A nil Position means "append to the end
// of the status column".
type SaveTaskRequest struct {
	TaskID      string
	UserID      string
	Title       string
	Description string
	Category    string
	DueDate     time.Time
	Status      string
	Position    *int
	Tags        []string

	// Optional attachment blob, uploaded after the task row is saved.
	AttachmentName string
	Attachment     []byte
}

// SaveTask creates or updates a task and returns the saved task's ID.
//
// When no position is given, the task is appended after the highest
// position in its (user, status) column. The lookup and the insert are
// two separate store calls, so concurrent writers can race to the same
// position; the reorder path re-establishes the column invariant.
//
// The attachment upload runs after the task row is committed. A failed
// upload or link aborts the call with an error but does not roll back
// the task row.
func (s *TaskService) SaveTask(req SaveTaskRequest) (string, error) {
	if req.UserID == "" {
		return "", errors.New("user id is required")
	}
	if req.Title == "" {
		return "", errors.New("title is required")
	}
	if len(req.Description) > models.MaxDescriptionLen {
		return "", fmt.Errorf("description exceeds %d characters", models.MaxDescriptionLen)
	}
	if req.Status == "" {
		req.Status = models.StatusTodo
	}
	if !models.ValidStatus(req.Status) {
		return "", fmt.Errorf("invalid status %q", req.Status)
	}
	if req.Category == "" {
		req.Category = models.CategoryWork
	}
	if !models.ValidCategory(req.Category) {
		return "", fmt.Errorf("invalid category %q", req.Category)
	}

	// Updates keep their stored position unless one is passed, so the
	// column-append lookup only runs for creates.
	position := 0
	if req.Position != nil {
		position = *req.Position
	} else if req.TaskID == "" {
		next, err := s.nextPosition(req.UserID, req.Status)
		if err != nil {
			return "", fmt.Errorf("failed to assign position: %w", err)
		}
		position = next
	}

	taskID := req.TaskID
	if taskID == "" {
		task := models.Task{
			ID:          uuid.NewString(),
			UserID:      req.UserID,
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			DueDate:     req.DueDate,
			Status:      req.Status,
			Position:    position,
			Tags:        tagRows(req.Tags),
		}
		if err := s.db.Create(&task).Error; err != nil {
			return "", err
		}
		taskID = task.ID
		s.recordActivity(taskID, "Task Created", fmt.Sprintf("Task %q was created.", req.Title))
		s.publish(push.Insert, task)
	} else {
		updates := map[string]any{
			"title":       req.Title,
			"description": req.Description,
			"category":    req.Category,
			"due_date":    req.DueDate,
			"status":      req.Status,
		}
		if req.Position != nil {
			updates["position"] = position
		}
		if err := s.db.Model(&models.Task{}).Where("id = ?", taskID).Updates(updates).Error; err != nil {
			return "", err
		}
		s.recordActivity(taskID, "Task Updated", fmt.Sprintf("Task %q was updated.", req.Title))
		if saved, err := s.GetTask(taskID); err == nil {
			s.publish(push.Update, *saved)
		}
	}

	if len(req.Attachment) > 0 {
		if err := s.attachFile(req.UserID, taskID, req.AttachmentName, req.Attachment); err != nil {
			return "", err
		}
	}

	s.generation.Add(1)
	return taskID, nil
}

// attachFile uploads the blob and links it to the task. The link is
// only attempted after a successful upload.
func (s *TaskService) attachFile(userID, taskID, name string, data []byte) error {
	if s.store == nil {
		return errors.New("no object store configured")
	}

	objectName := fmt.Sprintf("%s/%s-%d%s", userID, taskID, s.now().Unix(), filepath.Ext(name))
	if err := s.store.Upload(storage.BucketTaskAttachments, objectName, data); err != nil {
		return fmt.Errorf("failed to upload attachment: %w", err)
	}

	link := models.TaskAttachment{TaskID: taskID, FileURL: objectName}
	if err := s.db.Create(&link).Error; err != nil {
		return fmt.Errorf("failed to link attachment: %w", err)
	}
	return nil
}

// nextPosition returns one past the highest position in the column, or
// zero for an empty column.
func (s *TaskService) nextPosition(userID, status string) (int, error) {
	var last models.Task
	err := s.db.Where("user_id = ? AND status = ?", userID, status).
		Order("position DESC").Limit(1).Find(&last).Error
	if err != nil {
		return 0, err
	}
	if last.ID == "" {
		return 0, nil
	}
	return last.Position + 1, nil
}

// DeleteTask deletes the task row. Tags, attachments, and activity
// entries are left to the store's cascade rules.
func (s *TaskService) DeleteTask(taskID string) error {
	task, err := s.GetTask(taskID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&models.Task{}, "id = ?", taskID).Error; err != nil {
		return err
	}
	s.publish(push.Delete, *task)
	s.generation.Add(1)
	return nil
}

// UpdateStatus changes a single task's status and nothing else. Any
// navigation after a status change is the caller's decision.
func (s *TaskService) UpdateStatus(taskID, newStatus string) error {
	if !models.ValidStatus(newStatus) {
		return fmt.Errorf("invalid status %q", newStatus)
	}
	if err := s.db.Model(&models.Task{}).Where("id = ?", taskID).
		Update("status", newStatus).Error; err != nil {
		return err
	}
	s.recordActivity(taskID, "Status Changed", fmt.Sprintf("Status changed to %q.", newStatus))
	if saved, err := s.GetTask(taskID); err == nil {
		s.publish(push.Update, *saved)
	}
	s.generation.Add(1)
	return nil
}

// BulkUpdateStatus applies UpdateStatus to every ID in order, one call
// at a time. A failing item does not stop the loop; the joined errors
// are returned after all items ran.
func (s *TaskService) BulkUpdateStatus(taskIDs []string, newStatus string) error {
	var errs []error
	for _, id := range taskIDs {
		if err := s.UpdateStatus(id, newStatus); err != nil {
			errs = append(errs, fmt.Errorf("task %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// BulkDelete applies DeleteTask to every ID in order, one call at a
// time, with the same error policy as BulkUpdateStatus.
func (s *TaskService) BulkDelete(taskIDs []string) error {
	var errs []error
	for _, id := range taskIDs {
		if err := s.DeleteTask(id); err != nil {
			errs = append(errs, fmt.Errorf("task %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// UpdatePositions rewrites the position of every task in the given
// column to its index in the ordered slice, forcing the column's status
// at the same time. Runs as one store call from the caller's point of
// view, mirroring a batched upsert.
func (s *TaskService) UpdatePositions(userID, status string, ordered []models.Task) error {
	if userID == "" {
		return errors.New("user id is required")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i, task := range ordered {
			err := tx.Model(&models.Task{}).
				Where("id = ? AND user_id = ?", task.ID, userID).
				Updates(map[string]any{"position": i, "status": status}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for i := range ordered {
		ordered[i].Position = i
		ordered[i].Status = status
		s.publish(push.Update, ordered[i])
	}
	s.generation.Add(1)
	return nil
}

func tagRows(tags []string) []models.TaskTag {
	var rows []models.TaskTag
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		rows = append(rows, models.TaskTag{Tag: tag})
	}
	return rows
}

func (s *TaskService) publish(kind push.Kind, task models.Task) {
	if s.bus != nil {
		s.bus.Publish(push.Event{Kind: kind, Task: task})
	}
}
