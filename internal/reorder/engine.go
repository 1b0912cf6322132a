package reorder

import (
	"fmt"

	"taskbuddy/internal/db"
	"taskbuddy/internal/models"
)

// Engine persists resolved drag gestures and resyncs with the store.
type Engine struct {
	tasks *db.TaskService
}

// NewEngine creates an Engine over the task service.
func NewEngine(tasks *db.TaskService) *Engine {
	return &Engine{tasks: tasks}
}

// Apply resolves the gesture against the visible list, persists the
// outcome, and re-fetches the list with the same filters so the caller
// reconciles with store-assigned state. The visual state is optimistic:
// a persistence failure is returned alongside the re-fetched list, not
// rolled back.
func (e *Engine) Apply(userID string, visible []models.Task, g Gesture, opts db.QueryOptions) ([]models.Task, error) {
	action := Resolve(visible, g)

	var persistErr error
	switch action.Kind {
	case ActionNone:
		return visible, nil
	case ActionStatusChange:
		if err := e.tasks.UpdateStatus(action.TaskID, action.NewStatus); err != nil {
			persistErr = fmt.Errorf("failed to change status: %w", err)
		}
	case ActionReorder:
		if err := e.tasks.UpdatePositions(userID, action.NewStatus, action.Column); err != nil {
			persistErr = fmt.Errorf("failed to persist positions: %w", err)
		}
	}

	fetched, err := e.tasks.FetchTasks(userID, opts)
	if err != nil {
		if persistErr != nil {
			return visible, persistErr
		}
		return visible, err
	}
	return fetched, persistErr
}
