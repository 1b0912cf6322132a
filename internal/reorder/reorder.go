package reorder

import (
	"taskbuddy/internal/models"
)

// TargetKind says what the dragged task was dropped on.
type TargetKind int

const (
	// TargetNone means the drop landed outside any valid target.
	TargetNone TargetKind = iota
	// TargetColumn means the drop landed on a column drop-zone.
	TargetColumn
	// TargetTask means the drop landed on another task.
	TargetTask
)

// Gesture is one completed drag: which task moved and where it landed.
type Gesture struct {
	TaskID string
	Target TargetKind

	// ColumnStatus is the target column's status for TargetColumn.
	ColumnStatus string
	// OverTaskID is the task dropped onto for TargetTask.
	OverTaskID string
}

// ActionKind classifies what a gesture resolves to.
type ActionKind int

const (
	// ActionNone discards the gesture.
	ActionNone ActionKind = iota
	// ActionStatusChange moves the task to another column. Only the
	// status field changes; positions are not rewritten.
	ActionStatusChange
	// ActionReorder relocates the task within its column. The whole
	// visible column gets renumbered to array indexes.
	ActionReorder
)

// Action is the resolved outcome of a gesture.
type Action struct {
	Kind      ActionKind
	TaskID    string
	NewStatus string

	// Column is the reordered visible column for ActionReorder.
	Column []models.Task
}

// Resolve classifies a gesture against the currently visible task list.
// The list is whatever the active filters and sort produced, so a
// reorder only ever renumbers the visible subset of the column.
func Resolve(visible []models.Task, g Gesture) Action {
	moved := findTask(visible, g.TaskID)
	if moved == nil || g.Target == TargetNone {
		return Action{Kind: ActionNone}
	}

	newStatus := moved.Status
	switch g.Target {
	case TargetColumn:
		newStatus = g.ColumnStatus
	case TargetTask:
		if over := findTask(visible, g.OverTaskID); over != nil {
			newStatus = over.Status
		}
	}

	if newStatus != moved.Status {
		return Action{Kind: ActionStatusChange, TaskID: moved.ID, NewStatus: newStatus}
	}
	if g.Target == TargetColumn {
		// Dropped back on its own column's zone.
		return Action{Kind: ActionNone}
	}

	column := filterByStatus(visible, newStatus)
	oldIndex := indexOf(column, g.TaskID)
	newIndex := indexOf(column, g.OverTaskID)
	if oldIndex < 0 || newIndex < 0 || oldIndex == newIndex {
		return Action{Kind: ActionNone}
	}

	return Action{
		Kind:      ActionReorder,
		TaskID:    moved.ID,
		NewStatus: newStatus,
		Column:    Move(column, oldIndex, newIndex),
	}
}

// Move returns a copy of list with the element at from relocated to
// index to. Single-element extract-and-reinsert, not a swap.
func Move(list []models.Task, from, to int) []models.Task {
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
		return append([]models.Task(nil), list...)
	}

	out := make([]models.Task, 0, len(list))
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)

	moved := list[from]
	out = append(out[:to], append([]models.Task{moved}, out[to:]...)...)
	return out
}

func findTask(tasks []models.Task, id string) *models.Task {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i]
		}
	}
	return nil
}

func filterByStatus(tasks []models.Task, status string) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func indexOf(tasks []models.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
