package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"taskbuddy/internal/db"
	"taskbuddy/internal/push"
	"taskbuddy/internal/reorder"
)

// RunBoard starts the interactive three-column board.
func RunBoard(tasks *db.TaskService, engine *reorder.Engine, bus *push.Bus, userID string, opts db.QueryOptions) error {
	model := NewBoardModel(tasks, engine, bus, userID, opts)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(BoardModel); ok {
		m.close()
		if m.err != nil {
			fmt.Printf("Error: %v\n", m.err)
		}
	}
	return nil
}

// RunTaskForm starts the interactive task form. taskID empty means
// create; otherwise the form edits that task.
func RunTaskForm(tasks *db.TaskService, userID, taskID string, prefilled map[string]string) error {
	model := NewTaskFormModel(tasks, userID, taskID, prefilled)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(TaskFormModel); ok {
		switch {
		case m.cancelled:
			fmt.Println("Task form cancelled.")
		case m.completed && m.savedTaskID != "":
			if m.isEditMode {
				fmt.Printf("Task %q updated.\n", m.savedTitle)
			} else {
				fmt.Printf("New task %q added.\n", m.savedTitle)
			}
		case m.err != nil:
			fmt.Printf("Error: %v\n", m.err)
		}
	}
	return nil
}
