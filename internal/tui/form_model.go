package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskbuddy/internal/db"
	"taskbuddy/internal/models"
	"taskbuddy/internal/parser"
)

// FormStep represents the current step in the task form wizard
type FormStep int

const (
	StepTitle FormStep = iota
	StepDescription
	StepCategory
	StepStatus
	StepDueDate
	StepAttachment
	StepComplete
)

// TaskFormModel is the TUI model for creating and editing tasks.
type TaskFormModel struct {
	currentStep FormStep
	inputs      []textinput.Model
	width       int
	height      int

	tasks  *db.TaskService
	userID string

	// Edit mode
	isEditMode bool
	editTaskID string

	// State
	err           error
	completed     bool
	cancelled     bool
	validationErr string
	savedTaskID   string
	savedTitle    string
}

// NewTaskFormModel creates the form, optionally pre-filled.
func NewTaskFormModel(tasks *db.TaskService, userID, taskID string, prefilled map[string]string) TaskFormModel {
	inputs := make([]textinput.Model, 6)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[StepTitle].Placeholder = "Enter task title... (required)"
	inputs[StepTitle].Focus()
	inputs[StepTitle].CharLimit = 200

	inputs[StepDescription].Placeholder = "Description (max 300 characters, Enter to skip)"
	inputs[StepDescription].CharLimit = models.MaxDescriptionLen

	inputs[StepCategory].Placeholder = "work or personal (Enter for work)"
	inputs[StepCategory].CharLimit = 10

	inputs[StepStatus].Placeholder = "todo, progress, or done (Enter for todo)"
	inputs[StepStatus].CharLimit = 12

	inputs[StepDueDate].Placeholder = "Due: dd/mm/yyyy, today, tomorrow, 3 days (Enter to skip)"
	inputs[StepDueDate].CharLimit = 50

	inputs[StepAttachment].Placeholder = "Path to a file to attach (Enter to skip)"
	inputs[StepAttachment].CharLimit = 200

	for key, value := range prefilled {
		switch key {
		case "title":
			inputs[StepTitle].SetValue(value)
		case "description":
			inputs[StepDescription].SetValue(value)
		case "category":
			inputs[StepCategory].SetValue(value)
		case "status":
			inputs[StepStatus].SetValue(value)
		case "due_date":
			inputs[StepDueDate].SetValue(value)
		}
	}

	return TaskFormModel{
		inputs:     inputs,
		tasks:      tasks,
		userID:     userID,
		isEditMode: taskID != "",
		editTaskID: taskID,
	}
}

// Init initializes the model
func (m TaskFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m TaskFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			return m.advanceStep()

		case "shift+tab":
			if m.currentStep > StepTitle {
				m.inputs[m.currentStep].Blur()
				m.currentStep--
				m.inputs[m.currentStep].Focus()
				m.validationErr = ""
			}
			return m, nil
		}
	}

	if m.currentStep < StepComplete {
		var cmd tea.Cmd
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
		return m, cmd
	}
	return m, nil
}

// advanceStep validates the current field and moves forward, saving on
// the final step.
func (m TaskFormModel) advanceStep() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.inputs[m.currentStep].Value())

	switch m.currentStep {
	case StepTitle:
		if value == "" {
			m.validationErr = "Title is required"
			return m, nil
		}
	case StepDescription:
		if len(value) > models.MaxDescriptionLen {
			m.validationErr = fmt.Sprintf("Description must be at most %d characters", models.MaxDescriptionLen)
			return m, nil
		}
	case StepCategory:
		if _, err := parser.NormalizeCategory(value); err != nil {
			m.validationErr = err.Error()
			return m, nil
		}
	case StepStatus:
		if _, err := parser.NormalizeStatus(value); err != nil {
			m.validationErr = err.Error()
			return m, nil
		}
	case StepDueDate:
		if value != "" {
			if _, err := parser.ParseDueDate(value); err != nil {
				m.validationErr = err.Error()
				return m, nil
			}
		}
	case StepAttachment:
		if value != "" {
			if _, err := os.Stat(value); err != nil {
				m.validationErr = fmt.Sprintf("Cannot read %s", value)
				return m, nil
			}
		}
		return m.save()
	}

	m.validationErr = ""
	m.inputs[m.currentStep].Blur()
	m.currentStep++
	m.inputs[m.currentStep].Focus()
	return m, nil
}

func (m TaskFormModel) save() (tea.Model, tea.Cmd) {
	category, _ := parser.NormalizeCategory(strings.TrimSpace(m.inputs[StepCategory].Value()))
	status, _ := parser.NormalizeStatus(strings.TrimSpace(m.inputs[StepStatus].Value()))

	var dueDate time.Time
	if raw := strings.TrimSpace(m.inputs[StepDueDate].Value()); raw != "" {
		parsed, err := parser.ParseDueDate(raw)
		if err == nil && parsed != nil {
			dueDate = *parsed
		}
	}

	req := db.SaveTaskRequest{
		TaskID:      m.editTaskID,
		UserID:      m.userID,
		Title:       strings.TrimSpace(m.inputs[StepTitle].Value()),
		Description: strings.TrimSpace(m.inputs[StepDescription].Value()),
		Category:    category,
		DueDate:     dueDate,
		Status:      status,
	}

	if path := strings.TrimSpace(m.inputs[StepAttachment].Value()); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			m.validationErr = fmt.Sprintf("Cannot read %s", path)
			return m, nil
		}
		req.AttachmentName = filepath.Base(path)
		req.Attachment = data
	}

	taskID, err := m.tasks.SaveTask(req)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}

	m.savedTaskID = taskID
	m.savedTitle = req.Title
	m.completed = true
	m.currentStep = StepComplete
	return m, tea.Quit
}

var formLabels = []string{
	"Title",
	"Description",
	"Category",
	"Status",
	"Due date",
	"Attachment",
}

// View renders the form
func (m TaskFormModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))

	heading := "New Task"
	if m.isEditMode {
		heading = "Edit Task"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n\n")

	for step := StepTitle; step <= StepAttachment; step++ {
		label := formLabels[step]
		switch {
		case step < m.currentStep:
			b.WriteString(doneStyle.Render(fmt.Sprintf("  %s: %s", label, m.inputs[step].Value())))
			b.WriteString("\n")
		case step == m.currentStep:
			b.WriteString(labelStyle.Render(fmt.Sprintf("> %s:", label)))
			b.WriteString("\n  ")
			b.WriteString(m.inputs[step].View())
			b.WriteString("\n")
		}
	}

	if m.validationErr != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		b.WriteString("\n")
		b.WriteString(errStyle.Render(m.validationErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter next · shift+tab back · esc cancel"))
	return b.String()
}
