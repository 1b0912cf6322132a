package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskbuddy/internal/db"
	"taskbuddy/internal/models"
	"taskbuddy/internal/parser"
	"taskbuddy/internal/push"
	"taskbuddy/internal/reorder"
	"taskbuddy/internal/state"
)

// BoardModel renders the three status columns and turns keyboard
// gestures into reorder engine calls.
type BoardModel struct {
	width  int
	height int

	tasks  *db.TaskService
	engine *reorder.Engine
	bus    *push.Bus
	events chan push.Event

	userID     string
	opts       db.QueryOptions
	projection *state.Projection

	// visible is the last fetched, filtered, sorted list; columns is
	// the same list grouped by status in display order.
	visible []models.Task
	columns [3][]models.Task

	col int
	row int

	// grabbedID is the task currently picked up, empty when none.
	grabbedID string

	searchActive bool
	searchQuery  string

	err error
}

type tasksLoadedMsg []models.Task
type loadErrMsg struct{ err error }
type pushEventMsg push.Event

var columnStatuses = models.Statuses()

// NewBoardModel creates a board over the given services and filters.
func NewBoardModel(tasks *db.TaskService, engine *reorder.Engine, bus *push.Bus, userID string, opts db.QueryOptions) BoardModel {
	return BoardModel{
		tasks:      tasks,
		engine:     engine,
		bus:        bus,
		events:     bus.Subscribe(),
		userID:     userID,
		opts:       opts,
		projection: state.NewProjection(),
	}
}

// Init initializes the model
func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(m.loadTasks(), m.waitForEvent())
}

func (m BoardModel) loadTasks() tea.Cmd {
	tasks, userID, opts := m.tasks, m.userID, m.opts
	return func() tea.Msg {
		fetched, err := tasks.FetchTasks(userID, opts)
		if err != nil {
			return loadErrMsg{err}
		}
		return tasksLoadedMsg(fetched)
	}
}

func (m BoardModel) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return pushEventMsg(ev)
	}
}

func (m BoardModel) applyGesture(g reorder.Gesture) tea.Cmd {
	engine, userID, visible, opts := m.engine, m.userID, m.visible, m.opts
	return func() tea.Msg {
		fetched, err := engine.Apply(userID, visible, g, opts)
		if err != nil {
			return loadErrMsg{err}
		}
		return tasksLoadedMsg(fetched)
	}
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		m.visible = msg
		m.projection.ReplaceAll(msg)
		m.rebuildColumns(msg)
		m.err = nil
		return m, nil

	case loadErrMsg:
		// Keep the stale board; the error shows in the footer until
		// the next successful fetch.
		m.err = msg.err
		return m, nil

	case pushEventMsg:
		// Optimistic local patch, then reconcile with a refetch.
		m.projection.ApplyEvent(push.Event(msg))
		m.rebuildColumns(m.projection.Tasks())
		return m, tea.Batch(m.loadTasks(), m.waitForEvent())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.searchActive {
			return m.handleSearchKeys(msg)
		}
		return m.handleBoardKeys(msg)
	}

	return m, nil
}

func (m BoardModel) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		if m.grabbedID != "" {
			m.grabbedID = ""
			return m, nil
		}
		return m, tea.Quit

	case "up", "k":
		if m.row > 0 {
			m.row--
		}
		return m, nil

	case "down", "j":
		if m.row < len(m.columns[m.col])-1 {
			m.row++
		}
		return m, nil

	case "left", "h":
		if m.col > 0 {
			m.col--
			m.clampRow()
		}
		return m, nil

	case "right", "l":
		if m.col < len(m.columns)-1 {
			m.col++
			m.clampRow()
		}
		return m, nil

	case "enter", " ":
		return m.handleGrabOrDrop()

	case "x":
		if task := m.taskUnderCursor(); task != nil {
			tasks := m.tasks
			id := task.ID
			return m, func() tea.Msg {
				if err := tasks.DeleteTask(id); err != nil {
					return loadErrMsg{err}
				}
				return nil
			}
		}
		return m, nil

	case "c":
		if task := m.taskUnderCursor(); task != nil {
			tasks := m.tasks
			id := task.ID
			return m, func() tea.Msg {
				if err := tasks.UpdateStatus(id, models.StatusCompleted); err != nil {
					return loadErrMsg{err}
				}
				return nil
			}
		}
		return m, nil

	case "/":
		m.searchActive = true
		m.searchQuery = m.opts.Search
		return m, nil

	case "f":
		m.opts.Category = nextCategory(m.opts.Category)
		return m, m.loadTasks()

	case "b":
		m.opts.DueBucket = nextBucket(m.opts.DueBucket)
		return m, m.loadTasks()

	case "r":
		return m, m.loadTasks()
	}

	return m, nil
}

// handleGrabOrDrop either picks the task under the cursor up, or drops
// the grabbed task on the current target.
func (m BoardModel) handleGrabOrDrop() (tea.Model, tea.Cmd) {
	if m.grabbedID == "" {
		if task := m.taskUnderCursor(); task != nil {
			m.grabbedID = task.ID
		}
		return m, nil
	}

	gesture := reorder.Gesture{TaskID: m.grabbedID}
	if target := m.taskUnderCursor(); target != nil {
		gesture.Target = reorder.TargetTask
		gesture.OverTaskID = target.ID
	} else {
		// Empty column: the drop lands on the column's zone.
		gesture.Target = reorder.TargetColumn
		gesture.ColumnStatus = columnStatuses[m.col]
	}

	m.grabbedID = ""
	return m, m.applyGesture(gesture)
}

func (m BoardModel) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchActive = false
		m.opts.Search = m.searchQuery
		return m, m.loadTasks()
	case "esc":
		m.searchActive = false
		m.searchQuery = ""
		m.opts.Search = ""
		return m, m.loadTasks()
	case "backspace":
		if len(m.searchQuery) > 0 {
			m.searchQuery = m.searchQuery[:len(m.searchQuery)-1]
		}
		return m, nil
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.searchQuery += string(msg.Runes)
		case tea.KeySpace:
			m.searchQuery += " "
		}
		return m, nil
	}
}

func (m *BoardModel) rebuildColumns(tasks []models.Task) {
	for i := range m.columns {
		m.columns[i] = nil
	}
	for _, task := range tasks {
		for i, status := range columnStatuses {
			if task.Status == status {
				m.columns[i] = append(m.columns[i], task)
			}
		}
	}
	m.clampRow()
}

func (m *BoardModel) clampRow() {
	if m.row >= len(m.columns[m.col]) {
		m.row = len(m.columns[m.col]) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m BoardModel) taskUnderCursor() *models.Task {
	column := m.columns[m.col]
	if m.row < 0 || m.row >= len(column) {
		return nil
	}
	return &column[m.row]
}

func (m BoardModel) close() {
	if m.bus != nil && m.events != nil {
		m.bus.Unsubscribe(m.events)
	}
}

func nextCategory(current string) string {
	switch current {
	case models.CategoryWork:
		return models.CategoryPersonal
	case models.CategoryPersonal:
		return models.CategoryAll
	default:
		return models.CategoryWork
	}
}

func nextBucket(current string) string {
	order := []string{db.BucketAll, db.BucketToday, db.BucketTomorrow, db.BucketThisWeek, db.BucketOverdue}
	for i, bucket := range order {
		if bucket == current {
			return order[(i+1)%len(order)]
		}
	}
	return db.BucketAll
}

// View renders the board
func (m BoardModel) View() string {
	if m.width == 0 {
		return "Loading board..."
	}

	columnWidth := (m.width - 8) / 3
	if columnWidth < 24 {
		columnWidth = 24
	}

	headerColors := []string{ColorTodoColumn, ColorProgressColumn, ColorDoneColumn}
	rendered := make([]string, 0, 3)

	for i, status := range columnStatuses {
		rendered = append(rendered, m.renderColumn(i, status, headerColors[i], columnWidth))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	var footer string
	if m.searchActive {
		footer = fmt.Sprintf("Search: %s_", m.searchQuery)
	} else {
		footer = "enter/space pick up & drop · x delete · c complete · / search · f category · b due · r refresh · q quit"
	}
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))

	parts := []string{m.renderHeader(), board, footerStyle.Render(footer)}
	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		parts = append(parts, errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m BoardModel) renderHeader() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	category := m.opts.Category
	if category == "" {
		category = models.CategoryAll
	}
	bucket := m.opts.DueBucket
	if bucket == "" {
		bucket = db.BucketAll
	}
	header := fmt.Sprintf("TaskBuddy · category: %s · due: %s", category, bucket)
	if m.opts.Search != "" {
		header += fmt.Sprintf(" · search: %q", m.opts.Search)
	}
	return style.Render(header)
}

func (m BoardModel) renderColumn(index int, status, headerColor string, width int) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(headerColor)).
		Bold(true)

	var lines []string
	lines = append(lines, headerStyle.Render(fmt.Sprintf("%s (%d)", status, len(m.columns[index]))))

	for row, task := range m.columns[index] {
		lines = append(lines, m.renderTask(task, index == m.col && row == m.row, width-4))
	}
	if len(m.columns[index]) == 0 {
		empty := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
		lines = append(lines, empty.Render("(empty)"))
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width).
		Padding(0, 1)
	if index == m.col {
		border = border.BorderForeground(lipgloss.Color(ColorAccentMain))
	}
	return border.Render(strings.Join(lines, "\n"))
}

func (m BoardModel) renderTask(task models.Task, selected bool, width int) string {
	title := task.Title
	if len(title) > width-2 && width > 5 {
		title = title[:width-5] + "..."
	}

	line := title
	if !task.DueDate.IsZero() {
		line += "  " + parser.FormatDueDate(task.DueDate)
	}
	if len(line) > width && width > 3 {
		line = line[:width-3] + "..."
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	switch {
	case task.ID == m.grabbedID:
		style = style.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
		line = "⇅ " + line
	case selected:
		style = style.Background(lipgloss.Color(ColorCardBackground)).Bold(true)
		line = "> " + line
	default:
		line = "  " + line
	}
	return style.Render(line)
}
