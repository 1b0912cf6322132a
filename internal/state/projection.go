package state

import (
	"sort"
	"sync"

	"taskbuddy/internal/models"
	"taskbuddy/internal/push"
)

// Projection is the local, in-memory view of a user's tasks. Two
// producers feed it: fetch results (ReplaceAll) and push events
// (ApplyEvent). All writes serialize on one mutex and stamp a
// monotonically increasing revision, so for any row the last writer
// wins regardless of which producer it came from.
type Projection struct {
	mu   sync.Mutex
	rev  uint64
	rows map[string]row
}

type row struct {
	task models.Task
	rev  uint64
}

// NewProjection creates an empty projection.
func NewProjection() *Projection {
	return &Projection{rows: make(map[string]row)}
}

// ReplaceAll swaps in an authoritative snapshot, the reconciliation
// step after every fetch. Rows absent from the snapshot are dropped.
func (p *Projection) ReplaceAll(tasks []models.Task) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.rev++
	fresh := make(map[string]row, len(tasks))
	for _, t := range tasks {
		fresh[t.ID] = row{task: t, rev: p.rev}
	}
	p.rows = fresh
}

// ApplyEvent merges one push event into the projection.
func (p *Projection) ApplyEvent(e push.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.rev++
	switch e.Kind {
	case push.Delete:
		delete(p.rows, e.Task.ID)
	default:
		p.rows[e.Task.ID] = row{task: e.Task, rev: p.rev}
	}
}

// Revision returns the current revision counter.
func (p *Projection) Revision() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rev
}

// Tasks returns the projected rows ordered by status column and then
// position, with the row ID as the final tie-break.
func (p *Projection) Tasks() []models.Task {
	p.mu.Lock()
	defer p.mu.Unlock()

	tasks := make([]models.Task, 0, len(p.rows))
	for _, r := range p.rows {
		tasks = append(tasks, r.task)
	}

	order := map[string]int{
		models.StatusTodo:       0,
		models.StatusInProgress: 1,
		models.StatusCompleted:  2,
	}
	sort.Slice(tasks, func(i, j int) bool {
		a, b := &tasks[i], &tasks[j]
		if order[a.Status] != order[b.Status] {
			return order[a.Status] < order[b.Status]
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ID < b.ID
	})
	return tasks
}

// Get returns the projected row for an ID, if present.
func (p *Projection) Get(id string) (models.Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, ok := p.rows[id]
	return r.task, ok
}
