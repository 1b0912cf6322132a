package push

import (
	"sync"

	"taskbuddy/internal/models"
)

// Kind is the type of row change an Event carries.
type Kind int

const (
	Insert Kind = iota
	Update
	Delete
)

// Event is a row-level change on the tasks table.
type Event struct {
	Kind Kind
	Task models.Task
}

// Bus fans task change events out to all subscribers. Publishers never
// block on a slow subscriber.
type Bus struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[chan Event]struct{})}
}

// Publish delivers the event to every subscriber.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
			// subscriber is behind; drop to avoid blocking Publish
		}
	}
	b.mu.RUnlock()
}

// Subscribe returns a buffered channel that receives all new events.
func (b *Bus) Subscribe() chan Event {
	ch := make(chan Event, 64)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
	close(ch)
}
