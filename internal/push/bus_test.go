package push

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskbuddy/internal/models"
)

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe()
	b := bus.Subscribe()
	defer bus.Unsubscribe(a)
	defer bus.Unsubscribe(b)

	bus.Publish(Event{Kind: Insert, Task: models.Task{ID: "t1"}})

	for _, ch := range []chan Event{a, b} {
		ev := <-ch
		assert.Equal(t, Insert, ev.Kind)
		assert.Equal(t, "t1", ev.Task.ID)
	}
}

func TestPublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	bus := NewBus()
	slow := bus.Subscribe()
	defer bus.Unsubscribe(slow)

	// Overflow the buffer; Publish must drop instead of blocking.
	for i := 0; i < cap(slow)+10; i++ {
		bus.Publish(Event{Kind: Update, Task: models.Task{ID: "t"}})
	}
	assert.Len(t, slow, cap(slow))
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe()
	bus.Unsubscribe(ch)

	_, ok := <-ch
	require.False(t, ok)

	// Publishing after unsubscribe must not panic on the closed channel.
	bus.Publish(Event{Kind: Delete, Task: models.Task{ID: "t"}})
}
