package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishReachesOnlyThatStore(t *testing.T) {
	hub := NewHub()

	a, cleanupA := hub.Subscribe("store-a")
	defer cleanupA()
	b, cleanupB := hub.Subscribe("store-b")
	defer cleanupB()

	hub.Publish("store-a", Event{Name: "punch", Data: "x"})

	select {
	case ev := <-a:
		assert.Equal(t, "store-a", ev.StoreID)
		assert.Equal(t, "punch", ev.Name)
	default:
		t.Fatal("expected event for store-a")
	}

	select {
	case <-b:
		t.Fatal("store-b must not receive store-a events")
	default:
	}
}

func TestHubPublishDoesNotBlockWhenFull(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe("s")
	defer cleanup()

	for i := 0; i < hub.bufferSize*3; i++ {
		hub.Publish("s", Event{Name: "punch"})
	}
}

func TestHubCleanup(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("s")
	_, cleanup2 := hub.Subscribe("s")

	require.Equal(t, 2, hub.SubscriberCount("s"))
	assert.Equal(t, 2, hub.TotalSubscribers())

	cleanup()
	cleanup()
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 1, hub.SubscriberCount("s"))

	cleanup2()
	assert.Equal(t, 0, hub.TotalSubscribers())
}
