package sse

import (
	"sync"
)

// Event is one message pushed to the kiosks of a store.
type Event struct {
	StoreID string
	Name    string
	Data    interface{}
}

// Publisher is the write side of the hub, used by services that announce changes.
type Publisher interface {
	Publish(storeID string, event Event)
}

// Subscriber is the read side of the hub, used by the kiosk event stream.
type Subscriber interface {
	Subscribe(storeID string) (<-chan Event, func())
}

// Hub fans events out to the kiosk screens subscribed to each store.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	bufferSize  int
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		bufferSize:  16,
	}
}

// Subscribe registers a kiosk for storeID. The returned cleanup must be called exactly once.
func (h *Hub) Subscribe(storeID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.bufferSize)
	if h.subscribers[storeID] == nil {
		h.subscribers[storeID] = make(map[chan Event]struct{})
	}
	h.subscribers[storeID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[storeID], ch)
			close(ch)
			if len(h.subscribers[storeID]) == 0 {
				delete(h.subscribers, storeID)
			}
		})
	}

	return ch, cleanup
}

// Publish delivers event to every subscriber of storeID without blocking.
// Slow subscribers miss the event; kiosks reload the full status list on each one anyway.
func (h *Hub) Publish(storeID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.StoreID = storeID
	for ch := range h.subscribers[storeID] {
		select {
		case ch <- event:
		default:
		}
	}
}

func (h *Hub) SubscriberCount(storeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[storeID])
}

func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
