package server

import (
	"sync"

	"github.com/wethinkt/go-tonekit/internal/palette"
	"github.com/wethinkt/go-tonekit/internal/tonelog"
)

// Hub fans palette events out to WebSocket subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

type subscriber struct {
	ch     chan palette.Event
	closed bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Subscribe returns a channel of events. Call the returned function to
// unsubscribe and close the channel.
func (h *Hub) Subscribe() (<-chan palette.Event, func()) {
	sub := &subscriber{ch: make(chan palette.Event, 32)}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	unsub := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[sub]; !ok {
			return
		}
		delete(h.subs, sub)
		if !sub.closed {
			sub.closed = true
			close(sub.ch)
		}
	}
	return sub.ch, unsub
}

// Publish sends ev to every subscriber. Slow subscribers whose buffers are
// full miss the event. It matches the palette.WithObserver signature.
func (h *Hub) Publish(ev palette.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		select {
		case sub.ch <- ev:
		default:
			tonelog.Log.Warn("Dropping event for slow WebSocket subscriber", "action", ev.Action)
			eventsDropped.Inc()
		}
	}
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
