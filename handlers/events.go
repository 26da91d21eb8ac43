package handlers

import (
	"sync"

	"github.com/studytok/api/session"
)

// Event is one presentation-layer notification, delivered over SSE.
type Event struct {
	Type   string         `json:"type"`
	Index  int            `json:"index,omitempty"`
	Offset float64        `json:"offset,omitempty"`
	State  *session.State `json:"state,omitempty"`
}

const (
	EventIndexChanged = "index-changed"
	EventStateChanged = "state-changed"
)

// EventHub fans session notifications out to SSE subscribers, keyed by
// session ID. Publishes never block: a subscriber that cannot keep up
// loses events, and the next state snapshot catches it up.
type EventHub struct {
	mu   sync.Mutex
	subs map[string]map[chan Event]bool
}

func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[string]map[chan Event]bool)}
}

func (h *EventHub) Subscribe(sessionID string) chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[chan Event]bool)
	}
	h.subs[sessionID][ch] = true
	return ch
}

func (h *EventHub) Unsubscribe(sessionID string, ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.subs[sessionID]; ok {
		delete(subs, ch)
		if len(subs) == 0 {
			delete(h.subs, sessionID)
		}
	}
}

// Drop removes every subscriber of a torn-down session.
func (h *EventHub) Drop(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[sessionID] {
		close(ch)
	}
	delete(h.subs, sessionID)
}

func (h *EventHub) publish(sessionID string, ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[sessionID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Notifier adapts the hub to the session's notification interface.
func (h *EventHub) Notifier(sessionID string) session.Notifier {
	return &hubNotifier{hub: h, sessionID: sessionID}
}

type hubNotifier struct {
	hub       *EventHub
	sessionID string
}

func (n *hubNotifier) IndexChanged(index int, offset float64) {
	n.hub.publish(n.sessionID, Event{Type: EventIndexChanged, Index: index, Offset: offset})
}

func (n *hubNotifier) StateChanged(state session.State) {
	n.hub.publish(n.sessionID, Event{Type: EventStateChanged, State: &state})
}
