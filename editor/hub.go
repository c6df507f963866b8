package editor

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyHandler handles a global key event and reports whether it consumed it.
type KeyHandler func(tea.KeyMsg) bool

// Hub dispatches global key events (those the host sees regardless of
// focus) to subscribed sessions. The host owns the Hub and feeds it from
// its own Update.
type Hub struct {
	mu       sync.Mutex
	next     uint64
	handlers map[uint64]KeyHandler
	order    []uint64
}

func NewHub() *Hub {
	return &Hub{handlers: make(map[uint64]KeyHandler)}
}

// Subscribe registers fn. The handler stays active until the returned
// Subscription is released.
func (h *Hub) Subscribe(fn KeyHandler) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.next++
	id := h.next
	h.handlers[id] = fn
	h.order = append(h.order, id)
	return &Subscription{hub: h, id: id}
}

// Dispatch offers msg to handlers, most recent subscriber first, and stops
// at the first one that consumes it.
func (h *Hub) Dispatch(msg tea.KeyMsg) bool {
	h.mu.Lock()
	fns := make([]KeyHandler, 0, len(h.order))
	for i := len(h.order) - 1; i >= 0; i-- {
		fns = append(fns, h.handlers[h.order[i]])
	}
	h.mu.Unlock()

	// Handlers run unlocked so they may subscribe or release.
	for _, fn := range fns {
		if fn(msg) {
			return true
		}
	}
	return false
}

// Len returns the number of active subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handlers)
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.handlers[id]; !ok {
		return
	}
	delete(h.handlers, id)
	for i, v := range h.order {
		if v == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Subscription is the handle returned by Hub.Subscribe.
type Subscription struct {
	hub  *Hub
	id   uint64
	once sync.Once
}

// Release unregisters the handler. It is safe to call more than once.
func (s *Subscription) Release() {
	if s == nil || s.hub == nil {
		return
	}
	s.once.Do(func() { s.hub.remove(s.id) })
}
