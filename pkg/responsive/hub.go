package responsive

import "sync"

// Viewport delivers resize notifications. The returned func releases the
// registration and is safe to call more than once.
type Viewport interface {
	OnResize(fn func(width int)) (unsubscribe func())
}

// Hub is an in-process Viewport fed by Publish.
type Hub struct {
	mu        sync.RWMutex
	listeners map[int]func(int)
	next      int
	width     int
	known     bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{listeners: make(map[int]func(int))}
}

// OnResize registers fn until the returned func is called.
func (h *Hub) OnResize(fn func(width int)) func() {
	if fn == nil {
		return func() {}
	}
	h.mu.Lock()
	id := h.next
	h.next++
	h.listeners[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
		})
	}
}

// Publish records width and notifies every listener. Listeners run outside
// the hub lock so they may register or release other listeners.
func (h *Hub) Publish(width int) {
	h.mu.Lock()
	h.width = width
	h.known = true
	fns := make([]func(int), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, fn := range fns {
		fn(width)
	}
}

// Width returns the last published width.
func (h *Hub) Width() (int, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.width, h.known
}

// Len reports the number of active listeners.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
