package state

import "sync"

// Group makes a write that spans several stores appear atomic to readers
// that go through the same Group. A nil Group does no locking.
type Group struct {
	mu sync.RWMutex
}

// Update runs fn with the group held for writing. Subscribers notified by
// dispatches inside fn must not call View on the same group.
func (g *Group) Update(fn func() error) error {
	if g == nil {
		return fn()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn()
}

// View runs fn with the group held for reading.
func (g *Group) View(fn func()) {
	if g == nil {
		fn()
		return
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	fn()
}
