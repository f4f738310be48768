// Package notice keeps the blocking, user-facing messages raised by the
// forecast panel until a client acknowledges them.
package notice

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when acknowledging an unknown notice.
var ErrNotFound = errors.New("notice not found")

// Notice is a message the user must dismiss.
type Notice struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Board is a bounded, concurrency-safe list of pending notices.
type Board struct {
	mu       sync.Mutex
	pending  []Notice
	capacity int
	now      func() time.Time
}

// NewBoard keeps at most capacity pending notices (oldest dropped first).
func NewBoard(capacity int) *Board {
	if capacity <= 0 {
		capacity = 16
	}
	return &Board{capacity: capacity, now: time.Now}
}

// Notify posts message and returns the stored notice.
func (b *Board) Notify(_ context.Context, message string) Notice {
	n := Notice{ID: uuid.New(), Message: message, CreatedAt: b.now().UTC()}

	b.mu.Lock()
	b.pending = append(b.pending, n)
	if len(b.pending) > b.capacity {
		b.pending = b.pending[len(b.pending)-b.capacity:]
	}
	b.mu.Unlock()

	slog.Warn("notice raised", "id", n.ID, "message", message)
	return n
}

// Pending returns the unacknowledged notices, oldest first.
func (b *Board) Pending() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Notice, len(b.pending))
	copy(out, b.pending)
	return out
}

// Ack removes the notice with the given id.
func (b *Board) Ack(id uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, n := range b.pending {
		if n.ID == id {
			b.pending = append(b.pending[:i], b.pending[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
