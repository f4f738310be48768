package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/today-forecast/internal/weather"
)

var (
	// ErrNotFound is returned when no data is available for a given location.
	ErrNotFound = errors.New("no resolution data for location")
)

// Entry is one committed resolution or refresh.
type Entry struct {
	ID         uuid.UUID        `json:"id"`
	Location   weather.Location `json:"location"`
	Forecast   weather.Forecast `json:"forecast"`
	ResolvedAt time.Time        `json:"resolvedAt"`
}

// History holds a time-ordered list of entries for a location.
type History struct {
	Entries []Entry
}

// MemoryStore is a concurrency-safe in-memory resolution history.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key, value: history
	data map[string]*History

	// retention configuration
	maxHistory int           // max number of entries per location
	maxAge     time.Duration // optional max age for entries
	now        func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*History),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Record stores a committed resolution.
func (s *MemoryStore) Record(id uuid.UUID, loc weather.Location, forecast weather.Forecast, at time.Time) {
	s.Save(Entry{ID: id, Location: loc, Forecast: forecast.Clone(), ResolvedAt: at})
}

// Save appends an entry for its location and enforces retention.
func (s *MemoryStore) Save(entry Entry) {
	key := entry.Location.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &History{}
		s.data[key] = history
	}

	history.Entries = append(history.Entries, entry)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Entries) > s.maxHistory {
		over := len(history.Entries) - s.maxHistory
		history.Entries = history.Entries[over:]
	}

	// Enforce retention by age; the newest entry is always kept.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Entries)-1; i++ {
			if !history.Entries[i].ResolvedAt.Before(cutoff) {
				break
			}
		}
		history.Entries = history.Entries[i:]
	}
}

// Latest returns the most recent entry for a location.
func (s *MemoryStore) Latest(loc weather.Location) (Entry, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Entries) == 0 {
		return Entry{}, ErrNotFound
	}
	return history.Entries[len(history.Entries)-1], nil
}

// Range returns all entries for a location between from and to (inclusive).
func (s *MemoryStore) Range(loc weather.Location, from, to time.Time) ([]Entry, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Entries) == 0 {
		return nil, ErrNotFound
	}

	var result []Entry
	for _, e := range history.Entries {
		if !e.ResolvedAt.Before(from) && !e.ResolvedAt.After(to) {
			result = append(result, e)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
