// Package state holds the shared Location, Weather and Ui stores. Every
// mutation goes through Dispatch; state returned to readers is read-only.
package state

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnknownAction is returned when a reducer does not handle the action type.
	ErrUnknownAction = errors.New("unknown action")
	// ErrInvalidPayload is returned when the payload has the wrong type.
	ErrInvalidPayload = errors.New("invalid action payload")
)

// ActionType names a requested mutation.
type ActionType string

const (
	ActionUpdate            ActionType = "update"
	ActionDisableOnboarding ActionType = "disableOnboarding"
	ActionSetUnits          ActionType = "setUnits"
)

// Action is a named mutation request with an optional payload.
type Action struct {
	Type    ActionType
	Payload any
}

// Reducer computes the next state. On error the store keeps the current state.
type Reducer[S any] func(current S, action Action) (S, error)

// Store is a single-writer state container. Dispatches are serialized;
// subscribers run after each successful dispatch, in dispatch order, outside
// the state lock.
type Store[S any] struct {
	name    string
	reducer Reducer[S]

	// dispatchMu serializes writers and their notifications.
	dispatchMu sync.Mutex

	mu    sync.RWMutex
	state S
	subs  map[int]func(S)
	next  int
}

// New creates a store holding initial.
func New[S any](name string, initial S, reducer Reducer[S]) *Store[S] {
	return &Store[S]{
		name:    name,
		reducer: reducer,
		state:   initial,
		subs:    make(map[int]func(S)),
	}
}

// Name identifies the store in logs and errors.
func (s *Store[S]) Name() string {
	return s.name
}

// State returns the current state.
func (s *Store[S]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies action through the reducer and notifies subscribers.
func (s *Store[S]) Dispatch(action Action) error {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	next, err := s.reducer(s.state, action)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%s store: %s: %w", s.name, action.Type, err)
	}
	s.state = next
	subs := make([]func(S), 0, len(s.subs))
	for i := 0; i < s.next; i++ {
		if fn, ok := s.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}

// Subscribe registers fn to receive every new state. The returned function
// removes the subscription.
func (s *Store[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}
