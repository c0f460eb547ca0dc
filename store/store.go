// Package store implements the reactive state store backing the lens UI.
// State lives in uniquely-keyed cells with default values; consumers read
// and write cells through typed Atom handles and observe changes through
// per-key subscriptions.
package store

import "sync"

// Change describes a committed write to a single cell.
type Change struct {
	Key   string
	Value interface{}
}

// Store is the in-memory reactive state store.
// It is thread-safe and supports pub/sub for cell updates.
type Store struct {
	mu          sync.RWMutex
	values      map[string]interface{}
	defaults    map[string]interface{}
	subscribers map[string]map[chan Change]struct{}
}

// New creates a new Store instance.
func New() *Store {
	return &Store{
		values:      make(map[string]interface{}),
		defaults:    make(map[string]interface{}),
		subscribers: make(map[string]map[chan Change]struct{}),
	}
}

// ensure records the default for a key the first time it is touched.
// Cell keys must be unique across the application; two atoms sharing a
// key is a programming error the store cannot detect on its own.
func (s *Store) ensure(key string, def interface{}) {
	if _, ok := s.defaults[key]; !ok {
		s.defaults[key] = def
	}
}

// Get returns the current value of a cell, or its registered default if
// the cell has never been written.
func (s *Store) Get(key string, def interface{}) interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	if d, ok := s.defaults[key]; ok {
		return d
	}
	return def
}

// Set commits a new value to a cell and notifies subscribers.
func (s *Store) Set(key string, def, value interface{}) {
	s.mu.Lock()
	s.ensure(key, def)
	s.values[key] = value
	s.notifyLocked(key, value)
	s.mu.Unlock()
}

// Reset restores a cell to its default value and notifies subscribers.
func (s *Store) Reset(key string) {
	s.mu.Lock()
	delete(s.values, key)
	s.notifyLocked(key, s.defaults[key])
	s.mu.Unlock()
}

// notifyLocked broadcasts a change to the key's subscribers.
// Sends are non-blocking so a slow consumer cannot stall a commit.
func (s *Store) notifyLocked(key string, value interface{}) {
	for ch := range s.subscribers[key] {
		select {
		case ch <- Change{Key: key, Value: value}:
		default:
		}
	}
}

// Subscribe creates a new subscription channel for changes to one cell.
func (s *Store) Subscribe(key string) chan Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Change, 100) // Buffered
	if s.subscribers[key] == nil {
		s.subscribers[key] = make(map[chan Change]struct{})
	}
	s.subscribers[key][ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (s *Store) Unsubscribe(key string, ch chan Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if subs, ok := s.subscribers[key]; ok {
		if _, ok := subs[ch]; ok {
			delete(subs, ch)
			close(ch)
		}
	}
}
