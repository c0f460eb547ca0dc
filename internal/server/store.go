package server

import (
	"sync"

	"github.com/lenslab/lens/client"
)

// Update is one state change broadcast to event-stream subscribers.
type Update struct {
	Dataset string
	State   map[string]interface{}
}

// Store is the in-memory state store for the dev server.
// It is thread-safe and supports pub/sub for real-time updates.
type Store struct {
	mu          sync.RWMutex
	datasets    map[string]*client.Dataset
	pending     map[string]struct{}
	states      map[string]map[string]interface{}
	subscribers map[chan Update]struct{}
}

// NewStore creates a new Store instance.
func NewStore() *Store {
	return &Store{
		datasets:    make(map[string]*client.Dataset),
		pending:     make(map[string]struct{}),
		states:      make(map[string]map[string]interface{}),
		subscribers: make(map[chan Update]struct{}),
	}
}

// AddDataset registers a dataset so the dataset API can resolve it.
func (s *Store) AddDataset(ds client.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[ds.Name] = &ds
	delete(s.pending, ds.Name)
}

// SetPending marks a dataset as still preparing; the dataset API answers
// 202 for it until AddDataset is called.
func (s *Store) SetPending(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[name] = struct{}{}
}

// GetDataset returns a registered dataset and whether it is still pending.
func (s *Store) GetDataset(name string) (*client.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.pending[name]; ok {
		return nil, true
	}
	return s.datasets[name], false
}

// GetState returns the current state payload for a dataset, or nil.
func (s *Store) GetState(name string) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[name]
}

// ApplyState replaces a dataset's state and notifies subscribers.
func (s *Store) ApplyState(name string, state map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[name] = state
	s.notifyLocked(Update{Dataset: name, State: state})
}

// ApplyFilters merges a filters payload into a dataset's state and
// notifies subscribers.
func (s *Store) ApplyFilters(name string, filters interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := make(map[string]interface{}, len(s.states[name])+1)
	for k, v := range s.states[name] {
		state[k] = v
	}
	state["filters"] = filters
	s.states[name] = state

	s.notifyLocked(Update{Dataset: name, State: state})
}

// notifyLocked broadcasts to subscribers without blocking on slow clients.
func (s *Store) notifyLocked(u Update) {
	for ch := range s.subscribers {
		select {
		case ch <- u:
		default:
		}
	}
}

// Subscribe creates a new subscription channel for state updates.
func (s *Store) Subscribe() chan Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Update, 100) // Buffered
	s.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (s *Store) Unsubscribe(ch chan Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[ch]; ok {
		delete(s.subscribers, ch)
		close(ch)
	}
}
