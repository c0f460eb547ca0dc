package store

import "fmt"

// Atom is a typed handle to one independently addressable state cell.
// The zero value is not usable; construct atoms with NewAtom.
type Atom[T any] struct {
	key string
	def T
}

// NewAtom declares an atom with a unique key and a default value.
func NewAtom[T any](key string, def T) Atom[T] {
	return Atom[T]{key: key, def: def}
}

// Key returns the cell key this atom addresses.
func (a Atom[T]) Key() string {
	return a.key
}

// Default returns the atom's default value.
func (a Atom[T]) Default() T {
	return a.def
}

// Get reads the atom's current value from the store, falling back to the
// default if the cell has never been written.
func (a Atom[T]) Get(s *Store) T {
	v := s.Get(a.key, a.def)
	typed, ok := v.(T)
	if !ok {
		// A mistyped cell means two atoms share a key.
		return a.def
	}
	return typed
}

// Set commits a new value for the atom.
func (a Atom[T]) Set(s *Store, value T) {
	s.Set(a.key, a.def, value)
}

// Reset restores the atom to its default value.
func (a Atom[T]) Reset(s *Store) {
	s.Reset(a.key)
}

// Subscribe returns a channel of typed values committed to this atom,
// plus a cancel function that must be called to release the subscription.
func (a Atom[T]) Subscribe(s *Store) (<-chan T, func()) {
	raw := s.Subscribe(a.key)
	out := make(chan T, cap(raw))
	done := make(chan struct{})

	go func() {
		defer close(out)
		for {
			select {
			case change, ok := <-raw:
				if !ok {
					return
				}
				if typed, ok := change.Value.(T); ok {
					// The consumer may have stopped reading; cancel must
					// still be able to reap this goroutine.
					select {
					case out <- typed:
					case <-done:
						return
					}
				}
			case <-done:
				return
			}
		}
	}()

	cancel := func() {
		s.Unsubscribe(a.key, raw)
		close(done)
	}
	return out, cancel
}

// Family declares a parameterized set of cells sharing one default.
// Each secondary key addresses an independent cell; cells persist for
// the life of the session unless explicitly reset.
type Family[T any] struct {
	prefix string
	def    T
}

// NewFamily declares an atom family under a key prefix.
func NewFamily[T any](prefix string, def T) Family[T] {
	return Family[T]{prefix: prefix, def: def}
}

// At returns the atom for one member of the family.
func (f Family[T]) At(sub string) Atom[T] {
	return Atom[T]{key: fmt.Sprintf("%s/%s", f.prefix, sub), def: f.def}
}
