package session

import (
	"github.com/sirupsen/logrus"

	"github.com/lenslab/lens/logging"
	"github.com/lenslab/lens/store"
)

// Sender delivers typed messages to the backend over the outbound channel.
type Sender interface {
	Send(messageType string, payload map[string]interface{}) error
}

// State cells owned by the session. Keys are unique across the app.
var (
	descriptionAtom     = store.NewAtom("session/description", Description{})
	modalVisibleAtom    = store.NewAtom("session/modal-visible", false)
	selectedSamplesAtom = store.NewAtom[map[string]bool]("session/selected-samples", nil)
	modalFiltersAtom    = store.NewAtom[Filters]("session/modal-filters", nil)

	statsFamily      = store.NewFamily[map[string]interface{}]("session/stats", nil)
	taggingFamily    = store.NewFamily("session/tagging-progress", 0.0)
	fieldColorFamily = store.NewFamily("session/field-color", "")
)

// Session binds the reactive cells for one dataset-view session to the
// outbound message channel.
type Session struct {
	store  *store.Store
	sender Sender
	log    *logrus.Entry
}

// New creates a session over the given store and outbound sender.
func New(s *store.Store, sender Sender) *Session {
	return &Session{
		store:  s,
		sender: sender,
		log:    logging.NewLogger("session"),
	}
}

// Store exposes the underlying reactive store.
func (s *Session) Store() *store.Store {
	return s.store
}

// Description returns the current state description.
func (s *Session) Description() Description {
	return descriptionAtom.Get(s.store)
}

// ApplyDescription replaces the local description wholesale. This is the
// commit path for decoded state_update events.
func (s *Session) ApplyDescription(d Description) {
	descriptionAtom.Set(s.store, d)
}

// WatchDescription subscribes to description commits.
func (s *Session) WatchDescription() (<-chan Description, func()) {
	return descriptionAtom.Subscribe(s.store)
}

// ModalVisible reports whether the single-sample modal is open.
func (s *Session) ModalVisible() bool {
	return modalVisibleAtom.Get(s.store)
}

// SetModalVisible opens or closes the single-sample modal. Closing the
// modal drops its filter set; modal filters never outlive the modal.
func (s *Session) SetModalVisible(visible bool) {
	modalVisibleAtom.Set(s.store, visible)
	if !visible {
		modalFiltersAtom.Reset(s.store)
	}
}

// SelectedSamples returns the current selection set. The returned map is
// a copy; mutating it does not affect the session.
func (s *Session) SelectedSamples() map[string]bool {
	selected := selectedSamplesAtom.Get(s.store)
	out := make(map[string]bool, len(selected))
	for id := range selected {
		out[id] = true
	}
	return out
}

// SetSelectedSamples replaces the selection set.
func (s *Session) SetSelectedSamples(ids map[string]bool) {
	out := make(map[string]bool, len(ids))
	for id, on := range ids {
		if on {
			out[id] = true
		}
	}
	selectedSamplesAtom.Set(s.store, out)
}

// ToggleSelected flips one sample in or out of the selection set.
func (s *Session) ToggleSelected(id string) {
	selected := s.SelectedSamples()
	if selected[id] {
		delete(selected, id)
	} else {
		selected[id] = true
	}
	selectedSamplesAtom.Set(s.store, selected)
}

// Stats returns the cached aggregate stats for a view signature, or nil
// if nothing has been cached yet.
func (s *Session) Stats(viewKey string) map[string]interface{} {
	return statsFamily.At(viewKey).Get(s.store)
}

// SetStats caches aggregate stats for a view signature.
func (s *Session) SetStats(viewKey string, stats map[string]interface{}) {
	statsFamily.At(viewKey).Set(s.store, stats)
}

// TaggingProgress returns the completion fraction of an in-flight tagging
// operation for the given target ("grid" or "modal").
func (s *Session) TaggingProgress(target string) float64 {
	return taggingFamily.At(target).Get(s.store)
}

// SetTaggingProgress records tagging progress for a target.
func (s *Session) SetTaggingProgress(target string, fraction float64) {
	taggingFamily.At(target).Set(s.store, fraction)
}

// FieldColor returns the color token assigned to a field, if any.
func (s *Session) FieldColor(field string) string {
	return fieldColorFamily.At(field).Get(s.store)
}

// SetFieldColor assigns a color token to a field.
func (s *Session) SetFieldColor(field, color string) {
	fieldColorFamily.At(field).Set(s.store, color)
}
