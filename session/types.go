// Package session holds the client-side mirror of a dataset-view session:
// the state description pushed by the server plus the UI state the terminal
// owns locally (selection, modal visibility, filters, caches). All state
// lives in reactive store cells; derived accessors project scoped views
// over them so callers never touch the storage shape directly.
package session

// Stage is the filter entry recorded for a single field path.
type Stage map[string]interface{}

// Filters maps field paths to their filter stages. The reserved "tags"
// path holds a tag-category to value-list mapping instead of a stage.
type Filters map[string]Stage

// Clone returns a shallow copy of the filters map. Stage values are
// shared; writers that mutate a stage must copy it first.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Clone returns a shallow copy of a stage.
func (s Stage) Clone() Stage {
	out := make(Stage, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Description mirrors the authoritative server-side application state.
// It is replaced wholesale whenever a state_update event arrives.
type Description struct {
	// Dataset is the name of the dataset this session views.
	Dataset string

	// ColorScale is the active colorscale identifier.
	ColorScale string

	// Config carries the server-provided app config subtree.
	Config map[string]interface{}

	// State holds the case-converted residual state fields plus the
	// original view definition under the "view" key.
	State map[string]interface{}

	// Filters is the grid-view filter set.
	Filters Filters
}

// View returns the view definition carried by the description, if any.
func (d Description) View() interface{} {
	if d.State == nil {
		return nil
	}
	return d.State["view"]
}
