package session

import "github.com/lenslab/lens/errors"

// Filters returns the active filter set for the requested context: the
// grid view reads the description's filters, the modal reads its own
// parallel set. The result is a copy; use the setters to commit changes.
func (s *Session) Filters(modal bool) Filters {
	var f Filters
	if modal {
		f = modalFiltersAtom.Get(s.store)
	} else {
		f = s.Description().Filters
	}
	if f == nil {
		return Filters{}
	}
	return f.Clone()
}

// SetFilters replaces the filter set for the requested context.
//
// For the grid context this is the authoritative filter write: the
// selection set is unconditionally cleared, a filters_update message is
// sent to the backend, and the new composite description is committed.
// The send happens before the local commit; a send failure is logged and
// the local commit proceeds anyway, so the backend can lag the UI until
// the next successful update.
//
// Modal filters are local view state and are committed without a send.
func (s *Session) SetFilters(modal bool, f Filters) {
	if f == nil {
		f = Filters{}
	}

	if modal {
		modalFiltersAtom.Set(s.store, f)
		return
	}

	selectedSamplesAtom.Set(s.store, map[string]bool{})

	if s.sender != nil {
		if err := s.sender.Send("filters_update", map[string]interface{}{
			"filters": f,
		}); err != nil {
			s.log.WithError(errors.SendFailed("filters_update", err)).
				Warn("filters update not delivered; local state committed anyway")
		}
	}

	d := s.Description()
	d.Filters = f
	descriptionAtom.Set(s.store, d)
}

// FilterStage returns the filter entry recorded for a field path, or an
// empty stage if the path is unfiltered.
func (s *Session) FilterStage(path string, modal bool) Stage {
	f := s.Filters(modal)
	if stage, ok := f[path]; ok {
		return stage.Clone()
	}
	return Stage{}
}

// SetFilterStage replaces the filter entry for a field path. A nil or
// empty stage removes the path entirely; an empty entry is never kept.
func (s *Session) SetFilterStage(path string, modal bool, stage Stage) {
	f := s.Filters(modal)
	if len(stage) == 0 {
		delete(f, path)
	} else {
		f[path] = stage.Clone()
	}
	s.SetFilters(modal, f)
}
