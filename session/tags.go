package session

import "sort"

// tagsPath is the reserved filters key holding matched-tag categories.
const tagsPath = "tags"

// MatchedTags returns the set of tag values recorded under a tag category,
// or an empty set if the category is absent.
func (s *Session) MatchedTags(category string, modal bool) map[string]bool {
	out := make(map[string]bool)

	f := s.Filters(modal)
	stage, ok := f[tagsPath]
	if !ok {
		return out
	}

	values, ok := stage[category].([]string)
	if !ok {
		// Tag lists decoded from JSON arrive as []interface{}.
		if raw, ok := stage[category].([]interface{}); ok {
			for _, v := range raw {
				if str, ok := v.(string); ok {
					out[str] = true
				}
			}
		}
		return out
	}

	for _, v := range values {
		out[v] = true
	}
	return out
}

// SetMatchedTags records the set of tag values for a tag category. An
// empty set removes the category, and removing the last category removes
// the parent tags entry entirely so empty containers never reach the
// backend.
func (s *Session) SetMatchedTags(category string, modal bool, tags map[string]bool) {
	f := s.Filters(modal)

	stage := Stage{}
	if existing, ok := f[tagsPath]; ok {
		stage = existing.Clone()
	}

	values := make([]string, 0, len(tags))
	for v, on := range tags {
		if on {
			values = append(values, v)
		}
	}
	sort.Strings(values)

	if len(values) == 0 {
		delete(stage, category)
	} else {
		stage[category] = values
	}

	if len(stage) == 0 {
		delete(f, tagsPath)
	} else {
		f[tagsPath] = stage
	}

	s.SetFilters(modal, f)
}
