package client

import (
	"encoding/json"
	"strings"

	"github.com/lenslab/lens/errors"
	"github.com/lenslab/lens/session"
)

// stateUpdatePayload is the wire shape of a state_update event's data field.
type stateUpdatePayload struct {
	State map[string]interface{} `json:"state"`
}

// DecodeStateUpdate turns a state_update payload into a state description.
// The payload's state object is split three ways: colorscale and config are
// lifted into dedicated fields, filters become the typed grid filter set,
// and every residual field is case-converted into the state map alongside
// the original view definition.
func DecodeStateUpdate(data []byte) (session.Description, error) {
	var payload stateUpdatePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return session.Description{}, errors.EventDecode(EventStateUpdate, err)
	}

	state := payload.State
	if state == nil {
		state = map[string]interface{}{}
	}

	d := session.Description{
		State: make(map[string]interface{}, len(state)),
	}

	for key, value := range state {
		switch key {
		case "colorscale":
			if cs, ok := value.(string); ok {
				d.ColorScale = cs
			}
		case "config":
			if cfg, ok := value.(map[string]interface{}); ok {
				d.Config = cfg
			}
		case "view":
			// The view definition is carried through untouched.
			d.State["view"] = value
		case "filters":
			d.Filters = decodeFilters(value)
		case "dataset":
			if name, ok := value.(string); ok {
				d.Dataset = name
			}
			d.State["dataset"] = value
		default:
			d.State[snakeToCamel(key)] = value
		}
	}

	return d, nil
}

func decodeFilters(value interface{}) session.Filters {
	raw, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}

	filters := make(session.Filters, len(raw))
	for path, entry := range raw {
		if stage, ok := entry.(map[string]interface{}); ok {
			filters[path] = session.Stage(stage)
		}
	}
	return filters
}

// snakeToCamel converts a snake_case field name to camelCase.
func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	if len(parts) == 1 {
		return s
	}

	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
