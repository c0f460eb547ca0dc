package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenslab/lens/store"
)

// recordingSender captures outbound messages and can simulate failures.
type recordingSender struct {
	messages []sentMessage
	fail     bool
}

type sentMessage struct {
	Type    string
	Payload map[string]interface{}
}

func (r *recordingSender) Send(messageType string, payload map[string]interface{}) error {
	r.messages = append(r.messages, sentMessage{Type: messageType, Payload: payload})
	if r.fail {
		return fmt.Errorf("connection reset")
	}
	return nil
}

func newTestSession() (*Session, *recordingSender) {
	sender := &recordingSender{}
	return New(store.New(), sender), sender
}

func TestSetFiltersClearsSelection(t *testing.T) {
	s, _ := newTestSession()

	s.SetSelectedSamples(map[string]bool{"s1": true, "s2": true})
	require.Len(t, s.SelectedSamples(), 2)

	s.SetFilters(false, Filters{"ground_truth": {"label": "cat"}})

	assert.Empty(t, s.SelectedSamples(), "filter write must reset the selection set")
}

func TestSetFiltersSendsUpdateBeforeCommit(t *testing.T) {
	s, sender := newTestSession()

	f := Filters{"predictions": {"confidence": 0.5}}
	s.SetFilters(false, f)

	require.Len(t, sender.messages, 1)
	assert.Equal(t, "filters_update", sender.messages[0].Type)
	assert.Equal(t, f, sender.messages[0].Payload["filters"])

	assert.Equal(t, f, s.Filters(false))
}

func TestSetFiltersCommitsDespiteSendFailure(t *testing.T) {
	s, sender := newTestSession()
	sender.fail = true

	f := Filters{"uniqueness": {"gte": 0.9}}
	s.SetFilters(false, f)

	// No rollback: local state proceeds regardless of the send failure.
	assert.Equal(t, f, s.Filters(false))
	assert.Empty(t, s.SelectedSamples())
}

func TestFilterStageWriteAndRead(t *testing.T) {
	s, _ := newTestSession()

	stage := Stage{"label": "dog", "confidence": 0.8}
	s.SetFilterStage("predictions", false, stage)

	assert.Equal(t, stage, s.FilterStage("predictions", false))

	// Other paths are unchanged
	s.SetFilterStage("ground_truth", false, Stage{"label": "cat"})
	assert.Equal(t, stage, s.FilterStage("predictions", false))
}

func TestFilterStageNilWriteDeletesPath(t *testing.T) {
	s, _ := newTestSession()

	s.SetFilterStage("predictions", false, Stage{"label": "dog"})
	s.SetFilterStage("predictions", false, nil)

	f := s.Filters(false)
	_, ok := f["predictions"]
	assert.False(t, ok, "nil stage write must remove the path key, not keep an empty entry")

	// Deleting an absent path is a no-op
	s.SetFilterStage("never_set", false, nil)
	_, ok = s.Filters(false)["never_set"]
	assert.False(t, ok)
}

func TestFilterStageEmptyReadForUnknownPath(t *testing.T) {
	s, _ := newTestSession()
	assert.Equal(t, Stage{}, s.FilterStage("missing", false))
}

func TestModalFiltersAreParallel(t *testing.T) {
	s, sender := newTestSession()

	s.SetFilterStage("predictions", false, Stage{"label": "dog"})
	s.SetFilterStage("predictions", true, Stage{"label": "cat"})

	assert.Equal(t, Stage{"label": "dog"}, s.FilterStage("predictions", false))
	assert.Equal(t, Stage{"label": "cat"}, s.FilterStage("predictions", true))

	// Only the grid write reaches the backend
	require.Len(t, sender.messages, 1)
}

func TestSetFilterStageDoesNotMutatePriorFilters(t *testing.T) {
	s, _ := newTestSession()

	s.SetFilters(false, Filters{"a": {"x": 1}})
	before := s.Filters(false)

	s.SetFilterStage("b", false, Stage{"y": 2})

	// The previously observed filters object is unchanged
	assert.Equal(t, Filters{"a": {"x": 1}}, before)
}
