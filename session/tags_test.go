package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchedTagsRoundTrip(t *testing.T) {
	s, _ := newTestSession()

	s.SetMatchedTags("label", false, map[string]bool{"validated": true, "hard": true})

	got := s.MatchedTags("label", false)
	assert.Equal(t, map[string]bool{"validated": true, "hard": true}, got)

	// Stored array-encoded and sorted under the tags path
	stage := s.Filters(false)[tagsPath]
	require.NotNil(t, stage)
	assert.Equal(t, []string{"hard", "validated"}, stage["label"])
}

func TestMatchedTagsEmptyForUnknownCategory(t *testing.T) {
	s, _ := newTestSession()
	assert.Empty(t, s.MatchedTags("sample", false))
}

func TestMatchedTagsEmptyWriteDeletesCategory(t *testing.T) {
	s, _ := newTestSession()

	s.SetMatchedTags("label", false, map[string]bool{"validated": true})
	s.SetMatchedTags("sample", false, map[string]bool{"reviewed": true})

	s.SetMatchedTags("label", false, nil)

	stage, ok := s.Filters(false)[tagsPath]
	require.True(t, ok, "tags entry must survive while other categories remain")
	_, ok = stage["label"]
	assert.False(t, ok, "empty write must delete the category key")
	assert.Equal(t, []string{"reviewed"}, stage["sample"])
}

func TestMatchedTagsLastCategoryRemovesTagsEntry(t *testing.T) {
	s, _ := newTestSession()

	s.SetMatchedTags("label", false, map[string]bool{"validated": true})
	s.SetMatchedTags("label", false, map[string]bool{})

	_, ok := s.Filters(false)[tagsPath]
	assert.False(t, ok, "removing the last category must remove the parent tags key")
}

func TestMatchedTagsModalContext(t *testing.T) {
	s, _ := newTestSession()

	s.SetMatchedTags("label", true, map[string]bool{"modal-only": true})

	assert.Empty(t, s.MatchedTags("label", false))
	assert.Equal(t, map[string]bool{"modal-only": true}, s.MatchedTags("label", true))
}

func TestMatchedTagsDecodedFromJSONArrays(t *testing.T) {
	s, _ := newTestSession()

	// Filters decoded off the wire carry []interface{} values
	s.ApplyDescription(Description{
		Filters: Filters{
			tagsPath: {"label": []interface{}{"validated", "hard"}},
		},
	})

	assert.Equal(t, map[string]bool{"validated": true, "hard": true}, s.MatchedTags("label", false))
}
