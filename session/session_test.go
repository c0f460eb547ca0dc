package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDescriptionReplacesWholesale(t *testing.T) {
	s, _ := newTestSession()

	s.ApplyDescription(Description{
		Dataset:    "quickstart",
		ColorScale: "viridis",
		Config:     map[string]interface{}{"gridZoom": 5.0},
		State:      map[string]interface{}{"view": []interface{}{"limit"}, "sampleCount": 200.0},
	})

	d := s.Description()
	assert.Equal(t, "viridis", d.ColorScale)
	assert.Equal(t, map[string]interface{}{"gridZoom": 5.0}, d.Config)
	assert.Equal(t, []interface{}{"limit"}, d.View())

	// A later push replaces everything, including fields the previous
	// description carried.
	s.ApplyDescription(Description{Dataset: "quickstart"})
	assert.Empty(t, s.Description().ColorScale)
	assert.Nil(t, s.Description().View())
}

func TestToggleSelected(t *testing.T) {
	s, _ := newTestSession()

	s.ToggleSelected("s1")
	assert.Equal(t, map[string]bool{"s1": true}, s.SelectedSamples())

	s.ToggleSelected("s1")
	assert.Empty(t, s.SelectedSamples())
}

func TestSelectedSamplesReturnsCopy(t *testing.T) {
	s, _ := newTestSession()

	s.SetSelectedSamples(map[string]bool{"s1": true})
	got := s.SelectedSamples()
	got["s2"] = true

	assert.Equal(t, map[string]bool{"s1": true}, s.SelectedSamples())
}

func TestModalCloseDropsModalFilters(t *testing.T) {
	s, _ := newTestSession()

	s.SetModalVisible(true)
	s.SetFilterStage("predictions", true, Stage{"label": "cat"})
	require.NotEmpty(t, s.Filters(true))

	s.SetModalVisible(false)
	assert.Empty(t, s.Filters(true))
}

func TestWatchDescription(t *testing.T) {
	s, _ := newTestSession()

	ch, cancel := s.WatchDescription()
	defer cancel()

	s.ApplyDescription(Description{Dataset: "quickstart"})

	d := <-ch
	assert.Equal(t, "quickstart", d.Dataset)
}

func TestStatsAndTaggingAndColorCells(t *testing.T) {
	s, _ := newTestSession()

	assert.Nil(t, s.Stats("view-1"))
	s.SetStats("view-1", map[string]interface{}{"count": 42})
	assert.Equal(t, map[string]interface{}{"count": 42}, s.Stats("view-1"))

	assert.Zero(t, s.TaggingProgress("grid"))
	s.SetTaggingProgress("grid", 0.5)
	assert.Equal(t, 0.5, s.TaggingProgress("grid"))

	assert.Empty(t, s.FieldColor("predictions"))
	s.SetFieldColor("predictions", "#FF9E3B")
	assert.Equal(t, "#FF9E3B", s.FieldColor("predictions"))
}
