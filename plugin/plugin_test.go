package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenslab/lens/errors"
)

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	pluginDir := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(pluginDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pluginDir, "plugin.yml"), []byte(content), 0o644))
}

func TestRegisterAndList(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Plugin{Name: "zoom", Version: "0.1.0"}))
	require.NoError(t, r.Register(&Plugin{Name: "annotate", Version: "0.2.0"}))

	plugins := r.List()
	require.Len(t, plugins, 2)
	assert.Equal(t, "annotate", plugins[0].Name)
	assert.Equal(t, "zoom", plugins[1].Name)
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Plugin{Name: "zoom"}))

	err := r.Register(&Plugin{Name: "zoom"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodePluginDuplicate))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "heatmap", "name: heatmap\nversion: 1.2.0\ndescription: Heatmap overlay\n")
	writeManifest(t, dir, "clusters", "name: clusters\nversion: 0.3.0\n")

	// Directories without a manifest are ignored.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "not-a-plugin"), 0o755))

	r := NewRegistry()
	require.NoError(t, r.LoadDir(dir, nil))

	p, ok := r.Get("heatmap")
	require.True(t, ok)
	assert.Equal(t, "1.2.0", p.Version)
	assert.False(t, p.Builtin)
	assert.Equal(t, filepath.Join(dir, "heatmap"), p.Dir)

	_, ok = r.Get("clusters")
	assert.True(t, ok)
	_, ok = r.Get("not-a-plugin")
	assert.False(t, ok)
}

func TestLoadDirDisabled(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "heatmap", "name: heatmap\nversion: 1.2.0\n")

	r := NewRegistry()
	require.NoError(t, r.LoadDir(dir, []string{"heatmap"}))

	_, ok := r.Get("heatmap")
	assert.False(t, ok)
}

func TestLoadDirMissingIsNotAnError(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.LoadDir(filepath.Join(t.TempDir(), "nope"), nil))
	assert.Empty(t, r.List())
}

func TestLoadDirInvalidManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "broken", "name: [not a\n")

	r := NewRegistry()
	err := r.LoadDir(dir, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodePluginManifest))
}

func TestLoadDirManifestMissingName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "anon", "version: 1.0.0\n")

	r := NewRegistry()
	err := r.LoadDir(dir, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodePluginManifest))
}

func TestBuiltinsRegistered(t *testing.T) {
	for _, name := range []string{"grid", "sample-viewer", "view-bar"} {
		p, ok := Default().Get(name)
		require.True(t, ok, "builtin %s missing", name)
		assert.True(t, p.Builtin)
	}
}

func TestRemoveExternalKeepsBuiltins(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Plugin{Name: "core", Builtin: true}))
	require.NoError(t, r.Register(&Plugin{Name: "extra"}))

	r.removeExternal()

	_, ok := r.Get("core")
	assert.True(t, ok)
	_, ok = r.Get("extra")
	assert.False(t, ok)
}
