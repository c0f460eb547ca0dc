package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenslab/lens/errors"
)

func TestLoadFromBytes(t *testing.T) {
	yml := `
version: "1"
server:
  url: http://localhost:5151
  timeout_seconds: 5
plugins:
  dir: ./plugins
  disabled: [heatmap]
tui:
  theme: kanagawa
  color_scheme: dark
logging:
  level: debug
`
	cfg, err := LoadFromBytes([]byte(yml))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5151", cfg.Server.URL)
	assert.Equal(t, 5, cfg.Server.TimeoutSeconds)
	assert.Equal(t, "./plugins", cfg.Plugins.Dir)
	assert.Equal(t, []string{"heatmap"}, cfg.Plugins.Disabled)
	assert.Equal(t, "dark", cfg.TUI.ColorScheme)

	// Unknown top-level keys land in Extensions
	var logCfg struct {
		Level string `yaml:"level"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
}

func TestLoadFromBytesDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5151", cfg.Server.URL)
	assert.Equal(t, 10, cfg.Server.TimeoutSeconds)
	require.NotNil(t, cfg.Plugins.Watch)
	assert.True(t, *cfg.Plugins.Watch)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"bad url", "server:\n  url: '::not-a-url'\n"},
		{"bad scheme", "server:\n  url: unix:///tmp/lens.sock\n"},
		{"bad color scheme", "tui:\n  color_scheme: solarized\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.yml))
			require.Error(t, err)
		})
	}
}

func TestEnvVarExpansion(t *testing.T) {
	t.Setenv("LENS_TEST_URL", "http://example.com:9000")

	cfg, err := LoadFromBytes([]byte("server:\n  url: ${LENS_TEST_URL}\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://example.com:9000", cfg.Server.URL)

	// Default value syntax
	cfg, err = LoadFromBytes([]byte("server:\n  url: ${LENS_TEST_MISSING:-http://fallback:1}\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://fallback:1", cfg.Server.URL)
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lens.toml")
	data := `
[server]
url = "http://localhost:7777"

[tui]
color_scheme = "light"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:7777", cfg.Server.URL)
	assert.Equal(t, "light", cfg.TUI.ColorScheme)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lens.yml"), []byte("server:\n  url: http://x:1\n"), 0644))

	// Found walking upward from a nested directory
	path, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lens.yml"), path)
}

func TestLoadFromWithoutConfigReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5151", cfg.Server.URL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "lens.yml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}
