package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenslab/lens/testutil"
)

func TestNewStandardCommandFlags(t *testing.T) {
	cmd := NewStandardCommand("lens", "test")
	require.NoError(t, cmd.ParseFlags([]string{"--verbose", "--json", "-c", "/tmp/lens.yml"}))

	opts := GetOptions(cmd)
	assert.True(t, opts.Verbose)
	assert.True(t, opts.JSONOutput)
	assert.Equal(t, "/tmp/lens.yml", opts.ConfigFile)
}

func TestLoadConfigFromFlag(t *testing.T) {
	testutil.IsolateConfig(t)
	path := testutil.WriteConfig(t, t.TempDir(), "server:\n  url: http://flagged:5151\n")

	cmd := NewStandardCommand("lens", "test")
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))

	cfg, err := LoadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "http://flagged:5151", cfg.Server.URL)
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	testutil.IsolateConfig(t)

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(oldWd)
	require.NoError(t, os.Chdir(t.TempDir()))

	cmd := NewStandardCommand("lens", "test")
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := LoadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5151", cfg.Server.URL)
}
