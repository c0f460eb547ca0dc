// Package testutil provides shared helpers for lens tests.
package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteConfig writes a lens.yml with the given content into dir and
// returns its path.
func WriteConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "lens.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TempConfigDir creates a temp dir holding a lens.yml with the given
// content and returns the directory.
func TempConfigDir(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	WriteConfig(t, dir, content)
	return dir
}

// IsolateConfig points config discovery away from the developer's real
// files for the duration of the test.
func IsolateConfig(t *testing.T) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

// RandomID returns a short random hex id, for subscription ids in tests.
func RandomID(t *testing.T) string {
	t.Helper()

	buf := make([]byte, 8)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return hex.EncodeToString(buf)
}
