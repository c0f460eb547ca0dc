package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteSchemes(t *testing.T) {
	th := NewThemeWithName("lens")

	light := th.Palette(SchemeLight)
	dark := th.Palette(SchemeDark)

	assert.NotEqual(t, light.Background, dark.Background)
	assert.NotEmpty(t, light.Primary)
	assert.NotEmpty(t, dark.Primary)
}

func TestPaletteUnknownSchemePanics(t *testing.T) {
	th := NewThemeWithName("lens")
	assert.Panics(t, func() { th.Palette("sepia") })
}

func TestSetThemeOverridesActivePalette(t *testing.T) {
	original := DefaultTheme
	defer SetTheme(original)

	before := ActivePalette(SchemeDark)

	custom := NewThemeWithName("lens")
	custom.Dark.Primary = "#123456"
	SetTheme(custom)

	after := ActivePalette(SchemeDark)
	assert.Equal(t, "#123456", after.Primary)
	assert.NotEqual(t, before.Primary, after.Primary)

	// The other scheme is untouched by the override.
	assert.Equal(t, custom.Light.Primary, ActivePalette(SchemeLight).Primary)
}

func TestNewThemeWithNameFallsBack(t *testing.T) {
	th := NewThemeWithName("no-such-theme")
	require.NotNil(t, th)
	assert.Equal(t, "lens", th.Name)
}

func TestThemeAliases(t *testing.T) {
	assert.Equal(t, "lens", NewThemeWithName("default").Name)
	assert.Equal(t, "terminal", NewThemeWithName("ANSI").Name)
	assert.Equal(t, "lens", NewThemeWithName("Lens_Dark").Name)
}

func TestTerminalPalettesMatchAcrossSchemes(t *testing.T) {
	th := NewThemeWithName("terminal")
	assert.Equal(t, th.Palette(SchemeLight), th.Palette(SchemeDark))
}
