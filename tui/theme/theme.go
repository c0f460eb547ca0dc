// Package theme provides the process-wide color theme for lens. A theme
// carries one palette per color scheme ("light"/"dark"); both schemes
// define the same token set. The active theme may be replaced once, via
// SetTheme, before any component reads it. The contract is documented
// rather than enforced: theme selection happens synchronously during
// startup, before anything renders.
package theme

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lenslab/lens/config"
)

const defaultThemeName = "lens"

// Scheme keys accepted by Theme.Palette and ActivePalette.
const (
	SchemeLight = "light"
	SchemeDark  = "dark"
)

// --- lens dark palette ---
const (
	lensDarkBackground    = "#1A1A1A"
	lensDarkLevel1        = "#262626"
	lensDarkLevel2        = "#323232"
	lensDarkLevel3        = "#3E3E3E"
	lensDarkPrimary       = "#FF6D04"
	lensDarkSecondary     = "#7FB4CA"
	lensDarkDanger        = "#FF5D62"
	lensDarkWarning       = "#FF9E3B"
	lensDarkSuccess       = "#98BB6C"
	lensDarkInfo          = "#7E9CD8"
	lensDarkText          = "#DCD7BA"
	lensDarkSecondaryText = "#9E9E9E"
	lensDarkMutedText     = "#6A6A6A"
	lensDarkDivider       = "#3E3E42"
	lensDarkSelection     = "#2D3B50"
)

// --- lens light palette ---
const (
	lensLightBackground    = "#FFFFFF"
	lensLightLevel1        = "#F6F6F6"
	lensLightLevel2        = "#ECECEC"
	lensLightLevel3        = "#E0E0E0"
	lensLightPrimary       = "#E05A00"
	lensLightSecondary     = "#4F7CAC"
	lensLightDanger        = "#C34043"
	lensLightWarning       = "#A66300"
	lensLightSuccess       = "#4E7C5A"
	lensLightInfo          = "#5B8BBE"
	lensLightText          = "#2B2F42"
	lensLightSecondaryText = "#5C6070"
	lensLightMutedText     = "#8A8FA3"
	lensLightDivider       = "#D4D6DE"
	lensLightSelection     = "#DCE4F5"
)

// --- terminal (ANSI-friendly) palette, same tokens for both schemes ---
const (
	terminalBackground    = "0"
	terminalLevel1        = "0"
	terminalLevel2        = "8"
	terminalLevel3        = "8"
	terminalPrimary       = "208"
	terminalSecondary     = "4"
	terminalDanger        = "1"
	terminalWarning       = "3"
	terminalSuccess       = "2"
	terminalInfo          = "6"
	terminalText          = "7"
	terminalSecondaryText = "8"
	terminalMutedText     = "8"
	terminalDivider       = "8"
	terminalSelection     = "8"
)

// Palette is the resolved set of semantic color tokens for one color
// scheme. Every scheme defines every token.
type Palette struct {
	Background    string
	Level1        string
	Level2        string
	Level3        string
	Primary       string
	Secondary     string
	Danger        string
	Warning       string
	Success       string
	Info          string
	Text          string
	SecondaryText string
	MutedText     string
	Divider       string
	Selection     string
}

// Theme holds the palettes for both color schemes plus the pre-configured
// lipgloss styles derived from them.
type Theme struct {
	Name  string
	Light Palette
	Dark  Palette

	// Headers and titles
	Header lipgloss.Style
	Title  lipgloss.Style

	// Status indicators
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Text hierarchy
	Bold     lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	// Containers
	Box        lipgloss.Style
	DetailsBox lipgloss.Style

	// Special styles
	Highlight lipgloss.Style
	Accent    lipgloss.Style
	Spinner   lipgloss.Style
}

// Palette returns the palette for the given scheme key. Unknown keys are
// a caller programming error.
func (t *Theme) Palette(scheme string) Palette {
	switch scheme {
	case SchemeLight:
		return t.Light
	case SchemeDark:
		return t.Dark
	default:
		panic(fmt.Sprintf("theme: unknown color scheme %q", scheme))
	}
}

var themeRegistry = map[string]func() (Palette, Palette){
	"lens":     newLensPalettes,
	"terminal": newTerminalPalettes,
}

var themeAliases = map[string]string{
	"lens-dark":  "lens",
	"lens-light": "lens",
	"default":    "lens",
	"ansi":       "terminal",
}

// DefaultTheme is the active theme for the process. It is constructed at
// init from LENS_THEME or the config "tui" extension and may be replaced
// once with SetTheme before first use.
var DefaultTheme = NewTheme()

// SetTheme replaces the process-wide theme. It must be called before any
// component reads DefaultTheme; there is no synchronization because theme
// selection happens during startup, before anything renders.
func SetTheme(t *Theme) {
	DefaultTheme = t
}

// ActivePalette returns the active theme's palette for the given scheme.
func ActivePalette(scheme string) Palette {
	return DefaultTheme.Palette(scheme)
}

// NewTheme creates a theme based on the configured theme selection.
func NewTheme() *Theme {
	return NewThemeWithName(getThemeName())
}

// NewThemeWithName constructs a theme from a specific palette name.
// Unrecognized names fall back to the default palette.
func NewThemeWithName(name string) *Theme {
	key := normalizeThemeName(name)
	if alias, ok := themeAliases[key]; ok {
		key = alias
	}
	builder, ok := themeRegistry[key]
	if !ok {
		key = defaultThemeName
		builder = themeRegistry[key]
	}
	light, dark := builder()
	return newThemeFromPalettes(key, light, dark)
}

func newThemeFromPalettes(name string, light, dark Palette) *Theme {
	adaptive := func(pick func(Palette) string) lipgloss.TerminalColor {
		l, d := pick(light), pick(dark)
		if l == d {
			return lipgloss.Color(l)
		}
		return lipgloss.AdaptiveColor{Light: l, Dark: d}
	}

	primary := adaptive(func(p Palette) string { return p.Primary })
	secondary := adaptive(func(p Palette) string { return p.Secondary })
	danger := adaptive(func(p Palette) string { return p.Danger })
	warning := adaptive(func(p Palette) string { return p.Warning })
	success := adaptive(func(p Palette) string { return p.Success })
	info := adaptive(func(p Palette) string { return p.Info })
	text := adaptive(func(p Palette) string { return p.Text })
	divider := adaptive(func(p Palette) string { return p.Divider })
	selection := adaptive(func(p Palette) string { return p.Selection })

	return &Theme{
		Name:  name,
		Light: light,
		Dark:  dark,

		Header: lipgloss.NewStyle().
			Bold(true).
			MarginTop(1).
			MarginBottom(1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			MarginBottom(1),

		Success: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(danger).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(info).
			Bold(true),

		Bold: lipgloss.NewStyle().
			Bold(true),

		Normal: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Faint(true),

		Selected: lipgloss.NewStyle().
			Background(selection).
			Foreground(text),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(divider).
			Padding(1, 2).
			Margin(1, 0),

		DetailsBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(secondary).
			Padding(0, 1),

		Highlight: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),

		Accent: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(primary),
	}
}

func normalizeThemeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")
	return normalized
}

func getThemeName() string {
	if theme := normalizeThemeName(os.Getenv("LENS_THEME")); theme != "" {
		return theme
	}

	cfg, err := config.LoadDefault()
	if err != nil || cfg == nil || cfg.TUI == nil {
		return defaultThemeName
	}
	if theme := normalizeThemeName(cfg.TUI.Theme); theme != "" {
		return theme
	}

	return defaultThemeName
}

func newLensPalettes() (light, dark Palette) {
	light = Palette{
		Background:    lensLightBackground,
		Level1:        lensLightLevel1,
		Level2:        lensLightLevel2,
		Level3:        lensLightLevel3,
		Primary:       lensLightPrimary,
		Secondary:     lensLightSecondary,
		Danger:        lensLightDanger,
		Warning:       lensLightWarning,
		Success:       lensLightSuccess,
		Info:          lensLightInfo,
		Text:          lensLightText,
		SecondaryText: lensLightSecondaryText,
		MutedText:     lensLightMutedText,
		Divider:       lensLightDivider,
		Selection:     lensLightSelection,
	}
	dark = Palette{
		Background:    lensDarkBackground,
		Level1:        lensDarkLevel1,
		Level2:        lensDarkLevel2,
		Level3:        lensDarkLevel3,
		Primary:       lensDarkPrimary,
		Secondary:     lensDarkSecondary,
		Danger:        lensDarkDanger,
		Warning:       lensDarkWarning,
		Success:       lensDarkSuccess,
		Info:          lensDarkInfo,
		Text:          lensDarkText,
		SecondaryText: lensDarkSecondaryText,
		MutedText:     lensDarkMutedText,
		Divider:       lensDarkDivider,
		Selection:     lensDarkSelection,
	}
	return light, dark
}

func newTerminalPalettes() (light, dark Palette) {
	p := Palette{
		Background:    terminalBackground,
		Level1:        terminalLevel1,
		Level2:        terminalLevel2,
		Level3:        terminalLevel3,
		Primary:       terminalPrimary,
		Secondary:     terminalSecondary,
		Danger:        terminalDanger,
		Warning:       terminalWarning,
		Success:       terminalSuccess,
		Info:          terminalInfo,
		Text:          terminalText,
		SecondaryText: terminalSecondaryText,
		MutedText:     terminalMutedText,
		Divider:       terminalDivider,
		Selection:     terminalSelection,
	}
	return p, p
}
