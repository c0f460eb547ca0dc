package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lenslab/lens/config"
	"github.com/lenslab/lens/tui/theme"
)

// InitializeTUI prepares the terminal environment before a program starts.
// It honors environment variables that force color output (`CLICOLOR_FORCE`,
// `COLORTERM`) and applies the configured color scheme so adaptive palettes
// resolve deterministically regardless of background detection.
//
// Call it at the start of main, before the first render.
func InitializeTUI(cfg *config.Config) {
	if os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}

	if cfg == nil || cfg.TUI == nil {
		return
	}
	switch cfg.TUI.ColorScheme {
	case theme.SchemeLight:
		lipgloss.SetHasDarkBackground(false)
	case theme.SchemeDark:
		lipgloss.SetHasDarkBackground(true)
	}
}
