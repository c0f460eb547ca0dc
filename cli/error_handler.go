package cli

import (
	"fmt"
	"os"

	"github.com/lenslab/lens/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration not found. Create a lens.yml or pass --config.\n")
		return err

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		return err

	case errors.ErrCodeDatasetNotFound:
		if lensErr, ok := err.(*errors.LensError); ok {
			fmt.Fprintf(os.Stderr, "❌ Dataset '%s' not found\n", lensErr.Details["dataset"])
			fmt.Fprintf(os.Stderr, "Run 'lens datasets' against the server to see what is available.\n")
		}
		return err

	case errors.ErrCodePluginLoad, errors.ErrCodePluginManifest, errors.ErrCodePluginDuplicate:
		fmt.Fprintf(os.Stderr, "❌ Plugin loading failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "Check the plugin directory configured under 'plugins.dir'.\n")
		return err

	case errors.ErrCodeSubscribeFailed:
		if lensErr, ok := err.(*errors.LensError); ok {
			fmt.Fprintf(os.Stderr, "❌ Could not subscribe to events for dataset '%s'\n", lensErr.Details["dataset"])
		}
		fmt.Fprintf(os.Stderr, "Is the server running? Check 'server.url' in lens.yml.\n")
		return err

	case errors.ErrCodeNotConnected:
		fmt.Fprintf(os.Stderr, "❌ Not connected to the server. Check 'server.url' in lens.yml.\n")
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if lensErr, ok := err.(*errors.LensError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", lensErr.ToJSON())
			}
		}
		return err
	}
}
