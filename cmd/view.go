package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lenslab/lens/cli"
	"github.com/lenslab/lens/tui/app"
)

// NewViewCmd returns the command that opens the dataset view.
func NewViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <dataset>",
		Short: "Explore a dataset interactively",
		Long: `Open the interactive dataset view for the named dataset.

The view connects to the server configured under 'server.url', subscribes
to its state updates, and renders the sample grid with filtering and
selection.`,
		Example: `  # Explore the quickstart dataset
  lens view quickstart

  # Use an explicit config file
  lens view quickstart --config ./lens.yml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			if err := app.Run(cfg, args[0]); err != nil {
				return handler.Handle(err)
			}
			return nil
		},
	}
}
