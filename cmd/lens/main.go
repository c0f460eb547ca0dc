package main

import (
	"os"

	"github.com/lenslab/lens/cli"
	"github.com/lenslab/lens/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"lens",
		"Interactive dataset exploration from the terminal",
	)

	rootCmd.AddCommand(cmd.NewViewCmd())
	rootCmd.AddCommand(cmd.NewServeCmd())
	rootCmd.AddCommand(cmd.NewConfigCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	cli.ApplyStyledHelpRecursive(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
