package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "iceflow",
		Short: "Estimate how long a can takes to cool in a rotating ice-salt bath",
		Long: `iceflow estimates the cooling time of a canned beverage rotated in an
ice-salt bath, and how many beverages a kilogram of ice can cool.

Examples:
  iceflow compute --variant newton --start 22 --target 6 --rotation 400 --ice crushed --salt 80
  iceflow compute --variant flux --salt 0.1 --format json
  iceflow serve --config config.yaml
  iceflow options`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file (.yaml/.yml/.json)")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newComputeCmd(&configPath))
	root.AddCommand(newOptionsCmd(&configPath))
	return root
}
