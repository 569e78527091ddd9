package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Agrid-Dev/iceflow/cmd/app"
	"github.com/Agrid-Dev/iceflow/internal/report"
)

func newOptionsCmd(configPath *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List variants, containers, ice profiles and input limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q: expected json or yaml", format)
			}
			cfg, err := app.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			calc, err := cfg.Calculator()
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), format, report.NewOptions(calc.Options()))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (json, yaml)")
	return cmd
}
