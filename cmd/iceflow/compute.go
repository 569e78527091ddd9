package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Agrid-Dev/iceflow/cmd/app"
	"github.com/Agrid-Dev/iceflow/internal/cooling"
	"github.com/Agrid-Dev/iceflow/internal/report"
)

type computeFlags struct {
	variant   string
	container string
	ice       string
	start     float64
	target    float64
	rotation  float64
	salt      float64
	format    string
	curve     time.Duration
}

func newComputeCmd(configPath *string) *cobra.Command {
	var f computeFlags

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute one cooling time and print the breakdown",
		Long: `Compute one cooling time. Unset flags fall back to the panel section of
the config file.

The salt level is a mass in kg for the flux model and a percentage for the
newton model.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			f.applyTo(cmd, &cfg.Panel)

			calc, err := cfg.Calculator()
			if err != nil {
				return err
			}
			snap, err := cfg.Snapshot()
			if err != nil {
				return err
			}
			res, err := calc.Compute(snap.Variant, snap.Parameters)
			if err != nil {
				return err
			}

			var points []cooling.Point
			if f.curve != 0 && res.Reachable() {
				points, err = cooling.Curve(res, snap.Parameters.StartTemperature, snap.Parameters.TargetTemperature, f.curve)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			switch f.format {
			case "text":
				if err := report.WriteText(out, res); err != nil {
					return err
				}
				if len(points) == 0 {
					return nil
				}
				fmt.Fprintln(out)
				return report.WriteCurve(out, points)
			case "json", "yaml":
				dto := report.NewSnapshot("", snap.Variant, snap.Parameters, res, nil)
				if len(points) > 0 {
					dto.Curve = report.NewCurve(points)
				}
				return encode(out, f.format, dto)
			default:
				return fmt.Errorf("unknown format %q: expected text, json or yaml", f.format)
			}
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.variant, "variant", "", "model: flux or newton")
	fl.StringVar(&f.container, "container", "", "can size: 330ml or 500ml")
	fl.StringVar(&f.ice, "ice", "", "ice profile: large_cubes, small_cubes or crushed")
	fl.Float64Var(&f.start, "start", 0, "start temperature in °C")
	fl.Float64Var(&f.target, "target", 0, "target temperature in °C")
	fl.Float64Var(&f.rotation, "rotation", 0, "rotation speed in rev/min")
	fl.Float64Var(&f.salt, "salt", 0, "salt level (kg for flux, % for newton)")
	fl.StringVarP(&f.format, "format", "f", "text", "output format (text, json, yaml)")
	fl.DurationVar(&f.curve, "curve", 0, "also print the temperature every given interval (e.g. 5s)")
	return cmd
}

// applyTo overrides the configured panel inputs with the flags given on
// the command line.
func (f computeFlags) applyTo(cmd *cobra.Command, p *app.PanelConfig) {
	changed := cmd.Flags().Changed
	if changed("variant") {
		p.Variant = f.variant
	}
	if changed("container") {
		p.Container = f.container
	}
	if changed("ice") {
		p.IceProfile = f.ice
	}
	if changed("start") {
		p.StartTemperature = f.start
	}
	if changed("target") {
		p.TargetTemperature = f.target
	}
	if changed("rotation") {
		p.RotationSpeed = f.rotation
	}
	if changed("salt") {
		p.SaltLevel = f.salt
	}
}

func encode(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
