package report

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/Agrid-Dev/iceflow/internal/cooling"
)

// Headline is the one-line verdict for a result.
func Headline(r cooling.Result) string {
	switch r.Outcome {
	case cooling.OutcomeCooled:
		return fmt.Sprintf("Cooling time: %s s (%s)", fixed(r.CoolingTimeSeconds, placesTime), MinutesSeconds(r.CoolingTimeSeconds))
	case cooling.OutcomeUnreachableTarget:
		return fmt.Sprintf("Target temperature not reachable: %s. Best reachable: %s °C",
			r.Message, fixed(r.BestReachableTemperature, placesTemperature))
	case cooling.OutcomeInvalidConfiguration:
		return "No cooling needed: " + r.Message
	default:
		return "Unknown outcome"
	}
}

// MinutesSeconds formats a duration in seconds as "2 min 52 s".
func MinutesSeconds(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "n/a"
	}
	total := int64(seconds)
	return fmt.Sprintf("%d min %d s", total/60, total%60)
}

// WriteText prints the headline and the breakdown of derived quantities.
func WriteText(w io.Writer, r cooling.Result) error {
	d := r.Derived
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, Headline(r))
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Model:\t%s\n", r.Variant)
	fmt.Fprintf(tw, "Container surface:\t%s m²\n", fixed(d.ContainerSurfaceArea, placesArea))
	fmt.Fprintf(tw, "Effective surface:\t%s m²\n", fixed(d.EffectiveSurfaceArea, placesArea))
	fmt.Fprintf(tw, "Heat transfer coefficient:\t%s W/m²K\n", fixed(d.HeatTransferCoefficient, placesH))
	fmt.Fprintf(tw, "Bath temperature:\t%s °C\n", fixed(d.BathTemperature, placesTemperature))
	fmt.Fprintf(tw, "Required energy:\t%s J\n", fixed(d.RequiredEnergy, placesEnergy))

	switch r.Variant {
	case cooling.VariantFlux:
		fmt.Fprintf(tw, "Max energy from ice:\t%s J\n", fixed(d.MaxAvailableEnergy, placesEnergy))
		fmt.Fprintf(tw, "Mean temperature difference:\t%s K\n", fixed(d.MeanDeltaT, placesTemperature))
		fmt.Fprintf(tw, "Heat flux:\t%s W\n", fixed(d.HeatFlux, placesH))
	case cooling.VariantNewton:
		fmt.Fprintf(tw, "Cooling rate constant:\t%s 1/s\n", fixed(d.CoolingRateConstant, placesRate))
		c := r.Capacity
		fmt.Fprintf(tw, "Capacity of 1 kg ice:\t%s kJ\n", fixed(c.IceEnergy/1000, 1))
		if c.Applicable {
			fmt.Fprintf(tw, "Energy per beverage:\t%s kJ\n", fixed(c.EnergyPerBeverage/1000, 1))
			fmt.Fprintf(tw, "Beverages per kg ice:\t~%s\n", fixed(c.BeveragesPerKg, placesCapacity))
		} else {
			fmt.Fprintf(tw, "Beverages per kg ice:\tn/a\n")
		}
	}
	return tw.Flush()
}

func fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// WriteCurve prints one line per sample.
func WriteCurve(w io.Writer, points []cooling.Point) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Time (s)\tTemperature (°C)\t")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%s\t\n", fixed(p.Elapsed.Seconds(), placesTime), fixed(p.Temperature, placesTemperature))
	}
	return tw.Flush()
}
