package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"

	"github.com/Agrid-Dev/iceflow/internal/cooling"
)

type Sweep struct {
	Variant   cooling.Variant
	SaltLevel float64
	Steps     int
}

// WriteCoolingCurves writes one row per (variant, ice profile, rotation)
// with the cooling time from 22 °C to 6 °C for a 330 ml can.
func WriteCoolingCurves(filename string, sweeps []Sweep) error {
	calc := cooling.NewDefaultCalculator()

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write CSV header
	if err := writer.Write([]string{"Variant", "IceProfile", "Rotation", "SaltLevel", "H", "Bath", "Outcome", "CoolingTime", "BestReachable"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	for _, sw := range sweeps {
		limits, err := calc.Limits(sw.Variant)
		if err != nil {
			return err
		}
		for _, ice := range cooling.IceProfiles() {
			for i := 0; i <= sw.Steps; i++ {
				rpm := limits.MaxRotation * float64(i) / float64(sw.Steps)
				res, err := calc.Compute(sw.Variant, cooling.Parameters{
					StartTemperature:  22,
					TargetTemperature: 6,
					Container:         cooling.Container330,
					RotationSpeed:     rpm,
					IceProfile:        ice,
					SaltLevel:         sw.SaltLevel,
				})
				if err != nil {
					return fmt.Errorf("%s at %.0f rpm: %v", sw.Variant, rpm, err)
				}

				if err := writer.Write([]string{
					sw.Variant.String(),
					ice.String(),
					fmt.Sprintf("%.0f", rpm),
					fmt.Sprintf("%g", sw.SaltLevel),
					fmt.Sprintf("%.1f", res.Derived.HeatTransferCoefficient),
					fmt.Sprintf("%.2f", res.Derived.BathTemperature),
					res.Outcome.String(),
					fmt.Sprintf("%.1f", res.CoolingTimeSeconds),
					fmt.Sprintf("%.2f", res.BestReachableTemperature),
				}); err != nil {
					return fmt.Errorf("failed to write CSV record: %v", err)
				}
			}
		}
	}
	return nil
}

func main() {
	sweeps := []Sweep{
		{Variant: cooling.VariantFlux, SaltLevel: 0.1, Steps: 20},
		{Variant: cooling.VariantNewton, SaltLevel: 80, Steps: 20},
	}
	if err := WriteCoolingCurves("cooling_curves.csv", sweeps); err != nil {
		log.Fatal(err)
	}
}
