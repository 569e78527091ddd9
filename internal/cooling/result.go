package cooling

import "time"

// Derived holds every intermediate quantity of a computation. It is filled
// on all outcomes so callers can explain unreachable or invalid results.
type Derived struct {
	Mass                    float64 // kg
	ContainerSurfaceArea    float64 // m²
	EffectiveSurfaceArea    float64 // m²
	HeatTransferCoefficient float64 // W/(m²·K)
	BathTemperature         float64 // °C
	RequiredEnergy          float64 // J

	// Flux model only.
	MaxAvailableEnergy float64 // J
	MeanDeltaT         float64 // K
	HeatFlux           float64 // W

	// Newton model only.
	CoolingRateConstant float64 // 1/s
}

// Capacity estimates how many beverages a mass of ice can cool.
type Capacity struct {
	Applicable        bool
	IceWarmingEnergy  float64 // J
	IceMeltingEnergy  float64 // J
	IceEnergy         float64 // J
	EnergyPerBeverage float64 // J
	BeveragesPerKg    float64
}

type Result struct {
	Variant                  Variant
	Outcome                  Outcome
	CoolingTimeSeconds       float64
	BestReachableTemperature float64
	Message                  string
	Derived                  Derived
	Capacity                 Capacity
}

func (r Result) Reachable() bool {
	return r.Outcome == OutcomeCooled
}

func (r Result) CoolingTime() time.Duration {
	return time.Duration(r.CoolingTimeSeconds * float64(time.Second))
}
