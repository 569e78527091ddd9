package cooling

import "fmt"

// FluxConstants parameterize the capacity-limited constant-flux model.
type FluxConstants struct {
	SpecificHeat float64  `koanf:"specific_heat"` // J/(kg·K), beverage
	Density      float64  `koanf:"density"`       // kg/L
	CanRadius    float64  `koanf:"can_radius"`    // m
	CanHeight    CanTable `koanf:"can_height"`    // m
	Contact      IceTable `koanf:"contact"`       // fraction of the can surface touching the bath

	StagnantH         float64 `koanf:"stagnant_h"` // W/(m²·K) without rotation
	BaseH             float64 `koanf:"base_h"`
	SteepSlope        float64 `koanf:"steep_slope"`
	RotationThreshold float64 `koanf:"rotation_threshold"` // rev/min
	SaturatedH        float64 `koanf:"saturated_h"`
	ShallowSlope      float64 `koanf:"shallow_slope"`

	FreezingDepression float64 `koanf:"freezing_depression"` // K per unit salt ratio
	BathFloor          float64 `koanf:"bath_floor"`          // °C

	IceMassMax float64 `koanf:"ice_mass_max"` // kg of ice in contact
	LatentHeat float64 `koanf:"latent_heat"`  // J/kg

	MaxRotation float64 `koanf:"max_rotation"`  // rev/min
	MaxSaltMass float64 `koanf:"max_salt_mass"` // kg
}

func DefaultFluxConstants() FluxConstants {
	return FluxConstants{
		SpecificHeat: 4180,
		Density:      1.0,
		CanRadius:    0.033,
		CanHeight:    CanTable{Can330: 0.115, Can500: 0.168},
		Contact:      IceTable{LargeCubes: 0.5, SmallCubes: 0.75, Crushed: 0.95},

		StagnantH:         100,
		BaseH:             150,
		SteepSlope:        1.5,
		RotationThreshold: 300,
		SaturatedH:        600,
		ShallowSlope:      0.3,

		FreezingDepression: 1.86,
		BathFloor:          -21,

		IceMassMax: 1.0,
		LatentHeat: 334000,

		MaxRotation: 1000,
		MaxSaltMass: 0.3,
	}
}

func (c *FluxConstants) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"specific_heat", c.SpecificHeat},
		{"density", c.Density},
		{"can_radius", c.CanRadius},
		{"can_height.can_330", c.CanHeight.Can330},
		{"can_height.can_500", c.CanHeight.Can500},
		{"stagnant_h", c.StagnantH},
		{"base_h", c.BaseH},
		{"rotation_threshold", c.RotationThreshold},
		{"saturated_h", c.SaturatedH},
		{"ice_mass_max", c.IceMassMax},
		{"latent_heat", c.LatentHeat},
		{"max_rotation", c.MaxRotation},
	}
	for _, f := range positive {
		if err := requirePositive(f.name, f.v); err != nil {
			return err
		}
	}
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"steep_slope", c.SteepSlope},
		{"shallow_slope", c.ShallowSlope},
		{"freezing_depression", c.FreezingDepression},
		{"max_salt_mass", c.MaxSaltMass},
	}
	for _, f := range nonNegative {
		if f.v < 0 || !finite(f.v) {
			return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidConstant, f.name, f.v)
		}
	}
	if err := validateFractions("contact", c.Contact); err != nil {
		return err
	}
	if c.BathFloor > 0 || !finite(c.BathFloor) {
		return fmt.Errorf("%w: bath_floor must be <= 0, got %v", ErrInvalidConstant, c.BathFloor)
	}
	return nil
}

// NewtonConstants parameterize the exponential-decay model.
type NewtonConstants struct {
	SpecificHeat    float64 `koanf:"specific_heat"`     // J/(kg·K), beverage
	IceSpecificHeat float64 `koanf:"ice_specific_heat"` // J/(kg·K)
	LatentHeat      float64 `koanf:"latent_heat"`       // J/kg
	IceStartTemp    float64 `koanf:"ice_start_temp"`    // °C, freezer temperature
	CapacityIceMass float64 `koanf:"capacity_ice_mass"` // kg

	Density     float64  `koanf:"density"`      // kg/L
	SurfaceArea CanTable `koanf:"surface_area"` // m²
	IceFactor   IceTable `koanf:"ice_factor"`

	BaseH             float64 `koanf:"base_h"` // W/(m²·K), large cubes at rest
	MaxRotationFactor float64 `koanf:"max_rotation_factor"`
	MaxRotation       float64 `koanf:"max_rotation"` // rev/min

	BathFloor float64 `koanf:"bath_floor"` // °C at 100 % salt
}

func DefaultNewtonConstants() NewtonConstants {
	return NewtonConstants{
		SpecificHeat:    4182,
		IceSpecificHeat: 2090,
		LatentHeat:      334000,
		IceStartTemp:    -18,
		CapacityIceMass: 1.0,

		Density:     1.0,
		SurfaceArea: CanTable{Can330: 0.038, Can500: 0.050},
		IceFactor:   IceTable{LargeCubes: 1.0, SmallCubes: 1.4, Crushed: 1.8},

		BaseH:             150,
		MaxRotationFactor: 5,
		MaxRotation:       400,

		BathFloor: -21,
	}
}

func (c *NewtonConstants) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"specific_heat", c.SpecificHeat},
		{"ice_specific_heat", c.IceSpecificHeat},
		{"latent_heat", c.LatentHeat},
		{"capacity_ice_mass", c.CapacityIceMass},
		{"density", c.Density},
		{"surface_area.can_330", c.SurfaceArea.Can330},
		{"surface_area.can_500", c.SurfaceArea.Can500},
		{"ice_factor.large_cubes", c.IceFactor.LargeCubes},
		{"ice_factor.small_cubes", c.IceFactor.SmallCubes},
		{"ice_factor.crushed", c.IceFactor.Crushed},
		{"base_h", c.BaseH},
		{"max_rotation", c.MaxRotation},
	}
	for _, f := range positive {
		if err := requirePositive(f.name, f.v); err != nil {
			return err
		}
	}
	if c.MaxRotationFactor < 1 || !finite(c.MaxRotationFactor) {
		return fmt.Errorf("%w: max_rotation_factor must be >= 1, got %v", ErrInvalidConstant, c.MaxRotationFactor)
	}
	if c.IceStartTemp > 0 || !finite(c.IceStartTemp) {
		return fmt.Errorf("%w: ice_start_temp must be <= 0, got %v", ErrInvalidConstant, c.IceStartTemp)
	}
	if c.BathFloor > 0 || !finite(c.BathFloor) {
		return fmt.Errorf("%w: bath_floor must be <= 0, got %v", ErrInvalidConstant, c.BathFloor)
	}
	return nil
}

func requirePositive(name string, v float64) error {
	if !(v > 0) || !finite(v) {
		return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidConstant, name, v)
	}
	return nil
}

func validateFractions(name string, t IceTable) error {
	for _, p := range IceProfiles() {
		v := t.For(p)
		if !(v > 0) || v > 1 {
			return fmt.Errorf("%w: %s.%s must be in (0, 1], got %v", ErrInvalidConstant, name, p, v)
		}
	}
	return nil
}
