package cooling

import (
	"fmt"
	"math"
)

// NewtonModel applies Newton's law of cooling with a heat transfer
// coefficient scaled by ice type and rotation. It also estimates how many
// beverages a kilogram of ice can cool.
type NewtonModel struct {
	c NewtonConstants
}

func NewNewtonModel(c NewtonConstants) (*NewtonModel, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &NewtonModel{c: c}, nil
}

func (m *NewtonModel) Variant() Variant { return VariantNewton }

func (m *NewtonModel) Constants() NewtonConstants { return m.c }

func (m *NewtonModel) Limits() Limits {
	return Limits{MaxRotation: m.c.MaxRotation, MaxSalt: 100, SaltUnit: VariantNewton.SaltUnit()}
}

// BathTemperature interpolates linearly between 0 °C (no salt) and the
// floor at 100 %.
func (m *NewtonModel) BathTemperature(saltPercent float64) float64 {
	return math.Max(m.c.BathFloor, m.c.BathFloor*(saltPercent/100.0))
}

func (m *NewtonModel) RotationFactor(rpm float64) float64 {
	return 1 + (m.c.MaxRotationFactor-1)*(rpm/m.c.MaxRotation)
}

func (m *NewtonModel) HeatTransferCoefficient(profile IceProfile, rpm float64) float64 {
	return m.c.BaseH * m.c.IceFactor.For(profile) * m.RotationFactor(rpm)
}

// IceCapacity returns the energy CapacityIceMass of ice absorbs when warmed
// from the freezer to 0 °C and melted, and how many beverages that cools.
func (m *NewtonModel) IceCapacity(mass, deltaT float64) Capacity {
	warming := m.c.CapacityIceMass * m.c.IceSpecificHeat * (0 - m.c.IceStartTemp)
	melting := m.c.CapacityIceMass * m.c.LatentHeat
	c := Capacity{
		IceWarmingEnergy: warming,
		IceMeltingEnergy: melting,
		IceEnergy:        warming + melting,
	}
	if deltaT <= 0 {
		return c
	}
	c.Applicable = true
	c.EnergyPerBeverage = mass * m.c.SpecificHeat * deltaT
	c.BeveragesPerKg = c.IceEnergy / c.EnergyPerBeverage / m.c.CapacityIceMass
	return c
}

func (m *NewtonModel) Compute(p Parameters) (Result, error) {
	if err := p.Validate(m.Limits()); err != nil {
		return Result{}, err
	}

	mass := p.Container.Liters() * m.c.Density
	area := m.c.SurfaceArea.For(p.Container)
	bath := m.BathTemperature(p.SaltLevel)
	h := m.HeatTransferCoefficient(p.IceProfile, p.RotationSpeed)
	deltaT := p.StartTemperature - p.TargetTemperature

	d := Derived{
		Mass:                    mass,
		ContainerSurfaceArea:    area,
		EffectiveSurfaceArea:    area,
		HeatTransferCoefficient: h,
		BathTemperature:         bath,
		RequiredEnergy:          mass * m.c.SpecificHeat * deltaT,
		CoolingRateConstant:     (h * area) / (mass * m.c.SpecificHeat),
	}

	res := Result{
		Variant:  VariantNewton,
		Derived:  d,
		Capacity: m.IceCapacity(mass, deltaT),
	}

	switch {
	case p.StartTemperature <= p.TargetTemperature:
		res.Outcome = OutcomeInvalidConfiguration
		res.Message = "start temperature must be above target temperature"
	// Exponential decay only approaches the bath, so equality is unreachable too.
	case p.TargetTemperature <= bath:
		res.Outcome = OutcomeUnreachableTarget
		res.BestReachableTemperature = bath
		res.Message = fmt.Sprintf("target %.1f °C is below the coolant temperature %.1f °C", p.TargetTemperature, bath)
	default:
		ratio := (p.TargetTemperature - bath) / (p.StartTemperature - bath)
		res.Outcome = OutcomeCooled
		res.CoolingTimeSeconds = -math.Log(ratio) / d.CoolingRateConstant
	}
	return res, nil
}
