package cooling

import (
	"fmt"
	"math"
)

// FluxModel estimates cooling time from a constant mean heat flux, capped by
// the latent heat of the ice in contact with the can.
type FluxModel struct {
	c FluxConstants
}

func NewFluxModel(c FluxConstants) (*FluxModel, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &FluxModel{c: c}, nil
}

func (m *FluxModel) Variant() Variant { return VariantFlux }

func (m *FluxModel) Constants() FluxConstants { return m.c }

func (m *FluxModel) Limits() Limits {
	return Limits{MaxRotation: m.c.MaxRotation, MaxSalt: m.c.MaxSaltMass, SaltUnit: VariantFlux.SaltUnit()}
}

// SurfaceArea is the closed-cylinder area of the can (both lids and the side).
func (m *FluxModel) SurfaceArea(size ContainerSize) float64 {
	r := m.c.CanRadius
	return 2*math.Pi*r*r + 2*math.Pi*r*m.c.CanHeight.For(size)
}

// HeatTransferCoefficient rises steeply up to the rotation threshold, then
// flattens out.
func (m *FluxModel) HeatTransferCoefficient(rpm float64) float64 {
	switch {
	case rpm <= 0:
		return m.c.StagnantH
	case rpm < m.c.RotationThreshold:
		return m.c.BaseH + rpm*m.c.SteepSlope
	default:
		return m.c.SaturatedH + (rpm-m.c.RotationThreshold)*m.c.ShallowSlope
	}
}

// BathTemperature applies a freezing-point depression to the salt mass in kg.
func (m *FluxModel) BathTemperature(saltKg float64) float64 {
	t := math.Min(0, -m.c.FreezingDepression*(saltKg/(1+saltKg)))
	return math.Max(m.c.BathFloor, t)
}

func (m *FluxModel) Compute(p Parameters) (Result, error) {
	if err := p.Validate(m.Limits()); err != nil {
		return Result{}, err
	}

	mass := p.Container.Liters() * m.c.Density
	heatCapacity := mass * m.c.SpecificHeat
	area := m.SurfaceArea(p.Container)
	bath := m.BathTemperature(p.SaltLevel)
	h := m.HeatTransferCoefficient(p.RotationSpeed)

	d := Derived{
		Mass:                    mass,
		ContainerSurfaceArea:    area,
		EffectiveSurfaceArea:    area * m.c.Contact.For(p.IceProfile),
		HeatTransferCoefficient: h,
		BathTemperature:         bath,
		RequiredEnergy:          heatCapacity * (p.StartTemperature - p.TargetTemperature),
		MaxAvailableEnergy:      m.c.IceMassMax * m.c.LatentHeat,
		MeanDeltaT:              ((p.StartTemperature - bath) + (p.TargetTemperature - bath)) / 2,
	}
	d.HeatFlux = h * d.EffectiveSurfaceArea * d.MeanDeltaT

	res := Result{Variant: VariantFlux, Derived: d}

	switch {
	case p.StartTemperature <= p.TargetTemperature:
		res.Outcome = OutcomeInvalidConfiguration
		res.Message = "start temperature must be above target temperature"
	case p.TargetTemperature < bath:
		res.Outcome = OutcomeUnreachableTarget
		res.BestReachableTemperature = bath
		res.Message = fmt.Sprintf("target %.1f °C is below the bath temperature %.2f °C", p.TargetTemperature, bath)
	case d.RequiredEnergy > d.MaxAvailableEnergy:
		res.Outcome = OutcomeUnreachableTarget
		res.BestReachableTemperature = p.StartTemperature - d.MaxAvailableEnergy/heatCapacity
		res.Message = fmt.Sprintf("too little ice in contact: only %.1f °C reachable", res.BestReachableTemperature)
	case d.HeatFlux <= 0:
		res.Outcome = OutcomeUnreachableTarget
		res.BestReachableTemperature = bath
		res.Message = "bath is not colder than the beverage"
	default:
		res.Outcome = OutcomeCooled
		res.CoolingTimeSeconds = d.RequiredEnergy / d.HeatFlux
	}
	return res, nil
}
