package cooling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlux(t *testing.T, opts ...func(*FluxConstants)) *FluxModel {
	t.Helper()
	c := DefaultFluxConstants()
	for _, opt := range opts {
		opt(&c)
	}
	m, err := NewFluxModel(c)
	require.NoError(t, err)
	return m
}

func fluxScenario() Parameters {
	return Parameters{
		StartTemperature:  20,
		TargetTemperature: 8,
		Container:         Container330,
		RotationSpeed:     200,
		IceProfile:        IceSmallCubes,
		SaltLevel:         0.01,
	}
}

func TestFluxScenario_SmallCubes(t *testing.T) {
	m := newFlux(t)
	res, err := m.Compute(fluxScenario())
	require.NoError(t, err)

	area := 2*math.Pi*0.033*0.033 + 2*math.Pi*0.033*0.115
	bath := -1.86 * (0.01 / 1.01)
	q := 0.33 * 4180 * 12.0
	meanDT := ((20 - bath) + (8 - bath)) / 2
	flux := 450 * area * 0.75 * meanDT

	d := res.Derived
	assert.Equal(t, OutcomeCooled, res.Outcome)
	assert.Equal(t, VariantFlux, res.Variant)
	assert.InDelta(t, area, d.ContainerSurfaceArea, 1e-12)
	assert.InDelta(t, area*0.75, d.EffectiveSurfaceArea, 1e-12)
	assert.InDelta(t, 450.0, d.HeatTransferCoefficient, 1e-9)
	assert.InDelta(t, bath, d.BathTemperature, 1e-12)
	assert.InDelta(t, q, d.RequiredEnergy, 1e-6)
	assert.InDelta(t, 334000.0, d.MaxAvailableEnergy, 1e-6)
	assert.InDelta(t, meanDT, d.MeanDeltaT, 1e-12)
	assert.InDelta(t, flux, d.HeatFlux, 1e-9)
	assert.InDelta(t, q/flux, res.CoolingTimeSeconds, 1e-9)
	assert.InDelta(t, 114.0, res.CoolingTimeSeconds, 0.5)
	assert.Empty(t, res.Message)
	assert.False(t, res.Capacity.Applicable)
}

func TestFluxHeatTransferCoefficient(t *testing.T) {
	m := newFlux(t)
	tests := []struct {
		name string
		rpm  float64
		want float64
	}{
		{"stagnant", 0, 100},
		{"slow", 1, 151.5},
		{"steep segment", 200, 450},
		{"just below threshold", 299, 598.5},
		{"threshold", 300, 600},
		{"saturated segment", 1000, 810},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.HeatTransferCoefficient(tt.rpm), 1e-9)
		})
	}
}

func TestFluxBathTemperature(t *testing.T) {
	m := newFlux(t)
	assert.Equal(t, 0.0, m.BathTemperature(0))
	assert.InDelta(t, -1.86*0.3/1.3, m.BathTemperature(0.3), 1e-12)

	floored := newFlux(t, func(c *FluxConstants) {
		c.FreezingDepression = 100
		c.MaxSaltMass = 10
	})
	assert.Equal(t, -21.0, floored.BathTemperature(10))
}

func TestFluxUnreachable_NotEnoughIce(t *testing.T) {
	m := newFlux(t, func(c *FluxConstants) { c.IceMassMax = 0.01 })
	p := fluxScenario()

	res, err := m.Compute(p)
	require.NoError(t, err)

	heatCapacity := 0.33 * 4180
	want := 20 - (0.01*334000)/heatCapacity
	assert.Equal(t, OutcomeUnreachableTarget, res.Outcome)
	assert.InDelta(t, want, res.BestReachableTemperature, 1e-9)
	assert.Greater(t, res.BestReachableTemperature, p.TargetTemperature)
	assert.Less(t, res.BestReachableTemperature, p.StartTemperature)
	assert.Zero(t, res.CoolingTimeSeconds)
	assert.NotEmpty(t, res.Message)
	// Derived quantities stay available for the breakdown.
	assert.Greater(t, res.Derived.RequiredEnergy, res.Derived.MaxAvailableEnergy)
	assert.Greater(t, res.Derived.HeatTransferCoefficient, 0.0)
}

func TestFluxUnreachable_TargetBelowBath(t *testing.T) {
	m := newFlux(t)
	p := fluxScenario()
	p.SaltLevel = 0.3
	p.TargetTemperature = -1

	res, err := m.Compute(p)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnreachableTarget, res.Outcome)
	assert.InDelta(t, res.Derived.BathTemperature, res.BestReachableTemperature, 1e-12)
	assert.Zero(t, res.CoolingTimeSeconds)
}

func TestFluxInvalidConfiguration(t *testing.T) {
	m := newFlux(t)
	p := fluxScenario()
	p.StartTemperature = 8
	p.TargetTemperature = 8

	res, err := m.Compute(p)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalidConfiguration, res.Outcome)
	assert.Zero(t, res.CoolingTimeSeconds)
	assert.NotEmpty(t, res.Message)
}

func TestFluxMonotonicInRotation(t *testing.T) {
	m := newFlux(t)
	p := fluxScenario()
	prev := math.Inf(1)
	for rpm := 0.0; rpm <= 1000; rpm += 10 {
		p.RotationSpeed = rpm
		res, err := m.Compute(p)
		require.NoError(t, err)
		require.Equal(t, OutcomeCooled, res.Outcome)
		assert.LessOrEqual(t, res.CoolingTimeSeconds, prev, "rpm=%v", rpm)
		prev = res.CoolingTimeSeconds
	}
}

func TestFluxMonotonicInSalt(t *testing.T) {
	m := newFlux(t)
	p := fluxScenario()
	prev := math.Inf(1)
	for i := 0; i <= 30; i++ {
		p.SaltLevel = float64(i) / 100
		res, err := m.Compute(p)
		require.NoError(t, err)
		require.Equal(t, OutcomeCooled, res.Outcome)
		assert.LessOrEqual(t, res.CoolingTimeSeconds, prev, "salt=%v", p.SaltLevel)
		prev = res.CoolingTimeSeconds
	}
}

func TestFluxPositiveFiniteTime(t *testing.T) {
	m := newFlux(t)
	for _, size := range Containers() {
		for _, ice := range IceProfiles() {
			for _, rpm := range []float64{0, 150, 300, 1000} {
				p := Parameters{
					StartTemperature:  30,
					TargetTemperature: 0,
					Container:         size,
					RotationSpeed:     rpm,
					IceProfile:        ice,
					SaltLevel:         0.1,
				}
				res, err := m.Compute(p)
				require.NoError(t, err)
				require.Equal(t, OutcomeCooled, res.Outcome)
				assert.Greater(t, res.CoolingTimeSeconds, 0.0)
				assert.False(t, math.IsInf(res.CoolingTimeSeconds, 0))
			}
		}
	}
}

func TestFluxLargerCanTakesLonger(t *testing.T) {
	m := newFlux(t)
	small := fluxScenario()
	large := fluxScenario()
	large.Container = Container500

	rs, err := m.Compute(small)
	require.NoError(t, err)
	rl, err := m.Compute(large)
	require.NoError(t, err)
	assert.Greater(t, rl.Derived.ContainerSurfaceArea, rs.Derived.ContainerSurfaceArea)
	assert.InDelta(t, 0.5, rl.Derived.Mass, 1e-12)
	assert.Greater(t, rl.CoolingTimeSeconds, rs.CoolingTimeSeconds)
}
