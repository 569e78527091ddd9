package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Agrid-Dev/iceflow/internal/cooling"
)

func newtonParams() cooling.Parameters {
	return cooling.Parameters{
		StartTemperature:  22,
		TargetTemperature: 6,
		Container:         cooling.Container330,
		RotationSpeed:     400,
		IceProfile:        cooling.IceCrushed,
		SaltLevel:         80,
	}
}

func compute(t *testing.T, v cooling.Variant, p cooling.Parameters) cooling.Result {
	t.Helper()
	res, err := cooling.NewDefaultCalculator().Compute(v, p)
	require.NoError(t, err)
	return res
}

func TestRound(t *testing.T) {
	tests := []struct {
		in     float64
		places int32
		want   float64
	}{
		{1.005, 2, 1.01},
		{-16.8000001, 2, -16.8},
		{114.04, 1, 114.0},
		{2.5, 0, 3},
		{-2.5, 0, -3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.in, tt.places), "Round(%v, %d)", tt.in, tt.places)
	}
}

func TestNewResult_Newton(t *testing.T) {
	dto := NewResult(compute(t, cooling.VariantNewton, newtonParams()))

	assert.Equal(t, "newton", dto.Variant)
	assert.Equal(t, "cooled", dto.Outcome)
	assert.Equal(t, -16.8, dto.Derived.BathTemperature)
	assert.Equal(t, 1350.0, dto.Derived.HeatTransferCoefficient)
	assert.Nil(t, dto.BestReachableTemperature)
	require.NotNil(t, dto.Capacity)
	assert.True(t, dto.Capacity.Applicable)
	assert.Equal(t, 16.8, dto.Capacity.BeveragesPerKg)
	assert.Equal(t, 371620.0, dto.Capacity.IceEnergy)
}

func TestNewResult_FluxHasNoCapacity(t *testing.T) {
	p := newtonParams()
	p.SaltLevel = 0.01
	dto := NewResult(compute(t, cooling.VariantFlux, p))

	assert.Equal(t, "flux", dto.Variant)
	assert.Nil(t, dto.Capacity)
	assert.Equal(t, 334000.0, dto.Derived.MaxAvailableEnergy)
}

func TestNewResult_UnreachableCarriesBestTemperature(t *testing.T) {
	p := newtonParams()
	p.TargetTemperature = -20
	dto := NewResult(compute(t, cooling.VariantNewton, p))

	assert.Equal(t, "unreachable_target", dto.Outcome)
	require.NotNil(t, dto.BestReachableTemperature)
	assert.Equal(t, -16.8, *dto.BestReachableTemperature)
	assert.Zero(t, dto.CoolingTimeSeconds)
	assert.NotEmpty(t, dto.Message)
}

func TestParametersRoundTrip(t *testing.T) {
	dto := NewParameters(cooling.VariantNewton, newtonParams())
	assert.Equal(t, "%", dto.SaltUnit)

	b, err := json.Marshal(dto)
	require.NoError(t, err)

	var back ParametersDTO
	require.NoError(t, json.Unmarshal(b, &back))
	v, p, err := back.Decode()
	require.NoError(t, err)
	assert.Equal(t, cooling.VariantNewton, v)
	assert.Equal(t, newtonParams(), p)
}

func TestDecodeErrors(t *testing.T) {
	base := func() ParametersDTO { return NewParameters(cooling.VariantNewton, newtonParams()) }

	d := base()
	d.Variant = "magic"
	_, _, err := d.Decode()
	assert.ErrorIs(t, err, cooling.ErrInvalidVariant)

	d = base()
	d.Container = "2l"
	_, _, err = d.Decode()
	assert.ErrorIs(t, err, cooling.ErrInvalidContainer)

	d = base()
	d.IceProfile = "snow"
	_, _, err = d.Decode()
	assert.ErrorIs(t, err, cooling.ErrInvalidIceProfile)

	d = base()
	d.RotationSpeed = nil
	_, _, err = d.Decode()
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "rotation_speed")
}

func TestNewSnapshot(t *testing.T) {
	res := compute(t, cooling.VariantNewton, newtonParams())
	dto := NewSnapshot("bar-1", cooling.VariantNewton, newtonParams(), res, nil)
	assert.Equal(t, "bar-1", dto.DeviceID)
	require.NotNil(t, dto.Result)
	assert.Empty(t, dto.Error)

	dto = NewSnapshot("bar-1", cooling.VariantNewton, newtonParams(), cooling.Result{}, cooling.ErrSaltOutOfRange)
	assert.Nil(t, dto.Result)
	assert.Equal(t, cooling.ErrSaltOutOfRange.Error(), dto.Error)
}

func TestSnapshotYAML(t *testing.T) {
	res := compute(t, cooling.VariantNewton, newtonParams())
	out, err := yaml.Marshal(NewSnapshot("", cooling.VariantNewton, newtonParams(), res, nil))
	require.NoError(t, err)
	assert.Contains(t, string(out), "bath_temperature: -16.8")
	assert.Contains(t, string(out), "outcome: cooled")
	assert.NotContains(t, string(out), "device_id")
}

func TestNewOptions(t *testing.T) {
	dto := NewOptions(cooling.NewDefaultCalculator().Options())
	assert.Equal(t, []string{"flux", "newton"}, dto.Variants)
	assert.Equal(t, []string{"330ml", "500ml"}, dto.Containers)
	assert.Equal(t, []string{"large_cubes", "small_cubes", "crushed"}, dto.IceProfiles)
	assert.Equal(t, LimitsDTO{MaxRotation: 400, MaxSalt: 100, SaltUnit: "%"}, dto.Limits["newton"])
	assert.Equal(t, "kg", dto.Limits["flux"].SaltUnit)
}

func TestHeadline(t *testing.T) {
	assert.Equal(t, "Cooling time: 90.0 s (1 min 30 s)",
		Headline(cooling.Result{Outcome: cooling.OutcomeCooled, CoolingTimeSeconds: 90}))
	assert.Equal(t, "Target temperature not reachable: too little ice. Best reachable: 17.58 °C",
		Headline(cooling.Result{Outcome: cooling.OutcomeUnreachableTarget, Message: "too little ice", BestReachableTemperature: 17.5787}))
	assert.Equal(t, "No cooling needed: start temperature must be above target temperature",
		Headline(cooling.Result{Outcome: cooling.OutcomeInvalidConfiguration, Message: "start temperature must be above target temperature"}))
}

func TestMinutesSeconds(t *testing.T) {
	assert.Equal(t, "2 min 52 s", MinutesSeconds(172.9))
	assert.Equal(t, "0 min 0 s", MinutesSeconds(0))
	assert.Equal(t, "n/a", MinutesSeconds(-1))
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, compute(t, cooling.VariantNewton, newtonParams())))
	out := buf.String()
	assert.Contains(t, out, "Cooling time:")
	assert.Contains(t, out, "-16.80 °C")
	assert.Contains(t, out, "Beverages per kg ice:")
	assert.Contains(t, out, "~16.8")

	buf.Reset()
	p := newtonParams()
	p.StartTemperature = 10
	p.TargetTemperature = 15
	require.NoError(t, WriteText(&buf, compute(t, cooling.VariantNewton, p)))
	assert.Contains(t, buf.String(), "No cooling needed")
	assert.Contains(t, buf.String(), "n/a")
}

func TestCurve(t *testing.T) {
	points, err := cooling.Curve(compute(t, cooling.VariantNewton, newtonParams()), 22, 6, 5*time.Second)
	require.NoError(t, err)

	dto := NewCurve(points)
	require.Len(t, dto, 4)
	assert.Equal(t, PointDTO{ElapsedSeconds: 0, Temperature: 22}, dto[0])
	assert.Equal(t, 5.0, dto[1].ElapsedSeconds)
	assert.Equal(t, 6.0, dto[3].Temperature)

	var buf bytes.Buffer
	require.NoError(t, WriteCurve(&buf, points))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[0], "Temperature")
	assert.Contains(t, lines[1], "22.00")
}
