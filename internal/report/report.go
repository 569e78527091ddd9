// Package report turns cooling results into the JSON/YAML shapes served by
// the controllers and the text printed by the CLI.
package report

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Agrid-Dev/iceflow/internal/cooling"
)

// Display precision, in decimal places.
const (
	placesTemperature = 2
	placesEnergy      = 0
	placesArea        = 4
	placesH           = 1
	placesTime        = 1
	placesCapacity    = 1
	placesRate        = 6
)

var ErrMissingField = errors.New("missing field")

type ParametersDTO struct {
	Variant           string   `json:"variant" yaml:"variant"`
	StartTemperature  *float64 `json:"start_temperature" yaml:"start_temperature"`
	TargetTemperature *float64 `json:"target_temperature" yaml:"target_temperature"`
	Container         string   `json:"container" yaml:"container"`
	RotationSpeed     *float64 `json:"rotation_speed" yaml:"rotation_speed"`
	IceProfile        string   `json:"ice_profile" yaml:"ice_profile"`
	SaltLevel         *float64 `json:"salt_level" yaml:"salt_level"`
	SaltUnit          string   `json:"salt_unit,omitempty" yaml:"salt_unit,omitempty"`
}

func NewParameters(v cooling.Variant, p cooling.Parameters) ParametersDTO {
	return ParametersDTO{
		Variant:           v.String(),
		StartTemperature:  ptr(p.StartTemperature),
		TargetTemperature: ptr(p.TargetTemperature),
		Container:         p.Container.String(),
		RotationSpeed:     ptr(p.RotationSpeed),
		IceProfile:        p.IceProfile.String(),
		SaltLevel:         ptr(p.SaltLevel),
		SaltUnit:          v.SaltUnit().String(),
	}
}

// Decode parses a request payload. Every field is required; range checks
// are left to the model.
func (d ParametersDTO) Decode() (cooling.Variant, cooling.Parameters, error) {
	v, err := cooling.ParseVariant(d.Variant)
	if err != nil {
		return cooling.VariantUnknown, cooling.Parameters{}, err
	}
	c, err := cooling.ParseContainerSize(d.Container)
	if err != nil {
		return v, cooling.Parameters{}, err
	}
	ice, err := cooling.ParseIceProfile(d.IceProfile)
	if err != nil {
		return v, cooling.Parameters{}, err
	}
	required := []struct {
		name string
		v    *float64
	}{
		{"start_temperature", d.StartTemperature},
		{"target_temperature", d.TargetTemperature},
		{"rotation_speed", d.RotationSpeed},
		{"salt_level", d.SaltLevel},
	}
	for _, f := range required {
		if f.v == nil {
			return v, cooling.Parameters{}, fmt.Errorf("%w '%s'", ErrMissingField, f.name)
		}
	}
	return v, cooling.Parameters{
		StartTemperature:  *d.StartTemperature,
		TargetTemperature: *d.TargetTemperature,
		Container:         c,
		RotationSpeed:     *d.RotationSpeed,
		IceProfile:        ice,
		SaltLevel:         *d.SaltLevel,
	}, nil
}

type DerivedDTO struct {
	Mass                    float64 `json:"mass_kg" yaml:"mass_kg"`
	ContainerSurfaceArea    float64 `json:"container_surface_area_m2" yaml:"container_surface_area_m2"`
	EffectiveSurfaceArea    float64 `json:"effective_surface_area_m2" yaml:"effective_surface_area_m2"`
	HeatTransferCoefficient float64 `json:"heat_transfer_coefficient" yaml:"heat_transfer_coefficient"`
	BathTemperature         float64 `json:"bath_temperature" yaml:"bath_temperature"`
	RequiredEnergy          float64 `json:"required_energy_j" yaml:"required_energy_j"`
	MaxAvailableEnergy      float64 `json:"max_available_energy_j,omitempty" yaml:"max_available_energy_j,omitempty"`
	MeanDeltaT              float64 `json:"mean_delta_t,omitempty" yaml:"mean_delta_t,omitempty"`
	HeatFlux                float64 `json:"heat_flux_w,omitempty" yaml:"heat_flux_w,omitempty"`
	CoolingRateConstant     float64 `json:"cooling_rate_constant,omitempty" yaml:"cooling_rate_constant,omitempty"`
}

type CapacityDTO struct {
	Applicable        bool    `json:"applicable" yaml:"applicable"`
	IceEnergy         float64 `json:"ice_energy_j" yaml:"ice_energy_j"`
	IceWarmingEnergy  float64 `json:"ice_warming_energy_j" yaml:"ice_warming_energy_j"`
	IceMeltingEnergy  float64 `json:"ice_melting_energy_j" yaml:"ice_melting_energy_j"`
	EnergyPerBeverage float64 `json:"energy_per_beverage_j,omitempty" yaml:"energy_per_beverage_j,omitempty"`
	BeveragesPerKg    float64 `json:"beverages_per_kg,omitempty" yaml:"beverages_per_kg,omitempty"`
}

type ResultDTO struct {
	Variant                  string       `json:"variant" yaml:"variant"`
	Outcome                  string       `json:"outcome" yaml:"outcome"`
	CoolingTimeSeconds       float64      `json:"cooling_time_seconds" yaml:"cooling_time_seconds"`
	CoolingTimeMinutes       float64      `json:"cooling_time_minutes" yaml:"cooling_time_minutes"`
	BestReachableTemperature *float64     `json:"best_reachable_temperature,omitempty" yaml:"best_reachable_temperature,omitempty"`
	Message                  string       `json:"message,omitempty" yaml:"message,omitempty"`
	Derived                  DerivedDTO   `json:"derived" yaml:"derived"`
	Capacity                 *CapacityDTO `json:"capacity,omitempty" yaml:"capacity,omitempty"`
}

func NewResult(r cooling.Result) ResultDTO {
	d := r.Derived
	dto := ResultDTO{
		Variant:            r.Variant.String(),
		Outcome:            r.Outcome.String(),
		CoolingTimeSeconds: Round(r.CoolingTimeSeconds, placesTime),
		CoolingTimeMinutes: Round(r.CoolingTimeSeconds/60, placesTime),
		Message:            r.Message,
		Derived: DerivedDTO{
			Mass:                    Round(d.Mass, 3),
			ContainerSurfaceArea:    Round(d.ContainerSurfaceArea, placesArea),
			EffectiveSurfaceArea:    Round(d.EffectiveSurfaceArea, placesArea),
			HeatTransferCoefficient: Round(d.HeatTransferCoefficient, placesH),
			BathTemperature:         Round(d.BathTemperature, placesTemperature),
			RequiredEnergy:          Round(d.RequiredEnergy, placesEnergy),
			MaxAvailableEnergy:      Round(d.MaxAvailableEnergy, placesEnergy),
			MeanDeltaT:              Round(d.MeanDeltaT, placesTemperature),
			HeatFlux:                Round(d.HeatFlux, placesH),
			CoolingRateConstant:     Round(d.CoolingRateConstant, placesRate),
		},
	}
	if r.Outcome == cooling.OutcomeUnreachableTarget {
		dto.BestReachableTemperature = ptr(Round(r.BestReachableTemperature, placesTemperature))
	}
	if r.Variant == cooling.VariantNewton {
		c := r.Capacity
		dto.Capacity = &CapacityDTO{
			Applicable:        c.Applicable,
			IceEnergy:         Round(c.IceEnergy, placesEnergy),
			IceWarmingEnergy:  Round(c.IceWarmingEnergy, placesEnergy),
			IceMeltingEnergy:  Round(c.IceMeltingEnergy, placesEnergy),
			EnergyPerBeverage: Round(c.EnergyPerBeverage, placesEnergy),
			BeveragesPerKg:    Round(c.BeveragesPerKg, placesCapacity),
		}
	}
	return dto
}

// SnapshotDTO is a panel state with its computed result. Error is set
// instead of Result when the inputs cannot be computed.
type SnapshotDTO struct {
	DeviceID   string        `json:"device_id,omitempty" yaml:"device_id,omitempty"`
	Parameters ParametersDTO `json:"parameters" yaml:"parameters"`
	Result     *ResultDTO    `json:"result,omitempty" yaml:"result,omitempty"`
	Error      string        `json:"error,omitempty" yaml:"error,omitempty"`
	Curve      []PointDTO    `json:"curve,omitempty" yaml:"curve,omitempty"`
}

func NewSnapshot(deviceID string, v cooling.Variant, p cooling.Parameters, res cooling.Result, err error) SnapshotDTO {
	dto := SnapshotDTO{DeviceID: deviceID, Parameters: NewParameters(v, p)}
	if err != nil {
		dto.Error = err.Error()
		return dto
	}
	r := NewResult(res)
	dto.Result = &r
	return dto
}

type PointDTO struct {
	ElapsedSeconds float64 `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Temperature    float64 `json:"temperature" yaml:"temperature"`
}

func NewCurve(points []cooling.Point) []PointDTO {
	out := make([]PointDTO, len(points))
	for i, p := range points {
		out[i] = PointDTO{
			ElapsedSeconds: Round(p.Elapsed.Seconds(), placesTime),
			Temperature:    Round(p.Temperature, placesTemperature),
		}
	}
	return out
}

type LimitsDTO struct {
	MaxRotation float64 `json:"max_rotation" yaml:"max_rotation"`
	MaxSalt     float64 `json:"max_salt" yaml:"max_salt"`
	SaltUnit    string  `json:"salt_unit" yaml:"salt_unit"`
}

type OptionsDTO struct {
	Variants    []string             `json:"variants" yaml:"variants"`
	Containers  []string             `json:"containers" yaml:"containers"`
	IceProfiles []string             `json:"ice_profiles" yaml:"ice_profiles"`
	Limits      map[string]LimitsDTO `json:"limits" yaml:"limits"`
}

func NewOptions(o cooling.Options) OptionsDTO {
	dto := OptionsDTO{Limits: make(map[string]LimitsDTO, len(o.Limits))}
	for _, v := range o.Variants {
		dto.Variants = append(dto.Variants, v.String())
	}
	for _, c := range o.Containers {
		dto.Containers = append(dto.Containers, c.String())
	}
	for _, p := range o.IceProfiles {
		dto.IceProfiles = append(dto.IceProfiles, p.String())
	}
	for v, l := range o.Limits {
		dto.Limits[v.String()] = LimitsDTO{
			MaxRotation: l.MaxRotation,
			MaxSalt:     l.MaxSalt,
			SaltUnit:    l.SaltUnit.String(),
		}
	}
	return dto
}

// Round rounds half away from zero to the given number of places.
// Non-finite values are returned unchanged.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

func ptr[T any](v T) *T { return &v }
