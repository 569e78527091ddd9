package cooling

import (
	"fmt"
	"strings"
)

// Variant selects the cooling model strategy.
type Variant int

const (
	VariantUnknown Variant = iota
	VariantFlux
	VariantNewton
)

func (v Variant) Valid() bool {
	return v == VariantFlux || v == VariantNewton
}

func (v Variant) String() string {
	switch v {
	case VariantFlux:
		return "flux"
	case VariantNewton:
		return "newton"
	default:
		return "unknown"
	}
}

// SaltUnit is how the variant reads Parameters.SaltLevel.
func (v Variant) SaltUnit() SaltUnit {
	switch v {
	case VariantFlux:
		return SaltKilograms
	case VariantNewton:
		return SaltPercent
	default:
		return 0
	}
}

func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flux":
		return VariantFlux, nil
	case "newton":
		return VariantNewton, nil
	default:
		return VariantUnknown, fmt.Errorf("%w: %q", ErrInvalidVariant, s)
	}
}

// ContainerSize is one of the supported can sizes.
type ContainerSize int

const (
	ContainerUnknown ContainerSize = iota
	Container330
	Container500
)

func (c ContainerSize) Valid() bool {
	return c == Container330 || c == Container500
}

func (c ContainerSize) String() string {
	switch c {
	case Container330:
		return "330ml"
	case Container500:
		return "500ml"
	default:
		return "unknown"
	}
}

// Liters is the nominal fill volume.
func (c ContainerSize) Liters() float64 {
	switch c {
	case Container330:
		return 0.33
	case Container500:
		return 0.5
	default:
		return 0
	}
}

func ParseContainerSize(s string) (ContainerSize, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	switch norm {
	case "330ml", "0.33l", "330":
		return Container330, nil
	case "500ml", "0.5l", "0.50l", "500":
		return Container500, nil
	default:
		return ContainerUnknown, fmt.Errorf("%w: %q", ErrInvalidContainer, s)
	}
}

// IceProfile describes the ice geometry in the bath.
type IceProfile int

const (
	IceUnknown IceProfile = iota
	IceLargeCubes
	IceSmallCubes
	IceCrushed
)

func (p IceProfile) Valid() bool {
	return p == IceLargeCubes || p == IceSmallCubes || p == IceCrushed
}

func (p IceProfile) String() string {
	switch p {
	case IceLargeCubes:
		return "large_cubes"
	case IceSmallCubes:
		return "small_cubes"
	case IceCrushed:
		return "crushed"
	default:
		return "unknown"
	}
}

func ParseIceProfile(s string) (IceProfile, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	switch norm {
	case "large_cubes", "large":
		return IceLargeCubes, nil
	case "small_cubes", "small":
		return IceSmallCubes, nil
	case "crushed", "crushed_ice", "slush":
		return IceCrushed, nil
	default:
		return IceUnknown, fmt.Errorf("%w: %q", ErrInvalidIceProfile, s)
	}
}

// Outcome tells which branch of the model produced a Result.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeCooled
	OutcomeUnreachableTarget
	OutcomeInvalidConfiguration
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCooled:
		return "cooled"
	case OutcomeUnreachableTarget:
		return "unreachable_target"
	case OutcomeInvalidConfiguration:
		return "invalid_configuration"
	default:
		return "unknown"
	}
}

// CanTable holds one value per container size.
type CanTable struct {
	Can330 float64 `koanf:"can_330" json:"can_330" yaml:"can_330"`
	Can500 float64 `koanf:"can_500" json:"can_500" yaml:"can_500"`
}

func (t CanTable) For(c ContainerSize) float64 {
	switch c {
	case Container330:
		return t.Can330
	case Container500:
		return t.Can500
	default:
		return 0
	}
}

// IceTable holds one value per ice profile.
type IceTable struct {
	LargeCubes float64 `koanf:"large_cubes" json:"large_cubes" yaml:"large_cubes"`
	SmallCubes float64 `koanf:"small_cubes" json:"small_cubes" yaml:"small_cubes"`
	Crushed    float64 `koanf:"crushed" json:"crushed" yaml:"crushed"`
}

func (t IceTable) For(p IceProfile) float64 {
	switch p {
	case IceLargeCubes:
		return t.LargeCubes
	case IceSmallCubes:
		return t.SmallCubes
	case IceCrushed:
		return t.Crushed
	default:
		return 0
	}
}

// Containers lists every supported size in display order.
func Containers() []ContainerSize {
	return []ContainerSize{Container330, Container500}
}

// IceProfiles lists every supported ice profile in display order.
func IceProfiles() []IceProfile {
	return []IceProfile{IceLargeCubes, IceSmallCubes, IceCrushed}
}

// Variants lists every model strategy.
func Variants() []Variant {
	return []Variant{VariantFlux, VariantNewton}
}
