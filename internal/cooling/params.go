package cooling

import (
	"fmt"
	"math"
)

// Parameters are the user inputs of one computation.
// SaltLevel is read in the unit reported by the model's Limits.
type Parameters struct {
	StartTemperature  float64
	TargetTemperature float64
	Container         ContainerSize
	RotationSpeed     float64 // rev/min
	IceProfile        IceProfile
	SaltLevel         float64
}

// SaltUnit is how a model reads Parameters.SaltLevel.
type SaltUnit int

const (
	SaltKilograms SaltUnit = iota + 1
	SaltPercent
)

func (u SaltUnit) String() string {
	switch u {
	case SaltKilograms:
		return "kg"
	case SaltPercent:
		return "%"
	default:
		return "unknown"
	}
}

// Limits are the accepted input ranges of a model.
type Limits struct {
	MaxRotation float64
	MaxSalt     float64
	SaltUnit    SaltUnit
}

// Validate reports the first field outside the declared input domain.
func (p Parameters) Validate(l Limits) error {
	if !p.Container.Valid() {
		return fmt.Errorf("container: %w: %d", ErrInvalidContainer, p.Container)
	}
	if !p.IceProfile.Valid() {
		return fmt.Errorf("ice_profile: %w: %d", ErrInvalidIceProfile, p.IceProfile)
	}
	if !finite(p.StartTemperature) {
		return fmt.Errorf("start_temperature: %w", ErrInvalidTemperature)
	}
	if !finite(p.TargetTemperature) {
		return fmt.Errorf("target_temperature: %w", ErrInvalidTemperature)
	}
	if !finite(p.RotationSpeed) || p.RotationSpeed < 0 || p.RotationSpeed > l.MaxRotation {
		return fmt.Errorf("rotation_speed: %w: %v not in [0, %v]", ErrRotationOutOfRange, p.RotationSpeed, l.MaxRotation)
	}
	if !finite(p.SaltLevel) || p.SaltLevel < 0 || p.SaltLevel > l.MaxSalt {
		return fmt.Errorf("salt_level: %w: %v not in [0, %v] %s", ErrSaltOutOfRange, p.SaltLevel, l.MaxSalt, l.SaltUnit)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
