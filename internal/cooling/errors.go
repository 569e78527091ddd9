package cooling

import "errors"

var (
	ErrInvalidVariant     = errors.New("invalid model variant")
	ErrInvalidContainer   = errors.New("invalid container size")
	ErrInvalidIceProfile  = errors.New("invalid ice profile")
	ErrInvalidTemperature = errors.New("temperature must be a finite number")
	ErrRotationOutOfRange = errors.New("rotation speed out of range")
	ErrSaltOutOfRange     = errors.New("salt level out of range")
	ErrInvalidConstant    = errors.New("invalid model constant")
	ErrModelNotConfigured = errors.New("no model configured for variant")
	ErrNotCooled          = errors.New("result has no cooling curve")
	ErrInvalidStep        = errors.New("invalid curve step")
)
