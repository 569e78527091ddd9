package ports

import (
	"github.com/Agrid-Dev/iceflow/internal/cooling"
	"github.com/Agrid-Dev/iceflow/internal/panel"
)

// PanelService is the control-plane port used by controllers (HTTP/MQTT/Modbus).
type PanelService interface {
	Get() panel.Snapshot
	Result() (cooling.Result, error)
	Set(panel.Snapshot) error
	SetVariant(cooling.Variant) error
	SetStartTemperature(float64) error
	SetTargetTemperature(float64) error
	SetContainer(cooling.ContainerSize) error
	SetRotationSpeed(float64) error
	SetIceProfile(cooling.IceProfile) error
	SetSaltLevel(float64) error
}

// Calculator runs one-off computations that do not touch the panel.
type Calculator interface {
	Compute(cooling.Variant, cooling.Parameters) (cooling.Result, error)
	Options() cooling.Options
}

var (
	_ PanelService = (*panel.Panel)(nil)
	_ Calculator   = (*cooling.Calculator)(nil)
)
