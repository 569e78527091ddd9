package testutil

import (
	"github.com/Agrid-Dev/iceflow/internal/cooling"
	"github.com/Agrid-Dev/iceflow/internal/panel"
)

// FakePanelService is a reusable fake implementing ports.PanelService.
// Result is computed with the default calculator unless ResultErr is set.
type FakePanelService struct {
	S panel.Snapshot

	ResultErr error

	SetCalled bool
	SetArg    panel.Snapshot
	SetErr    error

	SetVariantCalled bool
	SetVariantArg    cooling.Variant
	SetVariantErr    error

	SetStartCalled bool
	SetStartArg    float64
	SetStartErr    error

	SetTargetCalled bool
	SetTargetArg    float64
	SetTargetErr    error

	SetContainerCalled bool
	SetContainerArg    cooling.ContainerSize
	SetContainerErr    error

	SetRotationCalled bool
	SetRotationArg    float64
	SetRotationErr    error

	SetIceProfileCalled bool
	SetIceProfileArg    cooling.IceProfile
	SetIceProfileErr    error

	SetSaltCalled bool
	SetSaltArg    float64
	SetSaltErr    error
}

func NewFakePanelService() *FakePanelService {
	return &FakePanelService{
		S: panel.Snapshot{
			Variant: cooling.VariantNewton,
			Parameters: cooling.Parameters{
				StartTemperature:  22,
				TargetTemperature: 6,
				Container:         cooling.Container330,
				RotationSpeed:     400,
				IceProfile:        cooling.IceCrushed,
				SaltLevel:         80,
			},
		},
	}
}

func (f *FakePanelService) Get() panel.Snapshot { return f.S }

func (f *FakePanelService) Result() (cooling.Result, error) {
	if f.ResultErr != nil {
		return cooling.Result{}, f.ResultErr
	}
	return cooling.NewDefaultCalculator().Compute(f.S.Variant, f.S.Parameters)
}

func (f *FakePanelService) Set(s panel.Snapshot) error {
	f.SetCalled = true
	f.SetArg = s
	if f.SetErr != nil {
		return f.SetErr
	}
	f.S = s
	return nil
}

func (f *FakePanelService) SetVariant(v cooling.Variant) error {
	f.SetVariantCalled = true
	f.SetVariantArg = v
	if f.SetVariantErr != nil {
		return f.SetVariantErr
	}
	f.S.Variant = v
	return nil
}

func (f *FakePanelService) SetStartTemperature(v float64) error {
	f.SetStartCalled = true
	f.SetStartArg = v
	if f.SetStartErr != nil {
		return f.SetStartErr
	}
	f.S.Parameters.StartTemperature = v
	return nil
}

func (f *FakePanelService) SetTargetTemperature(v float64) error {
	f.SetTargetCalled = true
	f.SetTargetArg = v
	if f.SetTargetErr != nil {
		return f.SetTargetErr
	}
	f.S.Parameters.TargetTemperature = v
	return nil
}

func (f *FakePanelService) SetContainer(c cooling.ContainerSize) error {
	f.SetContainerCalled = true
	f.SetContainerArg = c
	if f.SetContainerErr != nil {
		return f.SetContainerErr
	}
	f.S.Parameters.Container = c
	return nil
}

func (f *FakePanelService) SetRotationSpeed(v float64) error {
	f.SetRotationCalled = true
	f.SetRotationArg = v
	if f.SetRotationErr != nil {
		return f.SetRotationErr
	}
	f.S.Parameters.RotationSpeed = v
	return nil
}

func (f *FakePanelService) SetIceProfile(p cooling.IceProfile) error {
	f.SetIceProfileCalled = true
	f.SetIceProfileArg = p
	if f.SetIceProfileErr != nil {
		return f.SetIceProfileErr
	}
	f.S.Parameters.IceProfile = p
	return nil
}

func (f *FakePanelService) SetSaltLevel(v float64) error {
	f.SetSaltCalled = true
	f.SetSaltArg = v
	if f.SetSaltErr != nil {
		return f.SetSaltErr
	}
	f.S.Parameters.SaltLevel = v
	return nil
}
