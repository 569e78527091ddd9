// Package panel holds the current inputs of one cooling station and
// computes their result on demand.
package panel

import (
	"sync"

	"github.com/Agrid-Dev/iceflow/internal/cooling"
)

type Snapshot struct {
	Variant    cooling.Variant
	Parameters cooling.Parameters
}

type Panel struct {
	mu   sync.RWMutex
	s    Snapshot
	calc *cooling.Calculator
}

func New(initial Snapshot, calc *cooling.Calculator) (*Panel, error) {
	if calc == nil {
		calc = cooling.NewDefaultCalculator()
	}
	if err := calc.Validate(initial.Variant, initial.Parameters); err != nil {
		return nil, err
	}
	return &Panel{s: initial, calc: calc}, nil
}

func (p *Panel) Get() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.s
}

// Result runs the selected model on the current inputs.
func (p *Panel) Result() (cooling.Result, error) {
	s := p.Get()
	return p.calc.Compute(s.Variant, s.Parameters)
}

func (p *Panel) Calculator() *cooling.Calculator {
	return p.calc
}

// update applies fn to a copy of the snapshot and commits it only if the
// selected model accepts the result.
func (p *Panel) update(fn func(*Snapshot)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := p.s
	fn(&next)
	if err := p.calc.Validate(next.Variant, next.Parameters); err != nil {
		return err
	}
	p.s = next
	return nil
}

// Set replaces every input at once, so a variant switch and a salt level in
// the new unit can be committed together.
func (p *Panel) Set(next Snapshot) error {
	return p.update(func(s *Snapshot) { *s = next })
}

// SetVariant switches the model. It fails when the current salt level or
// rotation is outside the new model's range.
func (p *Panel) SetVariant(v cooling.Variant) error {
	return p.update(func(s *Snapshot) { s.Variant = v })
}

func (p *Panel) SetStartTemperature(t float64) error {
	return p.update(func(s *Snapshot) { s.Parameters.StartTemperature = t })
}

func (p *Panel) SetTargetTemperature(t float64) error {
	return p.update(func(s *Snapshot) { s.Parameters.TargetTemperature = t })
}

func (p *Panel) SetContainer(c cooling.ContainerSize) error {
	return p.update(func(s *Snapshot) { s.Parameters.Container = c })
}

func (p *Panel) SetRotationSpeed(rpm float64) error {
	return p.update(func(s *Snapshot) { s.Parameters.RotationSpeed = rpm })
}

func (p *Panel) SetIceProfile(ice cooling.IceProfile) error {
	return p.update(func(s *Snapshot) { s.Parameters.IceProfile = ice })
}

func (p *Panel) SetSaltLevel(level float64) error {
	return p.update(func(s *Snapshot) { s.Parameters.SaltLevel = level })
}
