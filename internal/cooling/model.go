// Package cooling models how fast a can cools in a rotating ice-salt bath
// and how many cans a kilogram of ice can cool.
//
// Two empirical strategies share the Model contract: FluxModel (constant
// mean flux capped by the ice's latent heat) and NewtonModel (exponential
// decay towards the bath temperature). They disagree on the bath and
// rotation formulas and are kept apart on purpose.
package cooling

import "fmt"

// Model is one cooling strategy. Compute is pure: the error return only
// reports parameters outside the model's input domain, every physical edge
// case is a Result outcome.
type Model interface {
	Variant() Variant
	Limits() Limits
	Compute(p Parameters) (Result, error)
}

var (
	_ Model = (*FluxModel)(nil)
	_ Model = (*NewtonModel)(nil)
)

// Calculator dispatches to one model per variant.
type Calculator struct {
	models map[Variant]Model
}

func NewCalculator(flux FluxConstants, newton NewtonConstants) (*Calculator, error) {
	fm, err := NewFluxModel(flux)
	if err != nil {
		return nil, fmt.Errorf("flux model: %w", err)
	}
	nm, err := NewNewtonModel(newton)
	if err != nil {
		return nil, fmt.Errorf("newton model: %w", err)
	}
	return &Calculator{models: map[Variant]Model{
		VariantFlux:   fm,
		VariantNewton: nm,
	}}, nil
}

// NewDefaultCalculator uses the default constants of both models.
func NewDefaultCalculator() *Calculator {
	c, err := NewCalculator(DefaultFluxConstants(), DefaultNewtonConstants())
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Calculator) Model(v Variant) (Model, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVariant, v)
	}
	m, ok := c.models[v]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelNotConfigured, v)
	}
	return m, nil
}

func (c *Calculator) Compute(v Variant, p Parameters) (Result, error) {
	m, err := c.Model(v)
	if err != nil {
		return Result{}, err
	}
	return m.Compute(p)
}

func (c *Calculator) Validate(v Variant, p Parameters) error {
	m, err := c.Model(v)
	if err != nil {
		return err
	}
	return p.Validate(m.Limits())
}

func (c *Calculator) Limits(v Variant) (Limits, error) {
	m, err := c.Model(v)
	if err != nil {
		return Limits{}, err
	}
	return m.Limits(), nil
}

// Options are the enumerated inputs and the per-variant ranges.
type Options struct {
	Variants    []Variant
	Containers  []ContainerSize
	IceProfiles []IceProfile
	Limits      map[Variant]Limits
}

func (c *Calculator) Options() Options {
	o := Options{
		Variants:    Variants(),
		Containers:  Containers(),
		IceProfiles: IceProfiles(),
		Limits:      make(map[Variant]Limits, len(c.models)),
	}
	for v, m := range c.models {
		o.Limits[v] = m.Limits()
	}
	return o
}
