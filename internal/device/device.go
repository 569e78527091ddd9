package device

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Agrid-Dev/iceflow/internal/panel"
)

// Runner is a controller that serves the panel until ctx is canceled.
type Runner interface {
	Run(ctx context.Context) error
}

type Device struct {
	ID          string
	Panel       *panel.Panel
	Controllers map[string]Runner
}

func New(id string, p *panel.Panel) *Device {
	return &Device{ID: id, Panel: p, Controllers: map[string]Runner{}}
}

// Attach registers a controller under name. A later call with the same
// name replaces the earlier one.
func (d *Device) Attach(name string, r Runner) {
	d.Controllers[name] = r
}

// Run starts every attached controller and returns when ctx is canceled or
// the first controller fails. Cancellation is not reported as an error.
func (d *Device) Run(ctx context.Context, log *zap.Logger) error {
	if len(d.Controllers) == 0 {
		return errors.New("device: no controller enabled")
	}
	if log == nil {
		log = zap.NewNop()
	}
	g, ctx := errgroup.WithContext(ctx)
	for name, r := range d.Controllers {
		g.Go(func() error {
			log.Info("controller starting", zap.String("device_id", d.ID), zap.String("controller", name))
			err := r.Run(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error("controller stopped", zap.String("controller", name), zap.Error(err))
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
