package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Agrid-Dev/iceflow/cmd/app"
	httpctrl "github.com/Agrid-Dev/iceflow/internal/controllers/http"
	modbusctrl "github.com/Agrid-Dev/iceflow/internal/controllers/modbus"
	mqttctrl "github.com/Agrid-Dev/iceflow/internal/controllers/mqtt"
	"github.com/Agrid-Dev/iceflow/internal/device"
	"github.com/Agrid-Dev/iceflow/internal/logging"
	"github.com/Agrid-Dev/iceflow/internal/panel"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the cooling panel behind the enabled controllers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer logging.Sync(log)

			d, err := buildDevice(cfg, log)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			log.Info("iceflow starting", zap.String("device_id", d.ID), zap.Int("controllers", len(d.Controllers)))
			if err := d.Run(ctx, log); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("device exited: %w", err)
			}
			log.Info("iceflow stopped")
			return nil
		},
	}
}

func buildDevice(cfg app.Config, log *zap.Logger) (*device.Device, error) {
	calc, err := cfg.Calculator()
	if err != nil {
		return nil, err
	}
	snap, err := cfg.Snapshot()
	if err != nil {
		return nil, err
	}
	p, err := panel.New(snap, calc)
	if err != nil {
		return nil, fmt.Errorf("initial panel: %w", err)
	}

	d := device.New(cfg.DeviceID, p)
	c := cfg.Controllers

	if c.HTTP.Enabled {
		d.Attach("http", httpctrl.New(p, calc, c.HTTP.Addr, cfg.DeviceID, log))
	}
	if c.MQTT.Enabled {
		m, err := mqttctrl.New(p, calc, mqttctrl.Config{
			DeviceID:        cfg.DeviceID,
			BrokerURL:       c.MQTT.BrokerURL,
			ClientID:        c.MQTT.ClientID,
			BaseTopic:       c.MQTT.BaseTopic,
			QoS:             c.MQTT.QoS,
			RetainSnapshot:  c.MQTT.RetainSnapshot,
			PublishInterval: c.MQTT.PublishInterval,
			Username:        c.MQTT.Username,
			Password:        c.MQTT.Password,
			Logger:          log,
		})
		if err != nil {
			return nil, err
		}
		d.Attach("mqtt", m)
	}
	if c.MODBUS.Enabled {
		m, err := modbusctrl.New(p, modbusctrl.Config{
			DeviceID: cfg.DeviceID,
			Addr:     c.MODBUS.Addr,
			UnitID:   c.MODBUS.UnitID,
			Logger:   log,
		})
		if err != nil {
			return nil, err
		}
		d.Attach("modbus", m)
	}
	return d, nil
}
