package modbusctrl

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	mbserver "github.com/tbrandon/mbserver"
	"go.uber.org/zap"

	"github.com/Agrid-Dev/iceflow/internal/cooling"
	"github.com/Agrid-Dev/iceflow/internal/panel"
	"github.com/Agrid-Dev/iceflow/internal/ports"
)

// Holding registers (read/write panel inputs).
const (
	HRVariant = iota
	HRStartTemperature
	HRTargetTemperature
	HRContainer
	HRRotationSpeed
	HRIceProfile
	HRSaltLevel
	holdingCount
)

// Input registers (read-only result of the current inputs).
const (
	IROutcome = iota
	IRCoolingTime
	IRBathTemperature
	IRHeatTransferCoefficient
	IRBestReachable
	IRBeveragesPerKg
	IRCapacityApplicable
	inputCount
)

// Config for the Modbus controller.
type Config struct {
	DeviceID string
	Addr     string
	UnitID   byte // UnitID (Modbus slave/unit ID). Use an integer 1..247.
	Logger   *zap.Logger
}

type Controller struct {
	svc ports.PanelService
	cfg Config
	log *zap.Logger

	serv *mbserver.Server
}

func New(svc ports.PanelService, cfg Config) (*Controller, error) {
	if cfg.UnitID == 0 {
		return nil, errors.New("modbus: UnitID is required (non-zero)")
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:1502"
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{svc: svc, cfg: cfg, log: log.Named("modbus")}, nil
}

// Run starts the Modbus server and registers handlers that apply writes immediately and
// serve reads directly from the panel. It blocks until ctx is canceled.
func (c *Controller) Run(ctx context.Context) error {
	serv := mbserver.NewServer()
	c.serv = serv

	// Register handlers BEFORE starting the TCP listener to avoid races inside mbserver
	// between handler registration and the server's goroutines.
	serv.RegisterFunctionHandler(3, c.readRegisters(holdingCount, c.holdingRegisters))
	serv.RegisterFunctionHandler(4, c.readRegisters(inputCount, c.inputRegisters))

	// Write Single Register (function 6)
	serv.RegisterFunctionHandler(6, func(s *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
		data := frame.GetData()
		if len(data) < 4 {
			return []byte{}, &mbserver.IllegalDataValue
		}
		addr := binary.BigEndian.Uint16(data[0:2])
		value := binary.BigEndian.Uint16(data[2:4])

		if exc := c.writeHolding(int(addr), []uint16{value}); exc != nil {
			return []byte{}, exc
		}

		resp := make([]byte, 4)
		copy(resp, data[0:4])
		return resp, &mbserver.Success
	})

	// Write Multiple Registers (function 16)
	serv.RegisterFunctionHandler(16, func(s *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
		d := frame.GetData()
		if len(d) < 5 {
			return []byte{}, &mbserver.IllegalDataValue
		}
		start := binary.BigEndian.Uint16(d[0:2])
		quantity := binary.BigEndian.Uint16(d[2:4])
		byteCount := int(d[4])
		if quantity == 0 || byteCount != int(quantity)*2 || len(d) < 5+byteCount {
			return []byte{}, &mbserver.IllegalDataValue
		}
		vals := make([]uint16, quantity)
		for i := range vals {
			vals[i] = binary.BigEndian.Uint16(d[5+i*2 : 5+i*2+2])
		}
		if exc := c.writeHolding(int(start), vals); exc != nil {
			return []byte{}, exc
		}

		resp := make([]byte, 4)
		binary.BigEndian.PutUint16(resp[0:2], start)
		binary.BigEndian.PutUint16(resp[2:4], quantity)
		return resp, &mbserver.Success
	})

	// Now start listening after all handlers are registered.
	if err := serv.ListenTCP(c.cfg.Addr); err != nil {
		return fmt.Errorf("mbserver listen tcp %s: %w", c.cfg.Addr, err)
	}
	c.log.Info("listening", zap.String("addr", c.cfg.Addr), zap.Uint8("unit_id", c.cfg.UnitID))

	// Block until ctx.Done()
	<-ctx.Done()
	serv.Close()
	return ctx.Err()
}

// readRegisters serves functions 3 and 4 from a full register image.
func (c *Controller) readRegisters(count int, image func() []uint16) handlerFunc {
	return func(s *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
		data := frame.GetData()
		if len(data) < 4 {
			return []byte{}, &mbserver.IllegalDataValue
		}
		start := int(binary.BigEndian.Uint16(data[0:2]))
		qty := int(binary.BigEndian.Uint16(data[2:4]))
		if qty == 0 || qty > 125 {
			return []byte{}, &mbserver.IllegalDataValue
		}
		if start+qty > count {
			return []byte{}, &mbserver.IllegalDataAddress
		}
		regs := image()[start : start+qty]

		// Build response: byte count + register bytes
		byteCount := len(regs) * 2
		resp := make([]byte, 1+byteCount)
		resp[0] = byte(byteCount)
		for i, r := range regs {
			binary.BigEndian.PutUint16(resp[1+i*2:1+i*2+2], r)
		}
		return resp, &mbserver.Success
	}
}

func (c *Controller) holdingRegisters() []uint16 {
	s := c.svc.Get()
	p := s.Parameters
	return []uint16{
		HRVariant:           uint16(s.Variant),
		HRStartTemperature:  encodeTemp(p.StartTemperature),
		HRTargetTemperature: encodeTemp(p.TargetTemperature),
		HRContainer:         uint16(p.Container),
		HRRotationSpeed:     encodeUnsigned(p.RotationSpeed, 1),
		HRIceProfile:        uint16(p.IceProfile),
		HRSaltLevel:         encodeUnsigned(p.SaltLevel, saltScale(s.Variant)),
	}
}

func (c *Controller) inputRegisters() []uint16 {
	regs := make([]uint16, inputCount)
	res, err := c.svc.Result()
	if err != nil {
		// Outcome stays 0 (unknown).
		return regs
	}
	regs[IROutcome] = uint16(res.Outcome)
	regs[IRCoolingTime] = encodeUnsigned(res.CoolingTimeSeconds, 1)
	regs[IRBathTemperature] = encodeTemp(res.Derived.BathTemperature)
	regs[IRHeatTransferCoefficient] = encodeUnsigned(res.Derived.HeatTransferCoefficient, 1)
	if !res.Reachable() {
		regs[IRBestReachable] = encodeTemp(res.BestReachableTemperature)
	}
	if res.Capacity.Applicable {
		regs[IRBeveragesPerKg] = encodeUnsigned(res.Capacity.BeveragesPerKg, 100)
		regs[IRCapacityApplicable] = 1
	}
	return regs
}

// writeHolding applies vals from register start onwards to a copy of the
// panel state and commits it in one step.
func (c *Controller) writeHolding(start int, vals []uint16) *mbserver.Exception {
	if start+len(vals) > holdingCount {
		return &mbserver.IllegalDataAddress
	}
	next := c.svc.Get()
	for i, v := range vals {
		applyHolding(&next, start+i, v)
	}
	if err := c.svc.Set(next); err != nil {
		c.log.Debug("write rejected", zap.Int("start", start), zap.Int("count", len(vals)), zap.Error(err))
		return &mbserver.IllegalDataValue
	}
	return nil
}

// applyHolding decodes one register into s. The salt level is scaled by
// the variant in s, so a block write of variant and salt is consistent.
func applyHolding(s *panel.Snapshot, addr int, v uint16) {
	p := &s.Parameters
	switch addr {
	case HRVariant:
		s.Variant = cooling.Variant(v)
	case HRStartTemperature:
		p.StartTemperature = decodeTemp(v)
	case HRTargetTemperature:
		p.TargetTemperature = decodeTemp(v)
	case HRContainer:
		p.Container = cooling.ContainerSize(v)
	case HRRotationSpeed:
		p.RotationSpeed = float64(v)
	case HRIceProfile:
		p.IceProfile = cooling.IceProfile(v)
	case HRSaltLevel:
		p.SaltLevel = float64(v) / float64(saltScale(s.Variant))
	}
}

type handlerFunc = func(*mbserver.Server, mbserver.Framer) ([]byte, *mbserver.Exception)

const TemperatureScale int = 100

// saltScale stores flux salt as grams and newton salt as hundredths of a
// percent.
func saltScale(v cooling.Variant) int {
	if v == cooling.VariantFlux {
		return 1000
	}
	return 100
}

func encodeTemp(v float64) uint16 {
	r := min(max(int(math.Round(v*float64(TemperatureScale))), math.MinInt16), math.MaxInt16)
	return uint16(int16(r))
}

func decodeTemp(u uint16) float64 {
	i := int16(u)
	return float64(i) / float64(TemperatureScale)
}

func encodeUnsigned(v float64, scale int) uint16 {
	if math.IsNaN(v) {
		return 0
	}
	r := min(max(math.Round(v*float64(scale)), 0), math.MaxUint16)
	return uint16(r)
}
