package mqttctrl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/Agrid-Dev/iceflow/internal/cooling"
	"github.com/Agrid-Dev/iceflow/internal/ports"
	"github.com/Agrid-Dev/iceflow/internal/report"
)

type Config struct {
	// Identity
	DeviceID string

	// MQTT connection
	BrokerURL string
	ClientID  string

	// Topics
	BaseTopic string

	// Behavior
	QoS             byte
	RetainSnapshot  bool
	PublishInterval time.Duration

	Username string
	Password string

	Logger *zap.Logger
}

type Controller struct {
	svc  ports.PanelService
	calc ports.Calculator
	cfg  Config
	log  *zap.Logger

	client mqtt.Client
}

func New(svc ports.PanelService, calc ports.Calculator, cfg Config) (*Controller, error) {
	// ---- defaults ----

	if cfg.BrokerURL == "" {
		cfg.BrokerURL = "tcp://localhost:1883"
	}

	if cfg.DeviceID == "" {
		return nil, errors.New("mqtt: DeviceID is required")
	}
	if cfg.BaseTopic == "" {
		cfg.BaseTopic = "iceflow/" + cfg.DeviceID
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "iceflow-" + cfg.DeviceID
	}
	if cfg.PublishInterval <= 0 {
		cfg.PublishInterval = 1 * time.Second
	}
	if cfg.QoS > 1 {
		return nil, errors.New("mqtt: QoS must be 0 or 1")
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		svc:  svc,
		calc: calc,
		cfg:  cfg,
		log:  log.Named("mqtt"),
	}, nil
}

func (c *Controller) Run(ctx context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(c.cfg.BrokerURL).
		SetClientID(c.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(2 * time.Second)

	if c.cfg.Username != "" {
		opts.SetUsername(c.cfg.Username)
		opts.SetPassword(c.cfg.Password)
	}

	// Subscribe when connected/reconnected.
	opts.OnConnect = func(cl mqtt.Client) {
		for _, topic := range []string{c.topic("set/+"), c.topic("compute")} {
			token := cl.Subscribe(topic, c.cfg.QoS, c.onMessage)
			token.Wait()
			if err := token.Error(); err != nil {
				c.log.Warn("subscribe failed", zap.String("topic", topic), zap.Error(err))
			}
		}
	}

	c.client = mqtt.NewClient(opts)
	tok := c.client.Connect()
	tok.Wait()
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	c.log.Info("connected", zap.String("broker", c.cfg.BrokerURL), zap.String("base_topic", c.cfg.BaseTopic))

	// Publish loop: publish snapshot on interval, and only when changed.
	ticker := time.NewTicker(c.cfg.PublishInterval)
	defer ticker.Stop()

	last := c.svc.Get()

	// publish immediately once
	c.publishSnapshot()

	for {
		select {
		case <-ctx.Done():
			c.client.Disconnect(250)
			return ctx.Err()

		case <-ticker.C:
			cur := c.svc.Get()
			if !reflect.DeepEqual(cur, last) {
				c.publishSnapshot()
				last = cur
			}
		}
	}
}

func (c *Controller) publishSnapshot() {
	s := c.svc.Get()
	res, err := c.svc.Result()
	c.publishJSON("snapshot", c.cfg.RetainSnapshot, report.NewSnapshot(c.cfg.DeviceID, s.Variant, s.Parameters, res, err))
}

func (c *Controller) publishJSON(suffix string, retain bool, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		c.log.Error("encode payload", zap.String("topic", c.topic(suffix)), zap.Error(err))
		return
	}
	c.client.Publish(c.topic(suffix), c.cfg.QoS, retain, b)
}

// Command payload format: {"value": ...}
type valueReq[T any] struct {
	Value *T `json:"value"`
}

func (c *Controller) onMessage(_ mqtt.Client, msg mqtt.Message) {
	t := msg.Topic()
	base := strings.TrimRight(c.cfg.BaseTopic, "/")
	if t == base+"/compute" {
		c.handleCompute(msg.Payload())
		return
	}

	// topic format: <base>/set/<field>
	prefix := base + "/set/"
	if !strings.HasPrefix(t, prefix) {
		return
	}
	field := strings.TrimPrefix(t, prefix)

	if err := c.apply(field, msg.Payload()); err != nil {
		c.log.Warn("command dropped", zap.String("topic", t), zap.Error(err))
	}
}

func (c *Controller) apply(field string, payload []byte) error {
	// Dispatch by field
	switch field {
	case "variant":
		return decodeAndApply(payload, cooling.ParseVariant, c.svc.SetVariant)
	case "start_temperature":
		return decodeAndApply(payload, identity[float64], c.svc.SetStartTemperature)
	case "target_temperature":
		return decodeAndApply(payload, identity[float64], c.svc.SetTargetTemperature)
	case "container":
		return decodeAndApply(payload, cooling.ParseContainerSize, c.svc.SetContainer)
	case "rotation_speed":
		return decodeAndApply(payload, identity[float64], c.svc.SetRotationSpeed)
	case "ice_profile":
		return decodeAndApply(payload, cooling.ParseIceProfile, c.svc.SetIceProfile)
	case "salt_level":
		return decodeAndApply(payload, identity[float64], c.svc.SetSaltLevel)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
}

// handleCompute answers a full parameter set on <base>/result without
// touching the panel.
func (c *Controller) handleCompute(payload []byte) {
	var req report.ParametersDTO
	if err := json.Unmarshal(payload, &req); err != nil {
		c.log.Warn("compute dropped", zap.Error(err))
		return
	}
	v, p, err := req.Decode()
	if err != nil {
		c.log.Warn("compute dropped", zap.Error(err))
		return
	}
	res, err := c.calc.Compute(v, p)
	c.publishJSON("result", false, report.NewSnapshot(c.cfg.DeviceID, v, p, res, err))
}

func (c *Controller) topic(suffix string) string {
	return strings.TrimRight(c.cfg.BaseTopic, "/") + "/" + suffix
}

func decodeAndApply[In, Out any](payload []byte, parse func(In) (Out, error), apply func(Out) error) error {
	raw, err := decodeValueStrict[In](payload)
	if err != nil {
		return err
	}
	v, err := parse(raw)
	if err != nil {
		return err
	}
	return apply(v)
}

func identity[T any](v T) (T, error) { return v, nil }

func decodeValueStrict[T any](b []byte) (T, error) {
	var zero T
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var req valueReq[T]
	if err := dec.Decode(&req); err != nil {
		return zero, err
	}
	if req.Value == nil {
		return zero, errors.New("missing field 'value'")
	}
	return *req.Value, nil
}
