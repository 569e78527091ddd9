package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/Agrid-Dev/iceflow/internal/cooling"
	"github.com/Agrid-Dev/iceflow/internal/logging"
	"github.com/Agrid-Dev/iceflow/internal/panel"
)

// EnvPrefix marks the environment variables read by LoadConfig.
const EnvPrefix = "ICEFLOW_"

type Config struct {
	DeviceID    string            `koanf:"device_id"`
	Log         logging.Config    `koanf:"log"`
	Controllers ControllersConfig `koanf:"controllers"`
	Panel       PanelConfig       `koanf:"panel"`
	Models      ModelsConfig      `koanf:"models"`
}

type ControllersConfig struct {
	HTTP   HTTPConfig   `koanf:"http"`
	MQTT   MQTTConfig   `koanf:"mqtt"`
	MODBUS ModbusConfig `koanf:"modbus"`
}

// PanelConfig holds the inputs the device starts with.
type PanelConfig struct {
	Variant           string  `koanf:"variant"` // "flux" | "newton"
	StartTemperature  float64 `koanf:"start_temperature"`
	TargetTemperature float64 `koanf:"target_temperature"`
	Container         string  `koanf:"container"` // "330ml" | "500ml"
	RotationSpeed     float64 `koanf:"rotation_speed"`
	IceProfile        string  `koanf:"ice_profile"` // "large_cubes" | "small_cubes" | "crushed"
	SaltLevel         float64 `koanf:"salt_level"`  // kg for flux, % for newton
}

type ModelsConfig struct {
	Flux   cooling.FluxConstants   `koanf:"flux"`
	Newton cooling.NewtonConstants `koanf:"newton"`
}

type HTTPConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

type MQTTConfig struct {
	Enabled         bool          `koanf:"enabled"`
	BrokerURL       string        `koanf:"broker_url"`
	ClientID        string        `koanf:"client_id"`
	BaseTopic       string        `koanf:"base_topic"`
	QoS             byte          `koanf:"qos"`
	RetainSnapshot  bool          `koanf:"retain_snapshot"`
	PublishInterval time.Duration `koanf:"publish_interval"`
	Username        string        `koanf:"username"`
	Password        string        `koanf:"password"`
}

type ModbusConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
	UnitID  byte   `koanf:"unit_id"`
}

func DefaultConfig() Config {
	return Config{
		DeviceID: "default",
		Log:      logging.DefaultConfig(),
		Controllers: ControllersConfig{
			HTTP: HTTPConfig{Addr: ":8080"},
			MQTT: MQTTConfig{
				BrokerURL:       "tcp://localhost:1883",
				PublishInterval: 1 * time.Second,
			},
			MODBUS: ModbusConfig{Addr: "127.0.0.1:1502", UnitID: 1},
		},
		Panel: PanelConfig{
			Variant:           "newton",
			StartTemperature:  22,
			TargetTemperature: 6,
			Container:         "330ml",
			RotationSpeed:     400,
			IceProfile:        "crushed",
			SaltLevel:         80,
		},
		Models: ModelsConfig{
			Flux:   cooling.DefaultFluxConstants(),
			Newton: cooling.DefaultNewtonConstants(),
		},
	}
}

// LoadConfig layers defaults, the optional file at path and ICEFLOW_*
// environment variables. A missing file means defaults.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			parser, err := parserFor(path)
			if err != nil {
				return Config{}, err
			}
			if err := k.Load(file.Provider(path), parser); err != nil {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return envKeyTransform(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	ApplyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	return cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config extension %q", ext)
	}
}

func applyDefaults(cfg *Config) {
	if cfg.DeviceID == "" {
		cfg.DeviceID = "default"
	}
	if cfg.Controllers.HTTP.Addr == "" {
		cfg.Controllers.HTTP.Addr = ":8080"
	}
	c := &cfg.Controllers
	if !c.HTTP.Enabled && !c.MQTT.Enabled && !c.MODBUS.Enabled {
		c.HTTP.Enabled = true
	}
	if c.MQTT.PublishInterval == 0 {
		c.MQTT.PublishInterval = 1 * time.Second
	}
	if c.MODBUS.UnitID == 0 {
		c.MODBUS.UnitID = 1
	}
}

// ApplyEnvOverrides lets PORT (common in containers) set the HTTP address
// unless ICEFLOW_CONTROLLERS_HTTP_ADDR is given.
func ApplyEnvOverrides(cfg *Config) {
	if os.Getenv(EnvPrefix+"CONTROLLERS_HTTP_ADDR") != "" {
		return
	}
	if v := os.Getenv("PORT"); v != "" {
		// listen on all interfaces on that port
		cfg.Controllers.HTTP.Addr = ":" + v
	}
}

// sections whose second key part names a sub-section.
var nestedSections = map[string]bool{
	"controllers": true,
	"models":      true,
}

// sections whose remainder is a single snake_case key.
var flatSections = map[string]bool{
	"panel": true,
	"log":   true,
}

// envKeyTransform maps an unprefixed variable name to a koanf key path:
// CONTROLLERS_HTTP_ADDR -> controllers.http.addr,
// MODELS_FLUX_ICE_MASS_MAX -> models.flux.ice_mass_max,
// PANEL_SALT_LEVEL -> panel.salt_level. Anything else is lowercased.
func envKeyTransform(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	parts := strings.Split(s, "_")
	switch {
	case nestedSections[parts[0]] && len(parts) >= 3:
		return parts[0] + "." + parts[1] + "." + strings.Join(parts[2:], "_")
	case flatSections[parts[0]] && len(parts) >= 2:
		return parts[0] + "." + strings.Join(parts[1:], "_")
	default:
		return s
	}
}

// Snapshot parses the initial panel inputs.
func (c Config) Snapshot() (panel.Snapshot, error) {
	v, err := cooling.ParseVariant(c.Panel.Variant)
	if err != nil {
		return panel.Snapshot{}, fmt.Errorf("panel.variant: %w", err)
	}
	container, err := cooling.ParseContainerSize(c.Panel.Container)
	if err != nil {
		return panel.Snapshot{}, fmt.Errorf("panel.container: %w", err)
	}
	ice, err := cooling.ParseIceProfile(c.Panel.IceProfile)
	if err != nil {
		return panel.Snapshot{}, fmt.Errorf("panel.ice_profile: %w", err)
	}
	return panel.Snapshot{
		Variant: v,
		Parameters: cooling.Parameters{
			StartTemperature:  c.Panel.StartTemperature,
			TargetTemperature: c.Panel.TargetTemperature,
			Container:         container,
			RotationSpeed:     c.Panel.RotationSpeed,
			IceProfile:        ice,
			SaltLevel:         c.Panel.SaltLevel,
		},
	}, nil
}

// Calculator builds both models from the configured constants.
func (c Config) Calculator() (*cooling.Calculator, error) {
	return cooling.NewCalculator(c.Models.Flux, c.Models.Newton)
}
