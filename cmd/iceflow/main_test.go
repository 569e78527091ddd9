package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Agrid-Dev/iceflow/cmd/app"
	"github.com/Agrid-Dev/iceflow/internal/report"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yaml")))
	err := cmd.Execute()
	return out.String(), err
}

func TestComputeJSON(t *testing.T) {
	out, err := run(t, "compute", "--format", "json")
	require.NoError(t, err)

	var got report.SnapshotDTO
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.Result)
	assert.Equal(t, "newton", got.Result.Variant)
	assert.Equal(t, "cooled", got.Result.Outcome)
	assert.Equal(t, -16.8, got.Result.Derived.BathTemperature)
}

func TestComputeFlagsOverrideConfig(t *testing.T) {
	out, err := run(t, "compute", "--variant", "flux", "--salt", "0.01", "--rotation", "200",
		"--ice", "small cubes", "--start", "20", "--target", "8", "-f", "yaml")
	require.NoError(t, err)

	var got report.SnapshotDTO
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "flux", got.Parameters.Variant)
	assert.Equal(t, "kg", got.Parameters.SaltUnit)
	assert.Equal(t, "small_cubes", got.Parameters.IceProfile)
	require.NotNil(t, got.Result)
	assert.Equal(t, 450.0, got.Result.Derived.HeatTransferCoefficient)
}

func TestComputeText(t *testing.T) {
	out, err := run(t, "compute", "--target", "-20")
	require.NoError(t, err)
	assert.Contains(t, out, "Target temperature not reachable")
	assert.Contains(t, out, "Bath temperature:")
}

func TestComputeCurve(t *testing.T) {
	out, err := run(t, "compute", "--curve", "5s", "-f", "json")
	require.NoError(t, err)

	var got report.SnapshotDTO
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Curve, 4)
	assert.Equal(t, 6.0, got.Curve[3].Temperature)

	out, err = run(t, "compute", "--curve", "5s")
	require.NoError(t, err)
	assert.Contains(t, out, "Temperature (°C)")

	_, err = run(t, "compute", "--curve", "-1s")
	assert.Error(t, err)
}

func TestComputeErrors(t *testing.T) {
	_, err := run(t, "compute", "--variant", "flux")
	assert.Error(t, err, "80 is out of the flux salt range")

	_, err = run(t, "compute", "--container", "keg")
	assert.Error(t, err)

	_, err = run(t, "compute", "--format", "xml")
	assert.ErrorContains(t, err, "xml")
}

func TestOptions(t *testing.T) {
	out, err := run(t, "options", "-f", "json")
	require.NoError(t, err)

	var got report.OptionsDTO
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"flux", "newton"}, got.Variants)
	assert.Equal(t, 400.0, got.Limits["newton"].MaxRotation)
}

func TestBuildDevice(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.Controllers.HTTP.Enabled = true
	cfg.Controllers.MQTT.Enabled = true
	cfg.Controllers.MODBUS.Enabled = true

	d, err := buildDevice(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "default", d.ID)
	assert.Len(t, d.Controllers, 3)
	assert.Contains(t, d.Controllers, "modbus")

	cfg.Panel.SaltLevel = 500
	_, err = buildDevice(cfg, nil)
	assert.Error(t, err)

	cfg = app.DefaultConfig()
	cfg.Controllers.MODBUS.Enabled = true
	cfg.Controllers.MODBUS.UnitID = 0
	_, err = buildDevice(cfg, nil)
	assert.Error(t, err)
}
