package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/coreman2200/funtimes-tactilus/internal/config"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.Cells)
	assert.Equal(t, "gpio", cfg.Driver)
	assert.Equal(t, "GPIO2", cfg.Pins.SerialIn)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.Cells = 2
	cfg.Timing.HoldMs = 250
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

// A partial file only overrides what it names; everything else keeps its
// default.
func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cells: 2\ndriver: sim\n"), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Cells)
	assert.Equal(t, "sim", got.Driver)
	assert.Equal(t, Default().Pins, got.Pins)
	assert.Equal(t, Default().Timing, got.Timing)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Cells = 0
	assert.Error(t, cfg.Validate(), "zero cells")

	cfg = Default()
	cfg.Timing.SettleUs = 0
	assert.Error(t, cfg.Validate(), "zero settle")

	cfg = Default()
	cfg.Driver = "dma"
	assert.Error(t, cfg.Validate(), "unknown driver")
}
