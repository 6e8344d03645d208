package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/siderun/internal/core/geom"
	"chosenoffset.com/siderun/internal/render"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.8, cfg.PhysicsParams().Friction)
	assert.Equal(t, 0.5, cfg.PhysicsParams().RestSpeed)
	assert.Equal(t, 150.0, cfg.Follow().DeadZone)
	assert.Equal(t, 0.01, cfg.VisibilityOptions().AuxEpsilon)
	assert.Equal(t, geom.Vec(400, 300), cfg.Player.Spawn.Vec())
	assert.Equal(t, 3*time.Second, cfg.ConnectTimeout())
	assert.Equal(t, render.KeySpace, Key(cfg.Keys.Spawn))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `{
		"physics": {"friction": 0.9},
		"player": {"name": "Oven", "color": "tomato"},
		"network": {"address": "ws://localhost:9000/ws"}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.9, cfg.Physics.Friction)
	assert.Equal(t, 0.5, cfg.Physics.RestSpeed, "unspecified fields keep defaults")
	assert.Equal(t, "Oven", cfg.Player.Name)
	assert.Equal(t, 200.0, cfg.Player.Speed)
	assert.Equal(t, "ws://localhost:9000/ws", cfg.Network.Address)
	assert.Equal(t, 800, cfg.Window.Width)
}

func TestLoadRejectsInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"syntax":        `{"physics":`,
		"friction":      `{"physics": {"friction": 1.0}}`,
		"window":        `{"window": {"width": 0}}`,
		"color":         `{"player": {"color": "not-a-color"}}`,
		"key":           `{"keys": {"spawn": "Tab"}}`,
		"epsilon":       `{"visibility": {"aux_epsilon": 0}}`,
		"overlay alpha": `{"render": {"overlay_alpha": 2}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, body))
			assert.Error(t, err)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("Tomato")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0xff, 0x63, 0x47, 0xff}, c)

	c, err = ParseColor("#102030")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0x10, 0x20, 0x30, 0xff}, c)

	c, err = ParseColor("#ffffff00")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{}, c, "straight alpha is premultiplied")

	for _, bad := range []string{"#12345", "#zzzzzz", "#1234567890", "nocolor"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}
