// Package config holds the client's tunable settings.
// Values are loaded from a JSON file layered over the defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"chosenoffset.com/siderun/internal/camera"
	"chosenoffset.com/siderun/internal/core/geom"
	"chosenoffset.com/siderun/internal/core/visibility"
	"chosenoffset.com/siderun/internal/render"
	"chosenoffset.com/siderun/internal/world"
)

// Config holds all client settings
type Config struct {
	Window     WindowConfig     `json:"window"`
	Physics    PhysicsConfig    `json:"physics"`
	Player     PlayerConfig     `json:"player"`
	Camera     CameraConfig     `json:"camera"`
	Visibility VisibilityConfig `json:"visibility"`
	Render     RenderConfig     `json:"render"`
	Network    NetworkConfig    `json:"network"`
	Assets     DirConfig        `json:"assets"`
	Levels     DirConfig        `json:"levels"`
	Log        LogConfig        `json:"log"`
	Keys       KeysConfig       `json:"keys"`
}

// WindowConfig sizes the window and the tick rate
type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
	TPS    int    `json:"ticks_per_second"`
}

// PhysicsConfig mirrors world.Physics
type PhysicsConfig struct {
	Friction  float64 `json:"friction"`   // velocity multiplier per frame
	RestSpeed float64 `json:"rest_speed"` // speeds at or below this snap to zero
}

// Point is a JSON-friendly coordinate pair
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec converts to a geometry vector.
func (p Point) Vec() geom.Vector2 {
	return geom.Vec(p.X, p.Y)
}

// PlayerConfig describes the local player
type PlayerConfig struct {
	Name  string  `json:"name"`
	Color string  `json:"color"` // color name or #rrggbb[aa]
	Speed float64 `json:"speed"`
	Size  float64 `json:"size"` // collider side length
	Spawn Point   `json:"spawn"`
}

// CameraConfig mirrors camera.Follow
type CameraConfig struct {
	DeadZone float64 `json:"dead_zone"`
	Speed    float64 `json:"speed"`
}

// VisibilityConfig tunes the visibility overlay
type VisibilityConfig struct {
	AuxEpsilon      float64 `json:"aux_epsilon"`
	CornerTolerance float64 `json:"corner_tolerance"`
	FanColor        string  `json:"fan_color"`
	DebugRays       bool    `json:"debug_rays"`
}

// RenderConfig tunes the draw pass
type RenderConfig struct {
	OverlayAlpha float64 `json:"overlay_alpha"` // darkening over the floor, 0..1
	OutlineWidth float64 `json:"outline_width"`
}

// NetworkConfig configures the optional multiplayer connection
type NetworkConfig struct {
	Address          string `json:"address"` // empty means offline
	ConnectTimeoutMS int    `json:"connect_timeout_ms"`
	WriteTimeoutMS   int    `json:"write_timeout_ms"`
	EventBuffer      int    `json:"event_buffer"`
}

// DirConfig points at a directory
type DirConfig struct {
	Dir string `json:"dir"`
}

// LogConfig configures logging
type LogConfig struct {
	Level string `json:"level"`
}

// KeysConfig binds actions to key names (see render.Key.String)
type KeysConfig struct {
	Spawn string `json:"spawn"`
	Start string `json:"start"`
	Back  string `json:"back"`
	Debug string `json:"debug"`
}

// DefaultConfig returns the defaults
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Siderun",
			TPS:    60,
		},
		Physics: PhysicsConfig{
			Friction:  0.8,
			RestSpeed: 0.5,
		},
		Player: PlayerConfig{
			Name:  "Fridge",
			Color: "white",
			Speed: 200,
			Size:  20,
			Spawn: Point{X: 400, Y: 300},
		},
		Camera: CameraConfig{
			DeadZone: 150,
			Speed:    200,
		},
		Visibility: VisibilityConfig{
			AuxEpsilon:      0.01,
			CornerTolerance: 1e-9,
			FanColor:        "#80808080",
		},
		Render: RenderConfig{
			OverlayAlpha: 0.6,
			OutlineWidth: 1,
		},
		Network: NetworkConfig{
			ConnectTimeoutMS: 3000,
			WriteTimeoutMS:   500,
			EventBuffer:      64,
		},
		Assets: DirConfig{Dir: "assets"},
		Levels: DirConfig{Dir: "levels"},
		Log:    LogConfig{Level: "info"},
		Keys: KeysConfig{
			Spawn: "Space",
			Start: "Enter",
			Back:  "Escape",
			Debug: "F3",
		},
	}
}

// LoadConfig loads config from a JSON file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// Validate checks ranges and parses every color and key name.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("ticks_per_second must be positive, got %d", c.Window.TPS)
	}
	if c.Physics.Friction <= 0 || c.Physics.Friction >= 1 {
		return fmt.Errorf("friction must be in (0,1), got %g", c.Physics.Friction)
	}
	if c.Physics.RestSpeed < 0 {
		return fmt.Errorf("rest_speed must not be negative, got %g", c.Physics.RestSpeed)
	}
	if c.Camera.DeadZone < 0 || c.Camera.Speed < 0 {
		return fmt.Errorf("camera dead_zone and speed must not be negative")
	}
	if c.Player.Speed < 0 || c.Player.Size < 0 {
		return fmt.Errorf("player speed and size must not be negative")
	}
	if c.Visibility.AuxEpsilon <= c.Visibility.CornerTolerance {
		return fmt.Errorf("aux_epsilon (%g) must exceed corner_tolerance (%g)",
			c.Visibility.AuxEpsilon, c.Visibility.CornerTolerance)
	}
	if c.Render.OverlayAlpha < 0 || c.Render.OverlayAlpha > 1 {
		return fmt.Errorf("overlay_alpha must be in [0,1], got %g", c.Render.OverlayAlpha)
	}
	if c.Network.EventBuffer <= 0 {
		return fmt.Errorf("event_buffer must be positive, got %d", c.Network.EventBuffer)
	}
	if _, err := ParseColor(c.Player.Color); err != nil {
		return fmt.Errorf("player color: %w", err)
	}
	if _, err := ParseColor(c.Visibility.FanColor); err != nil {
		return fmt.Errorf("fan color: %w", err)
	}
	for action, name := range map[string]string{
		"spawn": c.Keys.Spawn,
		"start": c.Keys.Start,
		"back":  c.Keys.Back,
		"debug": c.Keys.Debug,
	} {
		if _, ok := render.ParseKey(name); !ok {
			return fmt.Errorf("unknown key %q bound to %s", name, action)
		}
	}
	return nil
}

// PhysicsParams converts to the world representation.
func (c *Config) PhysicsParams() world.Physics {
	return world.Physics{Friction: c.Physics.Friction, RestSpeed: c.Physics.RestSpeed}
}

// Follow converts to the camera representation.
func (c *Config) Follow() camera.Follow {
	return camera.Follow{DeadZone: c.Camera.DeadZone, Speed: c.Camera.Speed}
}

// VisibilityOptions converts to the visibility engine options.
func (c *Config) VisibilityOptions() visibility.Options {
	return visibility.Options{
		AuxEpsilon:      c.Visibility.AuxEpsilon,
		CornerTolerance: c.Visibility.CornerTolerance,
	}
}

// ConnectTimeout returns the dial timeout.
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.Network.ConnectTimeoutMS) * time.Millisecond
}

// WriteTimeout returns the per-message write deadline.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Network.WriteTimeoutMS) * time.Millisecond
}

// Key resolves a bound key name. Validate guarantees it parses.
func Key(name string) render.Key {
	k, _ := render.ParseKey(name)
	return k
}
