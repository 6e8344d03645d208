// Package levels loads static level layouts: world bounds, spawn point
// and rectangular obstacles.
package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"

	"chosenoffset.com/siderun/internal/config"
	"chosenoffset.com/siderun/internal/core/geom"
	"chosenoffset.com/siderun/internal/world"
)

// ErrInvalidLevel is wrapped by every validation failure.
var ErrInvalidLevel = errors.New("invalid level")

// Size is a width/height pair
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Obstacle is a rectangle centered at (X, Y)
type Obstacle struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Color    string  `json:"color"`
	Collides bool    `json:"collides"`
}

// Level represents a loaded level file
type Level struct {
	Name        string        `json:"name"`
	Bounds      Size          `json:"bounds"`
	BoundsColor string        `json:"bounds_color"`
	Spawn       *config.Point `json:"spawn,omitempty"` // nil uses the configured spawn
	Obstacles   []Obstacle    `json:"obstacles"`
}

// Default returns the built-in level: a 1000x1000 area with three blocks.
func Default() *Level {
	return &Level{
		Name:        "Default",
		Bounds:      Size{W: 1000, H: 1000},
		BoundsColor: "white",
		Obstacles: []Obstacle{
			{X: 200, Y: 200, W: 60, H: 60, Color: "tomato", Collides: true},
			{X: 650, Y: 250, W: 120, H: 40, Color: "mediumseagreen", Collides: true},
			{X: 450, Y: 700, W: 40, H: 160, Color: "cornflowerblue", Collides: true},
		},
	}
}

// Load reads a level from a JSON file
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file %s: %w", path, err)
	}

	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return lvl, nil
}

// Parse decodes and validates level JSON.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}
	if lvl.BoundsColor == "" {
		lvl.BoundsColor = "white"
	}
	if err := validate(&lvl); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func validate(lvl *Level) error {
	if lvl.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidLevel)
	}
	if lvl.Bounds.W <= 0 || lvl.Bounds.H <= 0 {
		return fmt.Errorf("%w: bounds must be positive, got %gx%g", ErrInvalidLevel, lvl.Bounds.W, lvl.Bounds.H)
	}
	if _, err := config.ParseColor(lvl.BoundsColor); err != nil {
		return fmt.Errorf("%w: bounds: %v", ErrInvalidLevel, err)
	}
	if lvl.Spawn != nil && !lvl.boundsBox().Contains(lvl.Spawn.Vec()) {
		return fmt.Errorf("%w: spawn (%g,%g) outside bounds", ErrInvalidLevel, lvl.Spawn.X, lvl.Spawn.Y)
	}
	for i, o := range lvl.Obstacles {
		if o.W <= 0 || o.H <= 0 {
			return fmt.Errorf("%w: obstacle %d has size %gx%g", ErrInvalidLevel, i, o.W, o.H)
		}
		if _, err := config.ParseColor(o.Color); err != nil {
			return fmt.Errorf("%w: obstacle %d: %v", ErrInvalidLevel, i, err)
		}
	}
	return nil
}

func (l *Level) boundsBox() geom.Box {
	return geom.NewRect(l.Bounds.W, l.Bounds.H).At(geom.Vec(l.Bounds.W/2, l.Bounds.H/2))
}

// SpawnPoint returns the level's spawn, or fallback if it has none.
func (l *Level) SpawnPoint(fallback geom.Vector2) geom.Vector2 {
	if l.Spawn == nil {
		return fallback
	}
	return l.Spawn.Vec()
}

// Build populates w with the level's static objects. Object 0 is the
// bounds rectangle, which never blocks movement.
func (l *Level) Build(w *world.World) {
	w.Add(world.NewObject(geom.Vec(l.Bounds.W/2, l.Bounds.H/2), parseColor(l.BoundsColor)).
		WithCollider(l.Bounds.W, l.Bounds.H, false))

	for _, o := range l.Obstacles {
		w.Add(world.NewObject(geom.Vec(o.X, o.Y), parseColor(o.Color)).
			WithCollider(o.W, o.H, o.Collides))
	}
}

// parseColor is only used on validated levels.
func parseColor(s string) color.RGBA {
	c, err := config.ParseColor(s)
	if err != nil {
		return color.RGBA{255, 255, 255, 255}
	}
	return c
}
