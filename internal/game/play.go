// Package game implements the play scene: it owns the world, the local
// player and the camera, runs the per-frame update and draws the frame.
package game

import (
	"fmt"
	"image/color"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/siderun/internal/camera"
	"chosenoffset.com/siderun/internal/config"
	"chosenoffset.com/siderun/internal/core/geom"
	"chosenoffset.com/siderun/internal/core/visibility"
	"chosenoffset.com/siderun/internal/input"
	"chosenoffset.com/siderun/internal/levels"
	"chosenoffset.com/siderun/internal/logger"
	"chosenoffset.com/siderun/internal/netconn"
	"chosenoffset.com/siderun/internal/render"
	"chosenoffset.com/siderun/internal/scene"
	"chosenoffset.com/siderun/internal/world"
)

// Connection is the multiplayer link a Session wraps.
// *netconn.Conn implements it.
type Connection interface {
	Token() uint64
	Poll() (netconn.Event, bool, error)
	SendSpawn(name string, pos geom.Vector2, clr color.RGBA) error
	SendUpdatePosition(pos geom.Vector2) error
}

// Textures provides textures by name.
type Textures interface {
	Texture(name string) (render.Image, bool)
}

// Deps bundles what a play scene needs.
type Deps struct {
	Config   *config.Config
	Level    *levels.Level
	Renderer render.Renderer
	Textures Textures
	// Session carries the connection and the remote players across
	// scenes; nil plays offline.
	Session *Session
	// Back builds the scene to return to; nil quits the game instead.
	Back func() scene.Scene
}

// direction of travel for each movement key
var directions = map[render.Key]geom.Vector2{
	render.KeyW:     geom.Vec(0, -1),
	render.KeyUp:    geom.Vec(0, -1),
	render.KeyS:     geom.Vec(0, 1),
	render.KeyDown:  geom.Vec(0, 1),
	render.KeyA:     geom.Vec(-1, 0),
	render.KeyLeft:  geom.Vec(-1, 0),
	render.KeyD:     geom.Vec(1, 0),
	render.KeyRight: geom.Vec(1, 0),
}

// Play is the play scene.
type Play struct {
	cfg      *config.Config
	level    *levels.Level
	renderer render.Renderer
	textures Textures
	session  *Session
	back     func() scene.Scene

	world  *world.World
	camera *camera.Camera
	input  *input.Tracker
	cursor geom.Vector2 // screen space

	local       world.Token
	physics     world.Physics
	visOpts     visibility.Options
	playerColor color.RGBA
	fanColor    color.RGBA
	spawnKey    render.Key
	backKey     render.Key
	debugKey    render.Key
	debugRays   bool

	// last visibility result, kept for the debug overlay
	polygon visibility.Polygon

	log *logrus.Entry
}

// NewPlay builds a play scene for the given level.
func NewPlay(d Deps) *Play {
	cfg := d.Config
	lvl := d.Level
	if lvl == nil {
		lvl = levels.Default()
	}

	p := &Play{
		cfg:         cfg,
		level:       lvl,
		renderer:    d.Renderer,
		textures:    d.Textures,
		session:     d.Session,
		back:        d.Back,
		world:       world.New(),
		camera:      camera.New(geom.Vector2{}, cfg.Follow()),
		input:       input.NewTracker(),
		local:       world.LocalToken,
		physics:     cfg.PhysicsParams(),
		visOpts:     cfg.VisibilityOptions(),
		playerColor: config.MustColor(cfg.Player.Color),
		fanColor:    config.MustColor(cfg.Visibility.FanColor),
		spawnKey:    config.Key(cfg.Keys.Spawn),
		backKey:     config.Key(cfg.Keys.Back),
		debugKey:    config.Key(cfg.Keys.Debug),
		debugRays:   cfg.Visibility.DebugRays,
	}
	if p.session == nil {
		p.session = NewSession(nil)
	}
	if p.session.Online() {
		p.local = p.session.Token()
	}
	p.log = logger.For("play").WithFields(logrus.Fields{
		"map":   lvl.Name,
		"token": p.local,
	})

	lvl.Build(p.world)
	p.seedRemotes()
	return p
}

func (p *Play) String() string {
	return fmt.Sprintf("play(%s)", p.level.Name)
}

// World exposes the object arena.
func (p *Play) World() *world.World {
	return p.world
}

// Camera exposes the camera.
func (p *Play) Camera() *camera.Camera {
	return p.camera
}

// LocalToken is the token of this client's player.
func (p *Play) LocalToken() world.Token {
	return p.local
}

// OnKeyPress records a key-down edge.
func (p *Play) OnKeyPress(key render.Key) {
	p.input.RegisterPress(key)
}

// OnKeyRelease records a key-up edge.
func (p *Play) OnKeyRelease(key render.Key) {
	p.input.RegisterRelease(key)
}

// OnCursorMove records the cursor's screen position.
func (p *Play) OnCursorMove(x, y float64) {
	p.cursor = geom.Vec(x, y)
}

// Update advances the scene by dt seconds.
func (p *Play) Update(dt float64) (scene.Scene, error) {
	p.input.Update()

	if p.input.JustPressed(p.backKey) {
		if p.back == nil {
			return nil, render.ErrQuit
		}
		return p.back(), nil
	}
	if p.input.JustPressed(p.debugKey) {
		p.debugRays = !p.debugRays
	}
	if p.input.JustPressed(p.spawnKey) {
		p.SpawnLocal()
	}

	p.pollNetwork()

	moved := p.world.Step(dt, p.physics)
	p.camera.Update(dt, p.physics)

	// Without a player the camera follows the cursor.
	target := p.cursor
	if player, ok := p.world.PlayerObject(p.local); ok {
		if dir := p.heldDirection(); !dir.IsZero() {
			player.MoveTo(dir, p.cfg.Player.Speed)
		}
		target = p.camera.WorldToScreen(player.Position)
		p.syncPosition(moved)
	}
	p.camera.Track(target, p.center())

	return nil, nil
}

// heldDirection sums the unit direction of every held movement key.
// Opposite keys cancel out.
func (p *Play) heldDirection() geom.Vector2 {
	var sum geom.Vector2
	for _, key := range p.input.Held() {
		if d, ok := directions[key]; ok {
			sum = sum.Add(d)
		}
	}
	return sum
}

// SpawnLocal creates the local player at the spawn point unless it
// already exists, and announces it when online.
func (p *Play) SpawnLocal() bool {
	pos := p.level.SpawnPoint(p.cfg.Player.Spawn.Vec())
	idx, ok := p.world.Spawn(p.local, p.cfg.Player.Name, pos, p.playerColor, p.cfg.Player.Size)
	if !ok {
		return false
	}
	p.log.WithFields(logrus.Fields{
		"index":    idx,
		"position": pos,
	}).Info("Spawned local player.")

	if p.session.Online() {
		if err := p.session.SendSpawn(p.cfg.Player.Name, pos, p.playerColor); err != nil {
			p.log.WithError(err).Warn("Failed to announce spawn.")
		}
	}
	return true
}

func (p *Play) center() geom.Vector2 {
	return geom.Vec(float64(p.cfg.Window.Width)/2, float64(p.cfg.Window.Height)/2)
}

func (p *Play) syncPosition(moved []int) {
	if !p.session.Online() {
		return
	}
	pl, ok := p.world.Player(p.local)
	if !ok {
		return
	}
	for _, idx := range moved {
		if idx != pl.ObjectIndex {
			continue
		}
		obj, _ := p.world.Object(idx)
		if err := p.session.SendUpdatePosition(obj.Position); err != nil {
			p.log.WithError(err).Debug("Failed to send position.")
		}
		return
	}
}
