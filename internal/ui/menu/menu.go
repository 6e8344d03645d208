// Package menu implements the level selection screen.
package menu

import (
	"fmt"
	"image/color"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/siderun/internal/config"
	"chosenoffset.com/siderun/internal/game"
	"chosenoffset.com/siderun/internal/input"
	"chosenoffset.com/siderun/internal/levels"
	"chosenoffset.com/siderun/internal/logger"
	"chosenoffset.com/siderun/internal/render"
	"chosenoffset.com/siderun/internal/scene"
)

var (
	backgroundColor = color.RGBA{20, 20, 30, 255}
	titleColor      = color.RGBA{255, 255, 255, 255}
	entryColor      = color.RGBA{200, 200, 255, 255}
	selectedColor   = color.RGBA{100, 255, 100, 255}
	highlightColor  = color.RGBA{60, 60, 90, 255}
	hintColor       = color.RGBA{150, 150, 150, 255}
	errorColor      = color.RGBA{255, 100, 100, 255}
)

const (
	listX       = 50
	listY       = 120
	entryHeight = 30
)

// Deps bundles what the menu and the play scenes it starts need.
type Deps struct {
	Config   *config.Config
	Renderer render.Renderer
	Textures game.Textures
	// Session is shared by every play scene; nil plays offline.
	Session *game.Session
}

// entry is one selectable level; an empty path is the built-in level.
type entry struct {
	name string
	path string
}

// Menu lists the built-in level followed by the level files found in the
// configured directory.
type Menu struct {
	deps     Deps
	entries  []entry
	selected int
	status   string // last load failure, shown under the list

	input    *input.Tracker
	upKey    render.Key
	downKey  render.Key
	startKey render.Key
	backKey  render.Key

	log *logrus.Entry
}

// New scans the level directory and builds the menu.
func New(d Deps) *Menu {
	if d.Session == nil {
		d.Session = game.NewSession(nil)
	}
	m := &Menu{
		deps:     d,
		input:    input.NewTracker(),
		upKey:    render.KeyUp,
		downKey:  render.KeyDown,
		startKey: config.Key(d.Config.Keys.Start),
		backKey:  config.Key(d.Config.Keys.Back),
		log:      logger.For("menu"),
	}
	m.entries = append(m.entries, entry{name: levels.Default().Name})

	dir := d.Config.Levels.Dir
	found, skipped, err := levels.Scan(dir)
	if err != nil {
		m.log.WithError(err).WithField("dir", dir).Warn("Could not scan levels.")
	}
	for _, s := range skipped {
		m.log.WithError(s).Warn("Skipped level file.")
	}
	for _, e := range found {
		m.entries = append(m.entries, entry{name: e.Name, path: e.Path})
	}
	m.log.WithField("levels", len(m.entries)).Debug("Menu ready.")
	return m
}

func (m *Menu) String() string {
	return "menu"
}

// Names lists the offered levels in display order.
func (m *Menu) Names() []string {
	names := make([]string, len(m.entries))
	for i, e := range m.entries {
		names[i] = e.name
	}
	return names
}

// Selected returns the index of the highlighted entry.
func (m *Menu) Selected() int {
	return m.selected
}

// Select highlights entry i, clamped to the list.
func (m *Menu) Select(i int) {
	m.selected = max(0, min(i, len(m.entries)-1))
}

// OnKeyPress records a key-down edge.
func (m *Menu) OnKeyPress(key render.Key) {
	m.input.RegisterPress(key)
}

// OnKeyRelease records a key-up edge.
func (m *Menu) OnKeyRelease(key render.Key) {
	m.input.RegisterRelease(key)
}

// OnCursorMove is ignored; the menu is keyboard driven.
func (m *Menu) OnCursorMove(x, y float64) {}

// Update handles navigation. The start key loads the selected level and
// hands over to a play scene; the back key quits.
func (m *Menu) Update(dt float64) (scene.Scene, error) {
	m.input.Update()
	// Keep reading while no play scene is: remote players still spawn
	// and move.
	m.deps.Session.Drain()

	if m.input.JustPressed(m.backKey) {
		return nil, render.ErrQuit
	}
	if m.input.JustPressed(m.upKey) {
		m.Select(m.selected - 1)
	}
	if m.input.JustPressed(m.downKey) {
		m.Select(m.selected + 1)
	}
	if !m.input.JustPressed(m.startKey) {
		return nil, nil
	}

	lvl, err := m.load(m.entries[m.selected])
	if err != nil {
		m.log.WithError(err).Error("Failed to load level.")
		m.status = err.Error()
		return nil, nil
	}
	m.status = ""

	selected := m.selected
	return game.NewPlay(game.Deps{
		Config:   m.deps.Config,
		Level:    lvl,
		Renderer: m.deps.Renderer,
		Textures: m.deps.Textures,
		Session:  m.deps.Session,
		Back: func() scene.Scene {
			// Rescan so level files added meanwhile show up.
			next := New(m.deps)
			next.Select(selected)
			return next
		},
	}), nil
}

func (m *Menu) load(e entry) (*levels.Level, error) {
	if e.path == "" {
		return levels.Default(), nil
	}
	return levels.Load(e.path)
}

// Draw renders the title, the level list and the key hints.
func (m *Menu) Draw(screen render.Image) {
	screen.Fill(backgroundColor)

	title := m.deps.Config.Window.Title
	m.deps.Renderer.DrawText(screen, title, listX, 30, titleColor, 3.0)
	m.deps.Renderer.DrawText(screen, "Select a Level", listX, 80, titleColor, 1.5)

	width := m.deps.Config.Window.Width - 2*listX
	for i, e := range m.entries {
		y := listY + i*entryHeight
		clr := entryColor
		if i == m.selected {
			m.deps.Renderer.FillRect(screen, listX-10, float32(y-4), float32(width), entryHeight-4, highlightColor)
			clr = selectedColor
		}
		m.deps.Renderer.DrawText(screen, e.name, listX, y, clr, 1.5)
	}

	y := listY + len(m.entries)*entryHeight + 20
	if m.status != "" {
		m.deps.Renderer.DrawText(screen, m.status, listX, y, errorColor, 1.0)
		y += entryHeight
	}

	hint := fmt.Sprintf("Up/Down: select   %s: start   %s: quit",
		m.startKey, m.backKey)
	m.deps.Renderer.DrawText(screen, hint, listX, y, hintColor, 1.0)
}
